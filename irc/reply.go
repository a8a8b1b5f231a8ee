package irc

import (
	"fmt"
)

// serverToken is the fixed identity token prefixing every numeric
// reply. Lines are returned without the CRLF delimiter; the transport
// appends it when writing.
const serverToken = "server"

// Mask assembles the nick!user@host prefix for user-originated
// messages. The server derives it itself and never trusts a client
// supplied prefix.
func Mask(nick, user, host string) string {
	return nick + "!" + user + "@" + host
}

// Error replies.

// ErrNeedMoreParams is the uniform arity failure for every command.
func ErrNeedMoreParams(nick, command string) string {
	return fmt.Sprintf(":%s %s %s %s :Not enough parameters", serverToken, ERR_NEEDMOREPARAMS, nick, command)
}

func ErrErroneusNickname(nick, badNick string) string {
	return fmt.Sprintf(":%s %s %s %s :Erroneus nickname", serverToken, ERR_ERRONEUSNICKNAME, nick, badNick)
}

func ErrNicknameInUse(nick, usedNick string) string {
	return fmt.Sprintf(":%s %s %s %s :Nickname is already in use", serverToken, ERR_NICKNAMEINUSE, nick, usedNick)
}

func ErrNotRegistered(nick string) string {
	return fmt.Sprintf(":%s %s %s :You have not registered", serverToken, ERR_NOTREGISTERED, nick)
}

func ErrAlreadyRegistered(nick string) string {
	return fmt.Sprintf(":%s %s %s :You may not reregister", serverToken, ERR_ALREADYREGISTRED, nick)
}

func ErrPasswdMismatch(nick string) string {
	return fmt.Sprintf(":%s %s %s :Password incorrect", serverToken, ERR_PASSWDMISMATCH, nick)
}

func ErrNoSuchChannel(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :No such channel", serverToken, ERR_NOSUCHCHANNEL, nick, channel)
}

func ErrNotOnChannel(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :You're not on that channel", serverToken, ERR_NOTONCHANNEL, nick, channel)
}

func ErrNoSuchNick(nick, target string) string {
	return fmt.Sprintf(":%s %s %s %s :No such nick/channel", serverToken, ERR_NOSUCHNICK, nick, target)
}

func ErrCannotSendToChan(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :Cannot send to channel", serverToken, ERR_CANNOTSENDTOCHAN, nick, channel)
}

func ErrChanOPrivsNeeded(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :You're not channel operator", serverToken, ERR_CHANOPRIVSNEEDED, nick, channel)
}

func ErrUserNotInChannel(nick, target, channel string) string {
	return fmt.Sprintf(":%s %s %s %s %s :They aren't on that channel", serverToken, ERR_USERNOTINCHANNEL, nick, target, channel)
}

func ErrUserOnChannel(nick, target, channel string) string {
	return fmt.Sprintf(":%s %s %s %s %s :is already on channel", serverToken, ERR_USERONCHANNEL, nick, target, channel)
}

// ErrAlreadyOnChannel answers a session joining a channel it is
// already a member of.
func ErrAlreadyOnChannel(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :is already on channel", serverToken, ERR_USERONCHANNEL, nick, channel)
}

func ErrInviteOnlyChan(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :This channel is invite only", serverToken, ERR_INVITEONLYCHAN, nick, channel)
}

func ErrBadChannelKey(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :Cannot join channel (+k)", serverToken, ERR_BADCHANNELKEY, nick, channel)
}

func ErrChannelIsFull(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :Cannot join channel (+l)", serverToken, ERR_CHANNELISFULL, nick, channel)
}

func ErrUnknownCommand(nick, command string) string {
	return fmt.Sprintf(":%s %s %s %s :Unknown command", serverToken, ERR_UNKNOWNCOMMAND, nick, command)
}

func ErrUnknownModeFlag(nick string) string {
	return fmt.Sprintf(":%s %s %s :Unknown MODE flag", serverToken, ERR_UMODEUNKNOWNFLAG, nick)
}

// Welcome sequence.

func RplWelcome(nick, user, host string) string {
	return fmt.Sprintf(":%s %s %s :Welcome to the Internet Relay Network %s", serverToken, RPL_WELCOME, nick, Mask(nick, user, host))
}

func RplYourHost(nick, serverName string) string {
	return fmt.Sprintf(":%s %s %s :Your host is %s, running version 1.0", serverToken, RPL_YOURHOST, nick, serverName)
}

func RplCreated(nick, date string) string {
	return fmt.Sprintf(":%s %s %s :This server was created %s", serverToken, RPL_CREATED, nick, date)
}

// RplMyInfo advertises the supported user and channel modes:
// i(invite-only), t(topic-restricted), k(key), l(limit), o(operator).
func RplMyInfo(nick, serverName string) string {
	return fmt.Sprintf(":%s %s %s %s 1.0 o itklo", serverToken, RPL_MYINFO, nick, serverName)
}

func RplISupport(nick string) string {
	return fmt.Sprintf(":%s %s %s CHANMODES=,,,itkl PREFIX=(o)@ CHANTYPES=# :are supported by this server", serverToken, RPL_ISUPPORT, nick)
}

// Command replies and broadcasts.

func Pong(serverName, token string) string {
	return fmt.Sprintf(":%s PONG %s :%s", serverName, serverName, token)
}

func JoinMessage(nick, user, host, channel string) string {
	return fmt.Sprintf(":%s JOIN %s", Mask(nick, user, host), channel)
}

func PartMessage(nick, user, host, channel, reason string) string {
	return fmt.Sprintf(":%s PART %s :%s", Mask(nick, user, host), channel, reason)
}

func KickMessage(nick, user, host, channel, target, reason string) string {
	return fmt.Sprintf(":%s KICK %s %s :%s", Mask(nick, user, host), channel, target, reason)
}

func QuitMessage(nick, user, host, reason string) string {
	return fmt.Sprintf(":%s QUIT :%s", Mask(nick, user, host), reason)
}

func NickMessage(oldNick, user, host, newNick string) string {
	return fmt.Sprintf(":%s NICK %s", Mask(oldNick, user, host), newNick)
}

func InviteMessage(nick, user, host, target, channel string) string {
	return fmt.Sprintf(":%s INVITE %s %s", Mask(nick, user, host), target, channel)
}

func TopicMessage(nick, user, host, channel, topic string) string {
	return fmt.Sprintf(":%s TOPIC %s :%s", Mask(nick, user, host), channel, topic)
}

func PrivmsgMessage(nick, user, host, target, text string) string {
	return fmt.Sprintf(":%s PRIVMSG %s :%s", Mask(nick, user, host), target, text)
}

func ModeMessage(nick, user, host, channel, modes string) string {
	return fmt.Sprintf(":%s MODE %s %s", Mask(nick, user, host), channel, modes)
}

func RplInviting(nick, target, channel string) string {
	return fmt.Sprintf(":%s %s %s %s %s", serverToken, RPL_INVITING, nick, target, channel)
}

func RplTopic(nick, channel, topic string) string {
	return fmt.Sprintf(":%s %s %s %s :%s", serverToken, RPL_TOPIC, nick, channel, topic)
}

func RplNoTopic(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :No topic is set", serverToken, RPL_NOTOPIC, nick, channel)
}

func RplNamReply(nick, channel, names string) string {
	return fmt.Sprintf(":%s %s %s = %s :%s", serverToken, RPL_NAMREPLY, nick, channel, names)
}

func RplEndOfNames(nick, channel string) string {
	return fmt.Sprintf(":%s %s %s %s :End of /NAMES list", serverToken, RPL_ENDOFNAMES, nick, channel)
}

func RplChannelModeIs(nick, channel, modes string) string {
	return fmt.Sprintf(":%s %s %s %s %s", serverToken, RPL_CHANNELMODEIS, nick, channel, modes)
}

func Notice(nick, text string) string {
	return fmt.Sprintf(":%s NOTICE %s :%s", serverToken, nick, text)
}

// Capability negotiation stub replies.

func CapLs(serverName string) string {
	return fmt.Sprintf(":%s CAP * LS :", serverName)
}

func CapNak(serverName string) string {
	return fmt.Sprintf(":%s CAP * NAK :", serverName)
}

func ErrInvalidCap(serverName string) string {
	return fmt.Sprintf(":%s %s * :Invalid CAP command", serverName, ERR_INVALIDCAPCMD)
}
