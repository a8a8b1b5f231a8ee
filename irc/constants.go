package irc

// IRC Messages, these messages are 1-1 constant to string lookups for
// ease of use in the command table and in tests.
const (
	PASS    = "PASS"
	NICK    = "NICK"
	USER    = "USER"
	PING    = "PING"
	PONG    = "PONG"
	QUIT    = "QUIT"
	JOIN    = "JOIN"
	PART    = "PART"
	KICK    = "KICK"
	INVITE  = "INVITE"
	TOPIC   = "TOPIC"
	MODE    = "MODE"
	PRIVMSG = "PRIVMSG"
	NOTICE  = "NOTICE"
	CAP     = "CAP"
)

// Numeric replies produced by the server.
const (
	RPL_WELCOME       = "001"
	RPL_YOURHOST      = "002"
	RPL_CREATED       = "003"
	RPL_MYINFO        = "004"
	RPL_ISUPPORT      = "005"
	RPL_CHANNELMODEIS = "324"
	RPL_NOTOPIC       = "331"
	RPL_TOPIC         = "332"
	RPL_INVITING      = "341"
	RPL_NAMREPLY      = "353"
	RPL_ENDOFNAMES    = "366"

	ERR_NOSUCHNICK       = "401"
	ERR_NOSUCHCHANNEL    = "403"
	ERR_CANNOTSENDTOCHAN = "404"
	ERR_INVALIDCAPCMD    = "410"
	ERR_UNKNOWNCOMMAND   = "421"
	ERR_ERRONEUSNICKNAME = "432"
	ERR_NICKNAMEINUSE    = "433"
	ERR_USERNOTINCHANNEL = "441"
	ERR_NOTONCHANNEL     = "442"
	ERR_USERONCHANNEL    = "443"
	ERR_NOTREGISTERED    = "451"
	ERR_NEEDMOREPARAMS   = "461"
	ERR_ALREADYREGISTRED = "462"
	ERR_PASSWDMISMATCH   = "464"
	ERR_CHANNELISFULL    = "471"
	ERR_INVITEONLYCHAN   = "473"
	ERR_BADCHANNELKEY    = "475"
	ERR_CHANOPRIVSNEEDED = "482"
	ERR_UMODEUNKNOWNFLAG = "501"
)
