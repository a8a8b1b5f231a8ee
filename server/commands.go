package server

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Nalveiz/ft-irc/data"
	"github.com/Nalveiz/ft-irc/irc"
)

// nickRegexp is the nickname grammar: 1-9 characters, the first a
// letter or one of []\`_^{|}, the rest additionally digits and -.
var nickRegexp = regexp.MustCompile(
	"^[A-Za-z\\[\\]\\\\`_^{|}][A-Za-z0-9\\[\\]\\\\`_^{|}-]{0,8}$")

// handlerFunc executes one already-validated command for a session.
type handlerFunc func(*Server, *data.Session, irc.Message)

// command couples a handler with the preconditions the dispatcher
// enforces uniformly: registration state and positional arity.
type command struct {
	fn        handlerFunc
	minParams int
	needsReg  bool
}

// commands is the closed dispatch table. Anything not in it answers
// 421.
var commands = map[string]command{
	irc.PASS:    {fn: (*Server).cmdPass, minParams: 1},
	irc.NICK:    {fn: (*Server).cmdNick, minParams: 1},
	irc.USER:    {fn: (*Server).cmdUser, minParams: 3},
	irc.PING:    {fn: (*Server).cmdPing, minParams: 1},
	irc.QUIT:    {fn: (*Server).cmdQuit},
	irc.CAP:     {fn: (*Server).cmdCap},
	irc.JOIN:    {fn: (*Server).cmdJoin, minParams: 1, needsReg: true},
	irc.PART:    {fn: (*Server).cmdPart, minParams: 1, needsReg: true},
	irc.KICK:    {fn: (*Server).cmdKick, minParams: 2, needsReg: true},
	irc.INVITE:  {fn: (*Server).cmdInvite, minParams: 2, needsReg: true},
	irc.TOPIC:   {fn: (*Server).cmdTopic, minParams: 1, needsReg: true},
	irc.MODE:    {fn: (*Server).cmdMode, minParams: 1, needsReg: true},
	irc.PRIVMSG: {fn: (*Server).cmdPrivmsg, minParams: 1, needsReg: true},
}

// dispatch uppercases the command, enforces the table preconditions
// and runs the handler. Precondition failures reply and change no
// state.
func (s *Server) dispatch(sess *data.Session, msg irc.Message) {
	name := strings.ToUpper(msg.Command)

	cmd, ok := commands[name]
	if !ok {
		sess.Send(irc.ErrUnknownCommand(sess.DisplayNick(), name))
		return
	}
	if cmd.needsReg && !sess.Registered {
		sess.Send(irc.ErrNotRegistered(sess.DisplayNick()))
		return
	}
	if len(msg.Params) < cmd.minParams {
		sess.Send(irc.ErrNeedMoreParams(sess.DisplayNick(), name))
		return
	}

	cmd.fn(s, sess, msg)
}

// maybeWelcome checks the registration flags after every flag-setting
// command and emits the welcome sequence exactly once.
func (s *Server) maybeWelcome(sess *data.Session) {
	if sess.TryRegister() {
		s.sendWelcome(sess)
	}
}

// cmdPass verifies the connection password. Rejected outright once the
// session is registered; before that a wrong password may be retried.
func (s *Server) cmdPass(sess *data.Session, msg irc.Message) {
	if sess.Registered {
		sess.Send(irc.ErrAlreadyRegistered(sess.DisplayNick()))
		return
	}

	if !s.checkPassword(msg.Param(0)) {
		sess.Send(irc.ErrPasswdMismatch(sess.DisplayNick()))
		return
	}

	sess.HasPass = true
	s.maybeWelcome(sess)
}

// checkPassword compares against the bcrypt hash when the config
// carries one, byte-for-byte against the plain password otherwise.
func (s *Server) checkPassword(supplied string) bool {
	if len(s.cfg.PasswordHash) > 0 {
		err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(supplied))
		return err == nil
	}
	return supplied == s.cfg.Password
}

// cmdNick validates the nickname grammar and uniqueness, then either
// completes registration or broadcasts the change to every channel the
// session is in.
func (s *Server) cmdNick(sess *data.Session, msg irc.Message) {
	newNick := msg.Param(0)

	if !nickRegexp.MatchString(newNick) {
		sess.Send(irc.ErrErroneusNickname(sess.DisplayNick(), newNick))
		return
	}

	if other := s.findByNick(newNick); other != nil && other != sess {
		sess.Send(irc.ErrNicknameInUse(sess.DisplayNick(), newNick))
		return
	}

	oldNick := sess.Nick
	sess.Nick = newNick
	sess.HasNick = true

	if sess.Registered && oldNick != newNick {
		line := irc.NickMessage(oldNick, sess.Username, s.cfg.Name, newNick)
		sess.Send(line)
		for peer := range s.peersOf(sess) {
			peer.Send(line)
		}
		return
	}

	s.maybeWelcome(sess)
}

// cmdUser records username and realname. Re-registration is refused.
func (s *Server) cmdUser(sess *data.Session, msg irc.Message) {
	if sess.HasUser {
		sess.Send(irc.ErrAlreadyRegistered(sess.DisplayNick()))
		return
	}
	if len(msg.Trailing) == 0 {
		sess.Send(irc.ErrNeedMoreParams(sess.DisplayNick(), irc.USER))
		return
	}

	sess.Username = msg.Param(0)
	sess.Realname = msg.Trailing
	sess.HasUser = true
	s.maybeWelcome(sess)
}

func (s *Server) cmdPing(sess *data.Session, msg irc.Message) {
	sess.Send(irc.Pong(s.cfg.Name, msg.Param(0)))
}

func (s *Server) cmdQuit(sess *data.Session, msg irc.Message) {
	reason := msg.Trailing
	if len(reason) == 0 {
		reason = "Client Quit"
	}
	s.log.Info("client quit", "id", sess.ID, "reason", reason)
	s.teardown(sess, reason)
}

// cmdCap is a minimal capability negotiation stub: the capability set
// is empty, requests are refused, END is a no-op. Enough for modern
// clients to complete their handshake.
func (s *Server) cmdCap(sess *data.Session, msg irc.Message) {
	if len(msg.Params) == 0 {
		sess.Send(irc.ErrInvalidCap(s.cfg.Name))
		return
	}

	switch msg.Param(0) {
	case "LS", "LIST":
		sess.Send(irc.CapLs(s.cfg.Name))
	case "REQ":
		sess.Send(irc.CapNak(s.cfg.Name))
	case "END":
	}
}
