package server

import (
	"strings"

	"github.com/Nalveiz/ft-irc/data"
	"github.com/Nalveiz/ft-irc/irc"
)

// cmdJoin walks the join preconditions in order — key, membership,
// invite-only, limit — and only then mutates: no partial state on any
// rejection. A fresh channel grants its first member operator status.
func (s *Server) cmdJoin(sess *data.Session, msg irc.Message) {
	name := msg.Param(0)
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}

	if !data.ValidChannelName(name) {
		sess.Send(irc.ErrNoSuchChannel(sess.Nick, name))
		return
	}

	ch := s.channels.Get(name)
	if ch != nil {
		if len(ch.Key()) > 0 && msg.Param(1) != ch.Key() {
			sess.Send(irc.ErrBadChannelKey(sess.Nick, name))
			return
		}
		if ch.IsMember(sess.ID) {
			sess.Send(irc.ErrAlreadyOnChannel(sess.Nick, name))
			return
		}
		if ch.InviteOnly() && !ch.IsInvited(sess.ID) {
			sess.Send(irc.ErrInviteOnlyChan(sess.Nick, name))
			return
		}
		if ch.UserLimit() > 0 && ch.Len() >= ch.UserLimit() {
			sess.Send(irc.ErrChannelIsFull(sess.Nick, name))
			return
		}
	} else {
		ch = s.channels.GetOrCreate(name)
		s.log.Debug("channel created", "channel", name)
	}

	ch.AddMember(sess)

	ch.Broadcast(irc.JoinMessage(sess.Nick, sess.Username, s.cfg.Name, name), data.NoExcept)
	sess.Send(irc.RplNamReply(sess.Nick, name, ch.Names()))
	sess.Send(irc.RplEndOfNames(sess.Nick, name))
	if topic := ch.Topic(); len(topic) > 0 {
		sess.Send(irc.RplTopic(sess.Nick, name, topic))
	} else {
		sess.Send(irc.RplNoTopic(sess.Nick, name))
	}
	sess.Send(irc.RplChannelModeIs(sess.Nick, name, ch.ModeString()))
}

// cmdPart broadcasts to the full membership, the leaver included, then
// removes them; the channel is reaped if that emptied it.
func (s *Server) cmdPart(sess *data.Session, msg irc.Message) {
	name := msg.Param(0)
	ch := s.channels.Get(name)
	if ch == nil {
		sess.Send(irc.ErrNoSuchChannel(sess.Nick, name))
		return
	}
	if !ch.IsMember(sess.ID) {
		sess.Send(irc.ErrNotOnChannel(sess.Nick, name))
		return
	}

	reason := msg.Trailing
	if len(reason) == 0 {
		reason = "Leaving"
	}

	ch.Broadcast(irc.PartMessage(sess.Nick, sess.Username, s.cfg.Name, name, reason), data.NoExcept)
	if s.channels.DropMember(ch, sess.ID) {
		s.log.Debug("channel removed", "channel", name)
	}
}

// cmdKick requires the actor to be a member and operator and the
// target a member. The KICK notice reaches the target before removal.
func (s *Server) cmdKick(sess *data.Session, msg irc.Message) {
	name := msg.Param(0)
	targetNick := msg.Param(1)
	reason := msg.Trailing
	if len(reason) == 0 {
		reason = "No reason given"
	}

	ch := s.channels.Get(name)
	if ch == nil {
		sess.Send(irc.ErrNoSuchChannel(sess.Nick, name))
		return
	}
	if !ch.IsMember(sess.ID) {
		sess.Send(irc.ErrNotOnChannel(sess.Nick, name))
		return
	}
	if !ch.IsOperator(sess.ID) {
		sess.Send(irc.ErrChanOPrivsNeeded(sess.Nick, name))
		return
	}

	target := s.findByNick(targetNick)
	if target == nil {
		sess.Send(irc.ErrNoSuchNick(sess.Nick, targetNick))
		return
	}
	if !ch.IsMember(target.ID) {
		sess.Send(irc.ErrUserNotInChannel(sess.Nick, targetNick, name))
		return
	}

	ch.Broadcast(irc.KickMessage(sess.Nick, sess.Username, s.cfg.Name, name, targetNick, reason), data.NoExcept)
	if s.channels.DropMember(ch, target.ID) {
		s.log.Debug("channel removed", "channel", name)
	}
}

// cmdInvite needs only membership from the actor, not operator status.
// The invite lets the target through an invite-only door exactly once.
func (s *Server) cmdInvite(sess *data.Session, msg irc.Message) {
	targetNick := msg.Param(0)
	name := msg.Param(1)

	target := s.findByNick(targetNick)
	if target == nil {
		sess.Send(irc.ErrNoSuchNick(sess.Nick, targetNick))
		return
	}

	ch := s.channels.Get(name)
	if ch == nil {
		sess.Send(irc.ErrNoSuchChannel(sess.Nick, name))
		return
	}
	if !ch.IsMember(sess.ID) {
		sess.Send(irc.ErrNotOnChannel(sess.Nick, name))
		return
	}
	if ch.IsMember(target.ID) {
		sess.Send(irc.ErrUserOnChannel(sess.Nick, targetNick, name))
		return
	}

	ch.AddInvite(target.ID)
	target.Send(irc.InviteMessage(sess.Nick, sess.Username, s.cfg.Name, targetNick, name))
	sess.Send(irc.RplInviting(sess.Nick, targetNick, name))
}

// cmdTopic answers a query for any member; setting requires operator
// status while the channel is +t.
func (s *Server) cmdTopic(sess *data.Session, msg irc.Message) {
	name := msg.Param(0)
	ch := s.channels.Get(name)
	if ch == nil {
		sess.Send(irc.ErrNoSuchChannel(sess.Nick, name))
		return
	}
	if !ch.IsMember(sess.ID) {
		sess.Send(irc.ErrNotOnChannel(sess.Nick, name))
		return
	}

	if len(msg.Trailing) == 0 {
		if topic := ch.Topic(); len(topic) > 0 {
			sess.Send(irc.RplTopic(sess.Nick, name, topic))
		} else {
			sess.Send(irc.RplNoTopic(sess.Nick, name))
		}
		return
	}

	if ch.TopicRestricted() && !ch.IsOperator(sess.ID) {
		sess.Send(irc.ErrChanOPrivsNeeded(sess.Nick, name))
		return
	}

	ch.SetTopic(msg.Trailing)
	ch.Broadcast(irc.TopicMessage(sess.Nick, sess.Username, s.cfg.Name, name, msg.Trailing), data.NoExcept)
}

// cmdPrivmsg routes channel targets through membership checks and
// nickname targets through exact match; resolution failures are always
// reported to the sender.
func (s *Server) cmdPrivmsg(sess *data.Session, msg irc.Message) {
	target := msg.Param(0)
	text := msg.Trailing
	if len(text) == 0 {
		text = msg.Param(1)
	}
	if len(text) == 0 {
		sess.Send(irc.ErrNeedMoreParams(sess.Nick, irc.PRIVMSG))
		return
	}

	if strings.HasPrefix(target, "#") {
		ch := s.channels.Get(target)
		if ch == nil {
			sess.Send(irc.ErrNoSuchChannel(sess.Nick, target))
			return
		}
		if !ch.IsMember(sess.ID) {
			sess.Send(irc.ErrCannotSendToChan(sess.Nick, target))
			return
		}
		ch.Broadcast(irc.PrivmsgMessage(sess.Nick, sess.Username, s.cfg.Name, target, text), sess.ID)
		return
	}

	peer := s.findByNick(target)
	if peer == nil {
		sess.Send(irc.ErrNoSuchNick(sess.Nick, target))
		return
	}
	peer.Send(irc.PrivmsgMessage(sess.Nick, sess.Username, s.cfg.Name, target, text))
}
