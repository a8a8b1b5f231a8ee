package server

import (
	"strconv"
	"strings"

	"github.com/Nalveiz/ft-irc/data"
	"github.com/Nalveiz/ft-irc/irc"
)

// cmdMode handles channel modes. A bare target is a query any member
// may make; mutations require operator status. User modes are not
// supported and answer 501.
func (s *Server) cmdMode(sess *data.Session, msg irc.Message) {
	target := msg.Param(0)
	if !strings.HasPrefix(target, "#") {
		sess.Send(irc.ErrUnknownModeFlag(sess.Nick))
		return
	}

	ch := s.channels.Get(target)
	if ch == nil {
		sess.Send(irc.ErrNoSuchChannel(sess.Nick, target))
		return
	}
	if !ch.IsMember(sess.ID) {
		sess.Send(irc.ErrNotOnChannel(sess.Nick, target))
		return
	}

	if len(msg.Params) == 1 {
		sess.Send(irc.RplChannelModeIs(sess.Nick, target, ch.ModeString()))
		return
	}

	if !ch.IsOperator(sess.ID) {
		sess.Send(irc.ErrChanOPrivsNeeded(sess.Nick, target))
		return
	}

	s.applyModes(sess, ch, msg.Param(1), msg.Params[2:])
}

// applyModes scans the mode string left to right. +/- toggle the
// adding flag; i and t take no parameter, k and l consume one when
// adding, o always consumes one. Flags that change nothing are not
// accumulated, and a single MODE broadcast carries everything that
// did change, parameters in consumption order. Unrecognized flag
// characters answer 501 and the scan continues.
func (s *Server) applyModes(sess *data.Session, ch *data.Channel, modeString string, args []string) {
	adding := true
	argIndex := 0

	var applied strings.Builder
	var appliedArgs []string
	var lastSign byte

	accumulate := func(flag byte) {
		sign := byte('-')
		if adding {
			sign = '+'
		}
		if sign != lastSign {
			applied.WriteByte(sign)
			lastSign = sign
		}
		applied.WriteByte(flag)
	}

	for i := 0; i < len(modeString); i++ {
		flag := modeString[i]

		switch flag {
		case '+':
			adding = true
		case '-':
			adding = false

		case 'i':
			if ch.InviteOnly() != adding {
				ch.SetInviteOnly(adding)
				accumulate(flag)
			}

		case 't':
			if ch.TopicRestricted() != adding {
				ch.SetTopicRestricted(adding)
				accumulate(flag)
			}

		case 'k':
			if adding {
				if argIndex < len(args) {
					ch.SetKey(args[argIndex])
					appliedArgs = append(appliedArgs, args[argIndex])
					argIndex++
					accumulate(flag)
				}
			} else if len(ch.Key()) > 0 {
				ch.SetKey("")
				accumulate(flag)
			}

		case 'l':
			if adding {
				if argIndex < len(args) {
					limit, err := strconv.Atoi(args[argIndex])
					if err == nil && limit > 0 {
						ch.SetUserLimit(limit)
						appliedArgs = append(appliedArgs, args[argIndex])
						argIndex++
						accumulate(flag)
					}
				}
			} else if ch.UserLimit() > 0 {
				ch.SetUserLimit(0)
				accumulate(flag)
			}

		case 'o':
			if argIndex < len(args) {
				nick := args[argIndex]
				argIndex++
				target := s.findByNick(nick)
				if target != nil && ch.IsMember(target.ID) {
					var changed bool
					if adding {
						changed = ch.GrantOperator(target.ID)
					} else {
						changed = ch.RevokeOperator(target.ID)
					}
					if changed {
						appliedArgs = append(appliedArgs, nick)
						accumulate(flag)
					}
				}
			}

		default:
			sess.Send(irc.ErrUnknownModeFlag(sess.Nick))
		}
	}

	if applied.Len() == 0 {
		return
	}

	modes := applied.String()
	if len(appliedArgs) > 0 {
		modes += " " + strings.Join(appliedArgs, " ")
	}
	ch.Broadcast(irc.ModeMessage(sess.Nick, sess.Username, s.cfg.Name, ch.Name(), modes), data.NoExcept)
}
