package data

import (
	"sort"
	"strings"
)

// Channel encapsulates all the data associated with a channel:
// membership, the operator subset, pending invites, topic and modes.
// Members are keyed by connection handle.
type Channel struct {
	name  string
	topic string
	key   string

	userLimit       int
	inviteOnly      bool
	topicRestricted bool

	members   map[int]*Session
	operators map[int]bool
	invited   map[int]bool
}

// NewChannel instantiates a channel. Topic changes start restricted to
// operators; invite-only starts off.
func NewChannel(name string) *Channel {
	return &Channel{
		name:            name,
		topicRestricted: true,
		members:         make(map[int]*Session),
		operators:       make(map[int]bool),
		invited:         make(map[int]bool),
	}
}

// Name gets the name of the channel.
func (c *Channel) Name() string {
	return c.name
}

// Topic gets the topic, empty when unset.
func (c *Channel) Topic() string {
	return c.topic
}

// SetTopic sets the topic of the channel.
func (c *Channel) SetTopic(topic string) {
	c.topic = topic
}

// Key gets the channel key, empty when no key is required.
func (c *Channel) Key() string {
	return c.key
}

// SetKey sets the channel key; empty clears it.
func (c *Channel) SetKey(key string) {
	c.key = key
}

// UserLimit gets the member limit, 0 for unlimited.
func (c *Channel) UserLimit() int {
	return c.userLimit
}

// SetUserLimit sets the member limit; 0 clears it.
func (c *Channel) SetUserLimit(limit int) {
	c.userLimit = limit
}

// InviteOnly reports whether joining requires an invite.
func (c *Channel) InviteOnly() bool {
	return c.inviteOnly
}

// SetInviteOnly toggles the invite-only flag.
func (c *Channel) SetInviteOnly(on bool) {
	c.inviteOnly = on
}

// TopicRestricted reports whether topic changes require operator
// status.
func (c *Channel) TopicRestricted() bool {
	return c.topicRestricted
}

// SetTopicRestricted toggles the topic restriction flag.
func (c *Channel) SetTopicRestricted(on bool) {
	c.topicRestricted = on
}

// Len returns the member count.
func (c *Channel) Len() int {
	return len(c.members)
}

// IsMember reports whether the handle is in the channel.
func (c *Channel) IsMember(id int) bool {
	_, ok := c.members[id]
	return ok
}

// AddMember inserts the session. The first member of a fresh channel
// is granted operator status; a pending invite is consumed either way.
func (c *Channel) AddMember(s *Session) {
	c.members[s.ID] = s
	if len(c.members) == 1 {
		c.operators[s.ID] = true
	}
	delete(c.invited, s.ID)
}

// RemoveMember drops the handle from the membership and operator sets.
func (c *Channel) RemoveMember(id int) {
	delete(c.members, id)
	delete(c.operators, id)
}

// IsOperator reports whether the handle holds operator status.
func (c *Channel) IsOperator(id int) bool {
	return c.operators[id]
}

// GrantOperator promotes a member, reporting whether that changed
// anything. Non-members are never promoted.
func (c *Channel) GrantOperator(id int) bool {
	if !c.IsMember(id) || c.operators[id] {
		return false
	}
	c.operators[id] = true
	return true
}

// RevokeOperator demotes a member, reporting whether that changed
// anything.
func (c *Channel) RevokeOperator(id int) bool {
	if !c.operators[id] {
		return false
	}
	delete(c.operators, id)
	return true
}

// AddInvite grants the handle one-time entry past the invite-only
// restriction.
func (c *Channel) AddInvite(id int) {
	c.invited[id] = true
}

// IsInvited reports whether the handle holds an unconsumed invite.
func (c *Channel) IsInvited(id int) bool {
	return c.invited[id]
}

// Broadcast queues the line on every member's connection, except the
// handle given; pass NoExcept to reach everyone.
func (c *Channel) Broadcast(line string, except int) {
	for id, member := range c.members {
		if id != except {
			member.Send(line)
		}
	}
}

// NoExcept is the Broadcast except-handle meaning "send to all".
const NoExcept = -1

// Each visits every member; iteration order is unspecified.
func (c *Channel) Each(fn func(*Session)) {
	for _, member := range c.members {
		fn(member)
	}
}

// Names returns the member list for the NAMES reply, operators
// prefixed with @, sorted for deterministic output.
func (c *Channel) Names() string {
	names := make([]string, 0, len(c.members))
	for id, member := range c.members {
		if c.operators[id] {
			names = append(names, "@"+member.Nick)
		} else {
			names = append(names, member.Nick)
		}
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// ModeString renders the active flags as a simple modestring, flag
// letters only, key and limit values withheld.
func (c *Channel) ModeString() string {
	modes := "+"
	if c.inviteOnly {
		modes += "i"
	}
	if c.topicRestricted {
		modes += "t"
	}
	if len(c.key) > 0 {
		modes += "k"
	}
	if c.userLimit > 0 {
		modes += "l"
	}
	return modes
}
