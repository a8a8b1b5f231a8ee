package data

import (
	"strings"
)

const (
	minChannelNameLength = 2
	maxChannelNameLength = 50
	// channelNameForbidden are the bytes a channel name may not
	// contain after the # sigil.
	channelNameForbidden = " ,\x00\r\n"
)

// ValidChannelName is the channel-name predicate: # sigil, total
// length 2-50, and no space, comma, NUL, CR or LF in the remainder.
func ValidChannelName(name string) bool {
	if len(name) < minChannelNameLength || len(name) > maxChannelNameLength {
		return false
	}
	if name[0] != '#' {
		return false
	}
	return !strings.ContainsAny(name[1:], channelNameForbidden)
}

// Registry owns every live channel, keyed by case-sensitive name. A
// channel with zero members never survives the operation that emptied
// it; every membership drop goes through DropMember.
type Registry struct {
	channels map[string]*Channel
}

// NewRegistry creates an empty channel registry.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*Channel)}
}

// Get returns the channel or nil.
func (r *Registry) Get(name string) *Channel {
	return r.channels[name]
}

// Contains reports whether the name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.channels[name]
	return ok
}

// GetOrCreate returns the existing channel or constructs a fresh one.
// The name must already have passed ValidChannelName.
func (r *Registry) GetOrCreate(name string) *Channel {
	if ch, ok := r.channels[name]; ok {
		return ch
	}
	ch := NewChannel(name)
	r.channels[name] = ch
	return ch
}

// Remove deletes the channel from the registry.
func (r *Registry) Remove(name string) {
	delete(r.channels, name)
}

// DropMember removes the handle from the channel and reaps the channel
// when that emptied it, reporting whether the channel was removed.
func (r *Registry) DropMember(ch *Channel, id int) bool {
	ch.RemoveMember(id)
	if ch.Len() == 0 {
		delete(r.channels, ch.Name())
		return true
	}
	return false
}

// MemberOf returns every channel the handle belongs to.
func (r *Registry) MemberOf(id int) []*Channel {
	var found []*Channel
	for _, ch := range r.channels {
		if ch.IsMember(id) {
			found = append(found, ch)
		}
	}
	return found
}

// Len returns the number of live channels.
func (r *Registry) Len() int {
	return len(r.channels)
}
