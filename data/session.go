/*
Package data holds the in-memory state of the server: one Session per
accepted connection, one Channel per joined name, and the Registry
owning the channels. Cross-references between channels and sessions
are stored as integer connection handles, never as owning references;
teardown removes every association before a handle can be reused.
*/
package data

// Sender is the outbound half of a connection as the state layer sees
// it. Implemented by inet.Conn; tests substitute a recorder.
type Sender interface {
	Send(line string)
}

// Session is the server-side state for one client connection.
type Session struct {
	// ID is the stable connection handle, unique for the lifetime of
	// the connection.
	ID int

	Nick     string
	Username string
	Realname string

	// Registration progress. Registered flips exactly once when all
	// three flags hold and never reverts.
	HasPass    bool
	HasNick    bool
	HasUser    bool
	Registered bool

	out Sender
}

// NewSession creates the state for a freshly accepted connection.
func NewSession(id int, out Sender) *Session {
	return &Session{ID: id, out: out}
}

// Send queues one reply line on the session's connection.
func (s *Session) Send(line string) {
	if s.out != nil {
		s.out.Send(line)
	}
}

// TryRegister flips Registered when all three registration flags are
// set, reporting whether the flip happened just now. It reports false
// on every later call, which keeps the welcome sequence a one-shot.
func (s *Session) TryRegister() bool {
	if s.Registered || !s.HasPass || !s.HasNick || !s.HasUser {
		return false
	}
	s.Registered = true
	return true
}

// DisplayNick is the nick used in replies addressed to the session,
// "*" until one is set.
func (s *Session) DisplayNick() string {
	if len(s.Nick) == 0 {
		return "*"
	}
	return s.Nick
}
