/*
Package irc defines the wire format shared by the rest of the server:
the Message type, the line parser, the command and numeric constants,
and the reply builders that produce exact protocol text.
*/
package irc

import (
	"bytes"
)

const (
	// MaxLineLength is the protocol budget for a single line, the
	// CRLF delimiter excluded. Longer input is truncated silently.
	MaxLineLength = 512
	// MaxParams caps the positional parameter list of one message.
	MaxParams = 15
)

// Message is one parsed protocol line. A message with an empty Command
// is invalid and must be ignored by the caller.
type Message struct {
	// Command is the uppercase-insensitive command or numeric.
	Command string
	// Params are the positional parameters, space delimited.
	Params []string
	// Trailing is the free-text parameter introduced by " :", empty
	// when absent.
	Trailing string
}

// Valid reports whether the message carries a command to dispatch.
func (m Message) Valid() bool {
	return len(m.Command) > 0
}

// Param returns the nth positional parameter, or empty string when it
// does not exist.
func (m Message) Param(n int) string {
	if n < 0 || n >= len(m.Params) {
		return ""
	}
	return m.Params[n]
}

// String encodes the message back into line form without the CRLF
// delimiter.
func (m Message) String() string {
	b := &bytes.Buffer{}
	b.WriteString(m.Command)

	for _, arg := range m.Params {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	if len(m.Trailing) > 0 {
		b.WriteString(" :")
		b.WriteString(m.Trailing)
	}

	return b.String()
}
