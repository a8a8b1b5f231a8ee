package irc

import (
	"regexp"
	"strings"
)

// commandRegexp validates the command token of an incoming line.
var commandRegexp = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Parse turns a single line, CRLF already stripped, into a Message.
// Whitespace is trimmed, lines over MaxLineLength are truncated, runs
// of spaces between tokens collapse, and a leading :prefix token is
// skipped since clients cannot be trusted to supply one. Empty or
// malformed lines return an invalid Message and are dropped silently
// by the caller; that silence is deliberate, not an oversight.
func Parse(line string) Message {
	line = strings.Trim(line, " \t\r\n")
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}
	if len(line) == 0 {
		return Message{}
	}

	if line[0] == ':' {
		space := strings.IndexByte(line, ' ')
		if space < 0 {
			return Message{}
		}
		line = line[space+1:]
	}

	var trailing string
	rest := line
	if marker := strings.Index(line, " :"); marker >= 0 {
		trailing = line[marker+2:]
		rest = line[:marker]
	}

	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return Message{}
	}

	command := tokens[0]
	if !commandRegexp.MatchString(command) {
		return Message{}
	}

	params := tokens[1:]
	if len(params) > MaxParams {
		params = params[:MaxParams]
	}

	return Message{Command: command, Params: params, Trailing: trailing}
}
