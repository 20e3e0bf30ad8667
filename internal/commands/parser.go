package commands

import (
	"strings"

	"vpn-tg-admin/internal/constants"
)

// Outcome classifies a parsed message
type Outcome int

const (
	// NotACommand means the text does not start with the command prefix
	NotACommand Outcome = iota
	// Unknown means the text is prefixed but names no known command
	Unknown
	// Matched means the text names a known command
	Matched
)

// Command is a parsed command invocation
type Command struct {
	Name Name
	// Token is the command word without its prefix, as typed
	Token string
	Args  []string
}

// Argc returns the number of tokens including the command name
func (c Command) Argc() int {
	return len(c.Args) + 1
}

// Arg returns the i-th positional argument or an empty string
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Parse normalizes text and splits it into a command and its arguments.
// There is no quoting: arguments never contain whitespace.
func Parse(text, prefix string) (Command, Outcome) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(tokens) == 0 || prefix == "" || !strings.HasPrefix(tokens[0], prefix) {
		return Command{}, NotACommand
	}

	token := strings.TrimPrefix(tokens[0], prefix)
	// Telegram group chats address commands as /cmd@botname
	if i := strings.Index(token, constants.BotNameSeparator); i >= 0 {
		token = token[:i]
	}

	cmd := Command{
		Token: token,
		Args:  tokens[1:],
	}

	name, ok := Lookup(token)
	if !ok {
		return cmd, Unknown
	}

	cmd.Name = name
	return cmd, Matched
}
