package argbind

import (
	"fmt"
	"strings"
)

// BoolParseError is returned when a textual boolean flag receives a token that is neither truthy
// nor falsy. See [ParseBoolToken] for the accepted spellings.
type BoolParseError struct {
	Token string
}

func (e *BoolParseError) Error() string {
	return "boolean value expected"
}

// UnknownCommandError is returned when a bare argument does not match any declared subcommand.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown command %q. Did you mean one of these?\n\t%s",
			e.Name,
			strings.Join(e.Suggestions, "\n\t"))
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

// MissingArgError is returned when a required positional has no value and no default, when a
// one-or-more flag is given without values, or when a field tagged required is absent.
type MissingArgError struct {
	Dest string
}

func (e *MissingArgError) Error() string {
	return fmt.Sprintf("missing required value for %q", e.Dest)
}
