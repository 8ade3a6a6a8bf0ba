package argbind

import (
	"fmt"
	"strings"
)

// Arg describes one flag or positional argument synthesized from a struct field. Most callers
// never build one directly; the field reader produces them and struct tags supply explicit
// overrides.
type Arg struct {
	// Dest is the snake_case destination name, unique within its scope.
	Dest string
	// Kind is the scalar value type; for multi-valued arguments it is the element type.
	Kind Kind
	// Arity says how many values the argument accepts.
	Arity Arity
	// Default is applied when the argument is absent from the command line.
	Default any
	// Aliases are extra accepted spellings, without leading dashes.
	Aliases []string
	// Help is the user-supplied help text, shown after the generated type/default prefix.
	Help string
	// Positional arguments carry no leading dash and no aliases.
	Positional bool
	// Required arguments must be present on the command line.
	Required bool
	// BoolFlag selects --flag/--no-flag pairing for booleans; when false the flag takes a
	// textual true/false token instead.
	BoolFlag bool
	// OneDash renders the long spelling with a single dash in help text.
	OneDash bool

	// unresolved marks a *bool field with a nil default: neither true nor false until the
	// command line says so.
	unresolved bool
	ptrBool    bool
	fieldIndex int
	h          *holder
}

// flagName is the primary spelling: the destination with underscores replaced by dashes.
func (a *Arg) flagName() string {
	return strings.ReplaceAll(a.Dest, "_", "-")
}

// names returns every accepted spelling without dashes, primary first.
func (a *Arg) names() []string {
	out := make([]string, 0, len(a.Aliases)+1)
	out = append(out, a.flagName())
	out = append(out, a.Aliases...)
	return out
}

// display renders a spelling with its dash prefix for help text. Single-character names and
// one-dash mode use a single dash.
func (a *Arg) display(name string) string {
	if len(name) == 1 || a.OneDash {
		return "-" + name
	}
	return "--" + name
}

// invocation is the comma-separated list of spellings shown in help text, or the upper-cased
// destination for positionals.
func (a *Arg) invocation() string {
	if a.Positional {
		return strings.ToUpper(a.Dest)
	}
	parts := make([]string, 0, len(a.Aliases)+1)
	for _, n := range a.names() {
		parts = append(parts, a.display(n))
	}
	return strings.Join(parts, ", ")
}

// pairedBool reports whether the argument registers as an affirmative/negated flag pair.
func (a *Arg) pairedBool() bool {
	return a.Kind == KindBool && a.BoolFlag && a.Arity == ArityNone
}

// negated reports whether the no- prefixed twin is registered: only when the default is
// unresolved or true, so the pair can actually change the outcome in both directions.
func (a *Arg) negated() bool {
	if !a.pairedBool() {
		return false
	}
	if a.unresolved {
		return true
	}
	v, ok := a.Default.(bool)
	return ok && v
}

// takesValue reports whether the flag consumes a following token on the command line.
func (a *Arg) takesValue() bool {
	return !a.pairedBool()
}

// typeName is the type label used in generated help text, e.g. "int" or "[]string".
func (a *Arg) typeName() string {
	if a.Arity != ArityNone {
		return "[]" + a.Kind.String()
	}
	return a.Kind.String()
}

func (a *Arg) String() string {
	return fmt.Sprintf("Arg(%s, type=%s, default=%s)", a.invocation(), a.typeName(), formatValue(a.Default))
}
