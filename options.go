package argbind

import (
	"io"
	"log/slog"
	"os"
)

// DefaultHelpFormat is the template for the auto-generated portion of a flag's help text. The
// {type} and {default} placeholders are replaced with the field's type name and its default
// value.
const DefaultHelpFormat = "{type}, default: {default}."

// ShowMode selects how the parsed result is printed after a successful parse.
type ShowMode int

const (
	// ShowNone disables result printing.
	ShowNone ShowMode = iota
	// ShowLine prints the result as a single line, e.g. Config(count=5, name="x").
	ShowLine
	// ShowTable prints the result as a two-column arg/value table.
	ShowTable
)

// Options controls parsing and presentation. The zero value gives the default behavior: short
// aliases are generated, booleans are flag pairs, long names use a double dash, help text carries
// the generated type/default prefix, and help output is colorized when the terminal supports it.
//
// The options parameter on every function in this package may be nil, in which case defaults are
// used.
type Options struct {
	// Name is the program name used in usage text. Defaults to the snake_case name of the
	// struct type being parsed.
	Name string

	// Description is an optional one-paragraph summary shown at the top of the help text.
	Description string

	// DisableShortcuts turns off automatic short-alias generation (--dry_run -> -dr).
	DisableShortcuts bool

	// TextualBool registers boolean fields as value-taking flags that accept textual true/false
	// tokens (--verbose yes) instead of the default --verbose/--no-verbose pairing.
	TextualBool bool

	// OneDash renders long flag names with a single dash in help text (-name instead of
	// --name). The standard flag package accepts both spellings on the command line either way.
	OneDash bool

	// HelpFormat overrides [DefaultHelpFormat] for the generated help prefix.
	HelpFormat string

	// DisableHelpPrefix drops the generated "{type}, default: ..." prefix entirely.
	DisableHelpPrefix bool

	// NoColor disables ANSI colors in help output. Colors are also disabled automatically when
	// the output is not a terminal or NO_COLOR is set.
	NoColor bool

	// Override forces the global TextualBool and OneDash settings onto every field, even fields
	// that set their own behavior through struct tags.
	Override bool

	// Output is the destination for help text and, when Show is set, the printed result.
	// Defaults to os.Stderr for help and os.Stdout for results.
	Output io.Writer

	// Logger, when non-nil, receives debug-level traces of descriptor synthesis and scope
	// selection.
	Logger *slog.Logger

	// Show prints the populated result after a successful parse.
	Show ShowMode

	// Table configures the table printer used when Show is [ShowTable].
	Table *TableOptions
}

// checkAndSetOptions returns a copy of opts with defaults applied. The input may be nil.
func checkAndSetOptions(opts *Options) *Options {
	out := &Options{}
	if opts != nil {
		*out = *opts
	}
	if out.HelpFormat == "" {
		out.HelpFormat = DefaultHelpFormat
	}
	return out
}

// helpOutput is where usage text and errors are written.
func (o *Options) helpOutput() io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return os.Stderr
}

// showOutput is where the parsed result is printed.
func (o *Options) showOutput() io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return os.Stdout
}

func (o *Options) logger() *slog.Logger {
	return o.Logger
}
