package argbind

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huandu/xstrings"

	"github.com/mfridman/argbind/pkg/textutil"
)

// Usage renders the help text for v without parsing anything. The same text is printed when -h
// or --help shows up on the command line.
func Usage(v any, opts *Options) (string, error) {
	opts = checkAndSetOptions(opts)
	rv, err := structValue(v)
	if err != nil {
		return "", err
	}
	name := opts.Name
	if name == "" {
		name = xstrings.ToSnakeCase(rv.Type().Name())
		if name == "" {
			name = "args"
		}
	}
	root, err := readScope(name, rv, opts)
	if err != nil {
		return "", err
	}
	if !opts.DisableShortcuts {
		assignShortcuts(root)
	}
	return usageText(opts, []*scope{root}), nil
}

// palette holds the three help text colors: yellow section headers, green invocations, red
// type/default metadata. Disabled palettes pass text through untouched.
type palette struct {
	header func(a ...interface{}) string
	invoc  func(a ...interface{}) string
	meta   func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
		return palette{header: plain, invoc: plain, meta: plain}
	}
	return palette{
		header: color.New(color.FgYellow).SprintFunc(),
		invoc:  color.New(color.FgGreen).SprintFunc(),
		meta:   color.New(color.FgRed).SprintFunc(),
	}
}

// usageText renders help for the deepest scope in path, with ancestor flags listed separately
// the way nested commands usually present global flags.
func usageText(opts *Options, path []*scope) string {
	pal := newPalette(!opts.NoColor)
	cur := path[len(path)-1]

	var b strings.Builder

	if opts.Description != "" && len(path) == 1 {
		for _, line := range textutil.Wrap(opts.Description, 80) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(pal.header("usage:"))
	b.WriteString(" ")
	b.WriteString(usageLine(path))
	b.WriteString("\n")

	if len(cur.subs) > 0 {
		b.WriteString("\n")
		b.WriteString(pal.header("commands:"))
		b.WriteString("\n")
		rows := make([]usageRow, 0, len(cur.subs))
		for _, sub := range cur.subs {
			rows = append(rows, usageRow{invocation: sub.name, help: sub.help})
		}
		writeRows(&b, rows, pal)
	}

	if rows := positionalRows(cur, opts, pal); len(rows) > 0 {
		b.WriteString("\n")
		b.WriteString(pal.header("arguments:"))
		b.WriteString("\n")
		writeRows(&b, rows, pal)
	}

	local := flagRows(cur, opts, pal)
	local = append(local, usageRow{invocation: "-h, --help", help: "show this help message and exit"})
	b.WriteString("\n")
	b.WriteString(pal.header("flags:"))
	b.WriteString("\n")
	writeRows(&b, local, pal)

	var global []usageRow
	for i := 0; i < len(path)-1; i++ {
		global = append(global, flagRows(path[i], opts, pal)...)
	}
	if len(global) > 0 {
		b.WriteString("\n")
		b.WriteString(pal.header("global flags:"))
		b.WriteString("\n")
		writeRows(&b, global, pal)
	}

	if len(cur.subs) > 0 {
		fmt.Fprintf(&b, "\nUse \"%s [command] --help\" for more information about a command.\n", scopePath(path))
	}

	return strings.TrimRight(b.String(), "\n")
}

func scopePath(path []*scope) string {
	names := make([]string, 0, len(path))
	for _, sc := range path {
		names = append(names, sc.name)
	}
	return strings.Join(names, " ")
}

func usageLine(path []*scope) string {
	cur := path[len(path)-1]
	line := scopePath(path)
	hasFlags := false
	for _, a := range cur.args {
		if a.Positional {
			continue
		}
		hasFlags = true
		break
	}
	if hasFlags || len(path) > 1 {
		line += " [flags]"
	}
	for _, a := range cur.args {
		if !a.Positional {
			continue
		}
		metavar := strings.ToUpper(a.Dest)
		if a.Arity != ArityNone {
			line += fmt.Sprintf(" [%s ...]", metavar)
		} else if a.Required {
			line += " " + metavar
		} else {
			line += fmt.Sprintf(" [%s]", metavar)
		}
	}
	if len(cur.subs) > 0 {
		line += " [command]"
	}
	return line
}

type usageRow struct {
	invocation string
	help       string
}

func positionalRows(sc *scope, opts *Options, pal palette) []usageRow {
	var rows []usageRow
	for _, a := range sc.args {
		if !a.Positional {
			continue
		}
		rows = append(rows, usageRow{invocation: a.invocation(), help: argHelp(a, opts, pal)})
	}
	return rows
}

func flagRows(sc *scope, opts *Options, pal palette) []usageRow {
	var rows []usageRow
	for _, a := range sc.args {
		if a.Positional {
			continue
		}
		rows = append(rows, usageRow{invocation: a.invocation(), help: argHelp(a, opts, pal)})
	}
	return rows
}

// argHelp composes a descriptor's help text: the generated "{type}, default: {default}." prefix
// unless disabled, then the user's help text.
func argHelp(a *Arg, opts *Options, pal palette) string {
	var parts []string
	if !opts.DisableHelpPrefix {
		r := strings.NewReplacer(
			"{type}", pal.meta(a.typeName()),
			"{default}", pal.meta(formatValue(a.Default)),
		)
		parts = append(parts, r.Replace(opts.HelpFormat))
	}
	if a.Help != "" {
		parts = append(parts, a.Help)
	}
	return strings.Join(parts, " ")
}

// writeRows prints two-column rows with the invocation padded to the widest entry and the help
// text wrapped at 80 columns. Padding is computed on the raw invocation so ANSI codes do not
// skew the alignment.
func writeRows(b *strings.Builder, rows []usageRow, pal palette) {
	maxLen := 0
	for _, row := range rows {
		if len(row.invocation) > maxLen {
			maxLen = len(row.invocation)
		}
	}
	nameWidth := maxLen + 4
	wrapWidth := 80 - nameWidth
	for _, row := range rows {
		if row.help == "" {
			fmt.Fprintf(b, "  %s\n", pal.invoc(row.invocation))
			continue
		}
		lines := textutil.Wrap(row.help, wrapWidth)
		padding := strings.Repeat(" ", maxLen-len(row.invocation)+4)
		fmt.Fprintf(b, "  %s%s%s\n", pal.invoc(row.invocation), padding, lines[0])
		indent := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indent, line)
		}
	}
}
