package argbind

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/huandu/xstrings"
	"github.com/olekukonko/tablewriter"
)

// Stringify renders a populated result as a single line in declaration order:
// Config(count=5, name="x", serve=Serve(port=8080)). Unselected subcommand branches print as
// nil.
func Stringify(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "nil"
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return formatValue(v)
	}
	t := rv.Type()
	var pairs []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("arg") == "-" {
			continue
		}
		name := xstrings.ToSnakeCase(field.Name)
		fv := rv.Field(i)
		var val string
		if isSubcommandField(field.Type) {
			if fv.IsNil() {
				val = "nil"
			} else {
				val = Stringify(fv.Interface())
			}
		} else {
			val = formatValue(fv.Interface())
		}
		pairs = append(pairs, name+"="+val)
	}
	return t.Name() + "(" + strings.Join(pairs, ", ") + ")"
}

// TableOptions configures the tabular printer.
type TableOptions struct {
	// Cols controls how rows are split into side-by-side tables: "" or "1" for a single
	// table, a number for that many columns, "auto" for roughly nine rows per column, or
	// "sub"/"sub-auto"/"sub-N" to group rows by subcommand first. Defaults to "sub-auto".
	Cols string

	// Gap separates side-by-side tables. Defaults to three spaces.
	Gap string
}

// Table renders a populated result as one or more two-column arg/value tables. Nested
// subcommand fields are flattened with parent__child naming.
func Table(v any, opts *TableOptions) string {
	cols, gap := "sub-auto", "   "
	if opts != nil {
		if opts.Cols != "" {
			cols = opts.Cols
		}
		if opts.Gap != "" {
			gap = opts.Gap
		}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	rows := flattenPairs(rv, "")

	var parts []string
	if rest, ok := strings.CutPrefix(cols, "sub"); ok {
		rest = strings.TrimPrefix(rest, "-")
		for _, group := range splitBySub(rows) {
			for _, chunk := range splitByCols(group, colsValue(rest, len(group))) {
				parts = append(parts, renderTable(chunk))
			}
		}
	} else {
		for _, chunk := range splitByCols(rows, colsValue(cols, len(rows))) {
			parts = append(parts, renderTable(chunk))
		}
	}
	return mergeColumns(parts, gap)
}

// PrintArgs writes the result in the requested mode; ShowNone writes nothing.
func PrintArgs(w io.Writer, v any, mode ShowMode, opts *TableOptions) {
	switch mode {
	case ShowLine:
		fmt.Fprintln(w, Stringify(v))
	case ShowTable:
		fmt.Fprintln(w, Table(v, opts))
	}
}

// flattenPairs walks a result struct into arg/value rows, recursing into selected subcommand
// branches with parent__child keys. Nil branches produce a single row with value nil.
func flattenPairs(rv reflect.Value, prefix string) [][2]string {
	var rows [][2]string
	if rv.Kind() != reflect.Struct {
		return rows
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("arg") == "-" {
			continue
		}
		name := prefix + xstrings.ToSnakeCase(field.Name)
		fv := rv.Field(i)
		if isSubcommandField(field.Type) && !fv.IsNil() {
			rows = append(rows, flattenPairs(fv.Elem(), name+"__")...)
			continue
		}
		rows = append(rows, [2]string{name, formatValue(fv.Interface())})
	}
	return rows
}

func colsValue(cols string, n int) int {
	switch cols {
	case "", "1":
		return 1
	case "auto":
		c := int(math.Ceil(float64(n) / 9))
		if c < 1 {
			c = 1
		}
		return c
	}
	c, err := strconv.Atoi(cols)
	if err != nil || c < 1 {
		return 1
	}
	return c
}

// splitByCols cuts rows into up to n evenly sized chunks.
func splitByCols(rows [][2]string, n int) [][][2]string {
	if len(rows) == 0 {
		return nil
	}
	size := int(math.Ceil(float64(len(rows)) / float64(n)))
	var parts [][][2]string
	for len(rows) > 0 {
		if size > len(rows) {
			size = len(rows)
		}
		parts = append(parts, rows[:size])
		rows = rows[size:]
	}
	return parts
}

// splitBySub groups rows by their parent__ prefix, preserving encounter order. Rows without a
// prefix form their own leading group.
func splitBySub(rows [][2]string) [][][2]string {
	var order []string
	groups := make(map[string][][2]string)
	for _, row := range rows {
		key := ""
		if i := strings.Index(row[0], "__"); i >= 0 {
			key = row[0][:i]
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}
	out := make([][][2]string, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}

func renderTable(rows [][2]string) string {
	var buf bytes.Buffer
	t := tablewriter.NewWriter(&buf)
	t.SetHeader([]string{"arg", "value"})
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	for _, row := range rows {
		t.Append([]string{row[0], row[1]})
	}
	t.Render()
	return strings.TrimRight(buf.String(), "\n")
}

// mergeColumns lays rendered tables side by side, padding short tables with spaces so the
// columns stay aligned.
func mergeColumns(parts []string, gap string) string {
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	split := make([][]string, len(parts))
	height := 0
	for i, part := range parts {
		split[i] = strings.Split(part, "\n")
		if len(split[i]) > height {
			height = len(split[i])
		}
	}
	var b strings.Builder
	for row := 0; row < height; row++ {
		for i, lines := range split {
			if row < len(lines) {
				b.WriteString(lines[row])
			} else {
				b.WriteString(strings.Repeat(" ", len(lines[0])))
			}
			if i != len(split)-1 {
				b.WriteString(gap)
			}
		}
		if row != height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
