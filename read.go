package argbind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/huandu/xstrings"
)

// scope is one level of the descriptor tree: the arguments declared directly on a struct plus
// one subcommand branch per pointer-to-struct field.
type scope struct {
	name string
	args []*Arg
	subs []*subcommand
}

// subcommand is a named, mutually exclusive nested scope. At most one sibling is selected per
// parse; unselected branches bind a nil pointer.
type subcommand struct {
	name       string
	help       string
	sc         *scope
	fieldIndex int
	selected   bool
}

func (s *scope) findSub(name string) *subcommand {
	for _, sub := range s.subs {
		if sub.name == name {
			return sub
		}
	}
	return nil
}

func (s *scope) subNames() []string {
	out := make([]string, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub.name)
	}
	return out
}

// positionalSlots counts how many bare tokens this scope's positionals can absorb. Returns -1
// when a positional slice can absorb everything.
func (s *scope) positionalSlots() int {
	n := 0
	for _, a := range s.args {
		if !a.Positional {
			continue
		}
		if a.Arity != ArityNone {
			return -1
		}
		n++
	}
	return n
}

// flatten appends every descriptor in the tree, scope arguments before subcommand branches, in
// declaration order. This is the processing order the shortcut assigner relies on.
func (s *scope) flatten(out []*Arg) []*Arg {
	out = append(out, s.args...)
	for _, sub := range s.subs {
		out = sub.sc.flatten(out)
	}
	return out
}

// structValue unwraps a pointer-to-struct argument. Everything else is a caller error.
func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("argbind: want non-nil pointer to struct, got %T", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("argbind: want pointer to struct, got %T", v)
	}
	return rv, nil
}

// isSubcommandField reports whether a field declares a subcommand branch: any pointer to struct
// except *time.Time-like scalar wrappers is a branch. *bool is handled by the inferencer.
func isSubcommandField(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct
}

// readScope walks a struct's exported fields in declaration order and produces the scope's
// descriptors, recursing into subcommand branches. Descriptors are built fresh on every call, so
// repeated parses of the same struct type never see each other's mutations.
//
// Defaults come from the instance's current field values; a default tag, when present, overrides
// the instance value. Tag-declared aliases, help text, and per-field modes survive untouched.
func readScope(name string, v reflect.Value, opts *Options) (*scope, error) {
	sc := &scope{name: name}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("arg")
		if tag == "-" {
			continue
		}

		if isSubcommandField(field.Type) {
			subName := xstrings.ToSnakeCase(field.Name)
			inst := v.Field(i)
			var sv reflect.Value
			if inst.IsNil() {
				sv = reflect.New(field.Type.Elem()).Elem()
			} else {
				sv = inst.Elem()
			}
			nested, err := readScope(subName, sv, opts)
			if err != nil {
				return nil, err
			}
			sc.subs = append(sc.subs, &subcommand{
				name:       subName,
				help:       field.Tag.Get("help"),
				sc:         nested,
				fieldIndex: i,
			})
			if l := opts.logger(); l != nil {
				l.Debug("read subcommand", "scope", name, "name", subName)
			}
			continue
		}

		arg, err := readField(field, v.Field(i), i, opts)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		sc.args = append(sc.args, arg)
		if l := opts.logger(); l != nil {
			l.Debug("read field", "scope", name, "dest", arg.Dest, "type", arg.typeName(), "default", formatValue(arg.Default))
		}
	}
	return sc, nil
}

// readField synthesizes one descriptor from a struct field: destination from the field name,
// kind and arity inferred from the type and default, explicit overrides from tags.
func readField(field reflect.StructField, fv reflect.Value, index int, opts *Options) (*Arg, error) {
	kind, arity, err := inferKindArity(field.Type, fv)
	if err != nil {
		return nil, err
	}

	arg := &Arg{
		Dest:       xstrings.ToSnakeCase(field.Name),
		Kind:       kind,
		Arity:      arity,
		Help:       field.Tag.Get("help"),
		BoolFlag:   !opts.TextualBool,
		OneDash:    opts.OneDash,
		fieldIndex: index,
	}

	if err := applyArgTag(arg, field.Tag.Get("arg")); err != nil {
		return nil, err
	}
	if opts.Override {
		arg.BoolFlag = !opts.TextualBool
		arg.OneDash = opts.OneDash
	}

	// Default from the instance value; *bool with a nil pointer stays unresolved.
	if field.Type.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Bool {
		arg.ptrBool = true
		if fv.IsNil() {
			arg.unresolved = true
		} else {
			arg.Default = fv.Elem().Bool()
		}
	} else {
		arg.Default = fv.Interface()
	}

	if text, ok := field.Tag.Lookup("default"); ok {
		if err := applyDefaultTag(arg, text); err != nil {
			return nil, err
		}
	}

	arg.h = &holder{val: arg.Default}
	return arg, nil
}

// applyArgTag parses the arg tag: dash-prefixed tokens add aliases, bare keywords adjust the
// argument's mode.
func applyArgTag(arg *Arg, tag string) error {
	for _, token := range strings.Fields(tag) {
		switch {
		case strings.HasPrefix(token, "-"):
			name := strings.TrimLeft(token, "-")
			if name == "" {
				return fmt.Errorf("malformed alias %q", token)
			}
			arg.Aliases = append(arg.Aliases, name)
		case token == "positional":
			arg.Positional = true
		case token == "required":
			arg.Required = true
		case token == "textbool":
			arg.BoolFlag = false
		case token == "onedash":
			arg.OneDash = true
		default:
			return fmt.Errorf("unknown arg tag token %q", token)
		}
	}
	if arg.Positional && len(arg.Aliases) > 0 {
		return fmt.Errorf("positional %q cannot have aliases", arg.Dest)
	}
	return nil
}

// applyDefaultTag replaces the instance default with a textual one. Multi-valued arguments take
// a comma-separated list; the arity is re-inferred from the new default.
func applyDefaultTag(arg *Arg, text string) error {
	if arg.Arity != ArityNone {
		var items []any
		if text != "" {
			for _, part := range strings.Split(text, ",") {
				v, err := convertScalar(arg.Kind, part)
				if err != nil {
					return fmt.Errorf("default %q: %w", text, err)
				}
				items = append(items, v)
			}
		}
		arg.Default = items
		if len(items) > 0 {
			arg.Arity = ArityOneOrMore
		} else {
			arg.Arity = ArityZeroOrMore
		}
		return nil
	}
	v, err := convertScalar(arg.Kind, text)
	if err != nil {
		return fmt.Errorf("default %q: %w", text, err)
	}
	arg.Default = v
	arg.unresolved = false
	return nil
}
