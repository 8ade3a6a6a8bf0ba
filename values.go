package argbind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Accepted spellings for textual boolean flags.
var (
	trueTokens  = map[string]struct{}{"1": {}, "true": {}, "t": {}, "okay": {}, "ok": {}, "affirmative": {}, "yes": {}, "y": {}, "totally": {}}
	falseTokens = map[string]struct{}{"0": {}, "false": {}, "f": {}, "no": {}, "n": {}, "nope": {}, "nah": {}}
)

// ParseBoolToken converts a textual boolean token. Truthy spellings are 1, true, t, okay, ok,
// affirmative, yes, y, totally; falsy spellings are 0, false, f, no, n, nope, nah. Any other
// token yields a [BoolParseError].
func ParseBoolToken(s string) (bool, error) {
	v := strings.ToLower(s)
	if _, ok := trueTokens[v]; ok {
		return true, nil
	}
	if _, ok := falseTokens[v]; ok {
		return false, nil
	}
	return false, &BoolParseError{Token: s}
}

// convertScalar converts a single command-line token to a value of the given kind. The returned
// concrete types are string, bool, int64, uint64, float64, and time.Duration; the binder converts
// them onto the exact field type.
func convertScalar(kind Kind, s string) (any, error) {
	switch kind {
	case KindString:
		return s, nil
	case KindBool:
		v, err := ParseBoolToken(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	case KindInt:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return v, nil
	case KindUint:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned integer %q", s)
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		return v, nil
	case KindDuration:
		v, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", s)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("cannot convert %q: unknown kind", s)
	}
}

// holder carries an argument's value between parsing and binding. It starts out loaded with the
// default; Set marks the value as explicitly provided.
type holder struct {
	val  any
	seen bool
}

func (h *holder) set(v any) {
	h.val = v
	h.seen = true
}

// scalarFlag adapts a single-valued argument onto [flag.Value].
type scalarFlag struct {
	arg *Arg
}

func (f *scalarFlag) Set(s string) error {
	v, err := convertScalar(f.arg.Kind, s)
	if err != nil {
		return err
	}
	f.arg.h.set(v)
	return nil
}

func (f *scalarFlag) String() string {
	if f == nil || f.arg == nil {
		return ""
	}
	return formatValue(f.arg.h.val)
}

// listFlag adapts a multi-valued argument onto [flag.Value]. The first Set discards the default;
// every Set appends one converted element.
type listFlag struct {
	arg *Arg
}

func (f *listFlag) Set(s string) error {
	v, err := convertScalar(f.arg.Kind, s)
	if err != nil {
		return err
	}
	h := f.arg.h
	if !h.seen {
		h.val = nil
		h.seen = true
	}
	cur, _ := h.val.([]any)
	h.val = append(cur, v)
	return nil
}

func (f *listFlag) String() string {
	if f == nil || f.arg == nil {
		return ""
	}
	return formatValue(f.arg.h.val)
}

// boolPairFlag is one half of an affirmative/negated flag pair. The bare flag sets its stored
// polarity; an explicit --flag=false inverts it.
type boolPairFlag struct {
	arg    *Arg
	negate bool
}

func (f *boolPairFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return &BoolParseError{Token: s}
	}
	if f.negate {
		v = !v
	}
	f.arg.h.set(v)
	return nil
}

func (f *boolPairFlag) String() string {
	if f == nil || f.arg == nil {
		return ""
	}
	return formatValue(f.arg.h.val)
}

// IsBoolFlag lets the flag package accept the bare spelling without a value.
func (f *boolPairFlag) IsBoolFlag() bool { return true }

// formatValue renders a value the way Stringify and the table printer display it: strings
// quoted, slices bracketed, nil pointers and absent values as nil.
func formatValue(v any) string {
	if v == nil {
		return "nil"
	}
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case []any:
		parts := make([]string, len(x))
		for i, it := range x {
			parts[i] = formatValue(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Pointer:
		if rv.IsNil() {
			return "nil"
		}
		return formatValue(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}
