package argbind

import (
	"fmt"
	"reflect"
	"time"
)

// Kind is the scalar type of an argument's value. Slice fields use the Kind of their element
// type together with a non-none [Arity].
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDuration
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// Arity says how many values an argument accepts on the command line.
type Arity int

const (
	// ArityNone is a single-valued argument.
	ArityNone Arity = iota
	// ArityZeroOrMore accepts any number of values, including none.
	ArityZeroOrMore
	// ArityOneOrMore requires at least one value when the argument is present.
	ArityOneOrMore
)

var durationType = reflect.TypeOf(time.Duration(0))

// kindOf maps a scalar Go type onto a Kind. Returns an error for types that cannot be converted
// from a command-line token.
func kindOf(t reflect.Type) (Kind, error) {
	if t == durationType {
		return KindDuration, nil
	}
	switch t.Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Bool:
		return KindBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	default:
		return 0, fmt.Errorf("unsupported field type %s", t)
	}
}

// inferKindArity decides an argument's scalar kind and arity from its declared field type and its
// default value. Slices are multi-valued: zero-or-more when the default is empty, one-or-more
// otherwise. Everything else is single-valued.
//
// The def value may be invalid (no default); absence never fails, it only relaxes the arity.
func inferKindArity(t reflect.Type, def reflect.Value) (Kind, Arity, error) {
	if t.Kind() == reflect.Slice {
		kind, err := kindOf(t.Elem())
		if err != nil {
			return 0, ArityNone, err
		}
		if def.IsValid() && def.Kind() == reflect.Slice && def.Len() > 0 {
			return kind, ArityOneOrMore, nil
		}
		return kind, ArityZeroOrMore, nil
	}
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Bool {
		// *bool: a boolean whose default may be unresolved (nil).
		return KindBool, ArityNone, nil
	}
	kind, err := kindOf(t)
	if err != nil {
		return 0, ArityNone, err
	}
	return kind, ArityNone, nil
}
