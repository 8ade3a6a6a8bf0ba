package argbind

import (
	"fmt"
	"reflect"
)

// bindScope copies parsed values back onto the struct. Every flat descriptor writes its field,
// whether from the command line or its default, so the result never carries stale caller state.
// The selected subcommand branch gets a freshly allocated nested struct bound recursively; every
// sibling branch is set to nil.
func bindScope(v reflect.Value, sc *scope) error {
	for _, a := range sc.args {
		if err := bindArg(v.Field(a.fieldIndex), a); err != nil {
			return fmt.Errorf("bind %q: %w", a.Dest, err)
		}
	}
	for _, sub := range sc.subs {
		fv := v.Field(sub.fieldIndex)
		if !sub.selected {
			fv.Set(reflect.Zero(fv.Type()))
			continue
		}
		inst := reflect.New(fv.Type().Elem())
		if err := bindScope(inst.Elem(), sub.sc); err != nil {
			return err
		}
		fv.Set(inst)
	}
	return nil
}

func bindArg(fv reflect.Value, a *Arg) error {
	val := a.h.val
	t := fv.Type()

	if val == nil {
		fv.Set(reflect.Zero(t))
		return nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		// *bool fields: allocate and fill.
		rv := reflect.ValueOf(val)
		if !rv.Type().ConvertibleTo(t.Elem()) {
			return fmt.Errorf("cannot assign %T to %s", val, t)
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(rv.Convert(t.Elem()))
		fv.Set(ptr)
		return nil
	case reflect.Slice:
		if items, ok := val.([]any); ok {
			out := reflect.MakeSlice(t, len(items), len(items))
			for i, item := range items {
				rv := reflect.ValueOf(item)
				if !rv.Type().ConvertibleTo(t.Elem()) {
					return fmt.Errorf("cannot assign %T element to %s", item, t)
				}
				out.Index(i).Set(rv.Convert(t.Elem()))
			}
			fv.Set(out)
			return nil
		}
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(t) {
			return fmt.Errorf("cannot assign %T to %s", val, t)
		}
		fv.Set(rv)
		return nil
	default:
		rv := reflect.ValueOf(val)
		if !rv.Type().ConvertibleTo(t) {
			return fmt.Errorf("cannot assign %T to %s", val, t)
		}
		fv.Set(rv.Convert(t))
		return nil
	}
}
