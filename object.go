package dive

import (
	"fmt"
	"reflect"
)

// Object is implemented by values that expose named accessors. During
// traversal a plain key applied to an Object invokes the accessor of
// that name with no arguments; a terminal write invokes it with the new
// value as its single argument.
type Object interface {
	// HasAccessor reports whether the object exposes an accessor of
	// this name, independent of what the accessor would return.
	HasAccessor(name string) bool

	// CallAccessor invokes the named accessor. Zero arguments is a
	// read, one argument is a write.
	CallAccessor(name string, args ...any) (any, error)
}

// FieldAccessor exposes map-style direct fields on an object value.
// Forced map-key descriptors dispatch here, bypassing accessor
// invocation.
type FieldAccessor interface {
	// Field returns the named field and whether it is present.
	Field(name string) (any, bool)

	// SetField stores value under the named field.
	SetField(name string, value any)
}

// PropertyAccessor exposes assignable named properties. Property
// descriptors dispatch here. Unlike accessor calls, property slots are
// addressable: writes can vivify containers through them.
type PropertyAccessor interface {
	// Property returns the named property and whether it is present.
	Property(name string) (any, bool)

	// SetProperty assigns value to the named property.
	SetProperty(name string, value any) error
}

// AccessorFunc is a single named accessor. Called with no arguments it
// reads; called with one argument it writes.
type AccessorFunc func(args ...any) (any, error)

// FuncObject is a capability table implementing Object: accessor names
// mapped to functions. It is the reflection-free way to expose accessor
// dispatch on arbitrary state.
type FuncObject map[string]AccessorFunc

// HasAccessor implements Object.
func (o FuncObject) HasAccessor(name string) bool {
	_, ok := o[name]
	return ok
}

// CallAccessor implements Object.
func (o FuncObject) CallAccessor(name string, args ...any) (any, error) {
	fn, ok := o[name]
	if !ok {
		return nil, fmt.Errorf("no accessor %q", name)
	}
	return fn(args...)
}

// WrapMethods adapts a value's exported zero- and one-argument methods
// into an Object. The shim is deliberately narrow: only methods taking
// at most one parameter and returning at most a value and an error are
// exposed; everything else is invisible to traversal.
func WrapMethods(v any) Object {
	return methodObject{rv: reflect.ValueOf(v)}
}

type methodObject struct {
	rv reflect.Value
}

func (o methodObject) HasAccessor(name string) bool {
	m := o.rv.MethodByName(name)
	return m.IsValid() && usableMethod(m.Type())
}

func (o methodObject) CallAccessor(name string, args ...any) (any, error) {
	m := o.rv.MethodByName(name)
	if !m.IsValid() || !usableMethod(m.Type()) {
		return nil, fmt.Errorf("no accessor %q on %s", name, o.rv.Type())
	}
	mt := m.Type()
	if len(args) != mt.NumIn() {
		return nil, fmt.Errorf("accessor %q takes %d argument(s), got %d", name, mt.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := mt.In(i)
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			if !av.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf("accessor %q: cannot use %T as %s", name, a, pt)
			}
			av = av.Convert(pt)
		}
		in[i] = av
	}
	out := m.Call(in)
	return methodResults(out)
}

// usableMethod reports whether a method signature fits accessor
// dispatch: at most one parameter, at most two results with a trailing
// error.
func usableMethod(t reflect.Type) bool {
	if t.NumIn() > 1 || t.NumOut() > 2 {
		return false
	}
	if t.NumOut() == 2 && !t.Out(1).Implements(errType) {
		return false
	}
	return true
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func methodResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type().Implements(errType) {
			return nil, resultErr(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), resultErr(out[1])
	}
}

func resultErr(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
