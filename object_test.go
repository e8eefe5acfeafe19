package dive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// record exposes accessor dispatch, map-style fields, and assignable
// properties over one backing map, so forced descriptors can be tested
// against default object dispatch.
type record struct {
	fields map[string]any
}

func newRecord() *record {
	return &record{fields: map[string]any{}}
}

func (r *record) HasAccessor(name string) bool {
	_, ok := r.fields[name]
	return ok
}

func (r *record) CallAccessor(name string, args ...any) (any, error) {
	switch len(args) {
	case 0:
		return r.fields[name], nil
	case 1:
		r.fields[name] = args[0]
		return args[0], nil
	default:
		return nil, errors.New("accessor takes at most one argument")
	}
}

func (r *record) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

func (r *record) SetField(name string, value any) {
	r.fields[name] = value
}

func (r *record) Property(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

func (r *record) SetProperty(name string, value any) error {
	r.fields[name] = value
	return nil
}

type person struct {
	name string
}

func (p *person) Name() string { return p.name }

func (p *person) Rename(name string) { p.name = name }

func (p *person) Fail() (string, error) { return "", errors.New("boom") }

func (p *person) TooMany(a, b string) string { return a + b }

func TestFuncObject(t *testing.T) {
	calls := 0
	obj := FuncObject{
		"n": func(args ...any) (any, error) {
			calls++
			if len(args) == 1 {
				return args[0], nil
			}
			return calls, nil
		},
	}

	require.True(t, obj.HasAccessor("n"))
	require.False(t, obj.HasAccessor("m"))

	v, err := obj.CallAccessor("n")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = obj.CallAccessor("m")
	require.Error(t, err)
}

func TestForcedFieldOverridesObjectDispatch(t *testing.T) {
	rec := newRecord()

	// A forced map key writes the field directly instead of invoking
	// accessor dispatch.
	_, err := Set(rec, 42, MapKey("foo"))
	require.NoError(t, err)
	require.Equal(t, 42, rec.fields["foo"])

	v, present, err := Get(rec, MapKey("foo"))
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 42, v)

	// Default dispatch on the same object goes through the accessor.
	v, present, err = Get(rec, K("foo"))
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 42, v)
}

func TestForcedFieldOnPlainObject(t *testing.T) {
	obj := FuncObject{}
	_, err := Set(obj, 1, MapKey("foo"))
	require.True(t, IsInvocation(err), "got %v", err)
}

func TestPropertyAccess(t *testing.T) {
	rec := newRecord()

	_, err := Set(rec, "v", Property("p"))
	require.NoError(t, err)
	require.Equal(t, "v", rec.fields["p"])

	v, present, err := Get(rec, Property("p"))
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, "v", v)

	ok, err := Exists(rec, Property("p"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Exists(rec, Property("missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

// Property slots are addressable, so writes vivify containers through
// them, unlike accessor-call results.
func TestPropertyVivifiesThrough(t *testing.T) {
	rec := newRecord()
	_, err := Set(rec, 5, Property("data"), K("x"))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": 5}, rec.fields["data"])
}

func TestPropertyOnNonObject(t *testing.T) {
	_, _, err := Get(42, Property("p"))
	require.True(t, IsInvocation(err), "got %v", err)

	// Absent targets read as absent, they are a missing link.
	v, present, err := Get(nil, Property("p"))
	require.NoError(t, err)
	require.False(t, present)
	require.Nil(t, v)
}

func TestWrapMethods(t *testing.T) {
	p := &person{name: "ada"}
	obj := WrapMethods(p)

	require.True(t, obj.HasAccessor("Name"))
	require.True(t, obj.HasAccessor("Rename"))
	require.False(t, obj.HasAccessor("TooMany"))
	require.False(t, obj.HasAccessor("Missing"))

	v, present, err := Get(obj, K("Name"))
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, "ada", v)

	_, err = Set(obj, "grace", Method("Rename"))
	require.NoError(t, err)
	require.Equal(t, "grace", p.name)

	// A failing accessor surfaces as an invocation error wrapping the
	// original cause.
	_, _, err = Get(obj, K("Fail"))
	require.True(t, IsInvocation(err), "got %v", err)
	require.ErrorContains(t, err, "boom")
}

func TestWrapMethodsArityMismatch(t *testing.T) {
	p := &person{name: "ada"}
	obj := WrapMethods(p)

	// Name takes no arguments; writing through it is a failed call.
	_, err := Set(obj, "x", Method("Name"))
	require.True(t, IsInvocation(err), "got %v", err)
}

func TestMethodOnScalar(t *testing.T) {
	_, _, err := Get(42, Method("anything"))
	require.True(t, IsInvocation(err), "got %v", err)
}

func TestObjectInsideStructure(t *testing.T) {
	rec := newRecord()
	rec.fields["inner"] = map[string]any{"x": 1}
	s := map[string]any{"rec": rec}

	v, present, err := Get(s, Ks("rec", "inner", "x")...)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 1, v)
}
