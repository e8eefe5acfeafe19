package dive

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

func TestTraversalErrorDetails(t *testing.T) {
	s := map[string]any{"name": "ada"}

	_, _, err := Get(s, Ks("name", "x")...)
	var te *TraversalError
	if !errors.As(err, &te) {
		t.Fatalf("Get() error = %v, want *TraversalError", err)
	}
	if te.Code != CodeScalarMidPath {
		t.Errorf("Code = %s, want %s", te.Code, CodeScalarMidPath)
	}
	if te.Path != "name.x" {
		t.Errorf("Path = %q, want %q", te.Path, "name.x")
	}
	if te.Kind != KindScalar {
		t.Errorf("Kind = %s, want %s", te.Kind, KindScalar)
	}
}

func TestInvocationErrorDetails(t *testing.T) {
	var root any
	_, err := Set(&root, 1, Method("foo"))
	var ie *InvocationError
	if !errors.As(err, &ie) {
		t.Fatalf("Set() error = %v, want *InvocationError", err)
	}
	if ie.Code != CodeNotAnObject {
		t.Errorf("Code = %s, want %s", ie.Code, CodeNotAnObject)
	}
	if root != nil {
		t.Errorf("failed write vivified the root: %v", root)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	s := map[string]any{"a": 42}

	_, err := Set(s, 1, Ks("a", "b")...)
	if !IsTraversal(err) || IsInvocation(err) {
		t.Errorf("mid-path scalar: IsTraversal=%v IsInvocation=%v", IsTraversal(err), IsInvocation(err))
	}

	_, err = Set(s, 1, K("a"), Method("m"))
	if !IsInvocation(err) {
		// A forced method key demands an object; the scalar at "a"
		// is an invocation failure, not a shape mismatch.
		t.Errorf("expected invocation error, got %v", err)
	}

	var cell any = 42
	_, err = Set(cell, 1)
	if !IsInvocation(err) || IsTraversal(err) {
		t.Errorf("non-assignable root: IsInvocation=%v IsTraversal=%v", IsInvocation(err), IsTraversal(err))
	}
}

func TestAccessorFailureWrapsCause(t *testing.T) {
	sentinel := errors.New("backend unavailable")
	obj := FuncObject{
		"load": func(args ...any) (any, error) {
			return nil, sentinel
		},
	}

	_, _, err := Get(obj, K("load"))
	if !IsInvocation(err) {
		t.Fatalf("Get() error = %v, want invocation error", err)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("error chain lost the accessor cause: %v", err)
	}
}

func TestBadDescriptorIsHardError(t *testing.T) {
	s := map[string]any{}
	idx := 1

	_, err := Set(s, 1, K(Desc{Method: "m", Property: "p"}))
	if !IsKeyError(err) {
		t.Fatalf("Set() error = %v, want key error", err)
	}
	if len(s) != 0 {
		t.Error("malformed key list must not write")
	}

	_, err = Set(s, 1, K(Desc{}))
	if !IsKeyError(err) {
		t.Fatalf("empty descriptor: error = %v, want key error", err)
	}

	// Valid descriptor, single field.
	seq := []any{nil, nil}
	_, err = Set(seq, 1, K(Desc{Index: &idx}))
	if err != nil {
		t.Fatalf("single-field descriptor: error = %v", err)
	}
	if seq[1] != 1 {
		t.Errorf("seq[1] = %v, want 1", seq[1])
	}
}

func TestKeyErrorsAggregate(t *testing.T) {
	s := map[string]any{}

	_, _, err := Get(s, K(Desc{}), K("ok"), K(Desc{Method: "m", MapKey: "k"}))
	if !IsKeyError(err) {
		t.Fatalf("Get() error = %v, want key errors", err)
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d aggregated errors, want 2: %v", len(errs), err)
	}

	var ke *KeyError
	if !errors.As(errs[0], &ke) || ke.Position != 0 {
		t.Errorf("first error position = %v, want key 0", errs[0])
	}
	if !errors.As(errs[1], &ke) || ke.Position != 2 {
		t.Errorf("second error position = %v, want key 2", errs[1])
	}
}

func TestUnsupportedKeyValue(t *testing.T) {
	_, _, err := Get(map[string]any{}, K(3.14))
	if !IsKeyError(err) {
		t.Fatalf("Get() error = %v, want key error", err)
	}
	var ke *KeyError
	if !errors.As(err, &ke) || ke.Code != CodeUnsupportedKey {
		t.Errorf("error = %v, want %s", err, CodeUnsupportedKey)
	}
}

func TestNegativeIndex(t *testing.T) {
	s := []any{"a"}
	_, _, err := Get(s, Index(-1))
	var te *TraversalError
	if !errors.As(err, &te) || te.Code != CodeNegativeIndex {
		t.Errorf("Get() error = %v, want %s", err, CodeNegativeIndex)
	}
}

func TestNonIndexKeyOnSequence(t *testing.T) {
	s := []any{"a"}
	_, _, err := Get(s, K("word"))
	var te *TraversalError
	if !errors.As(err, &te) || te.Code != CodeKeyKindMismatch {
		t.Errorf("Get() error = %v, want %s", err, CodeKeyKindMismatch)
	}
}

func TestForcedKindMismatch(t *testing.T) {
	s := map[string]any{"m": map[string]any{}, "s": []any{}}

	_, _, err := Get(s, K("m"), Index(0))
	if !IsTraversal(err) {
		t.Errorf("forced index on map: error = %v, want traversal", err)
	}

	_, _, err = Get(s, K("s"), MapKey("k"))
	if !IsTraversal(err) {
		t.Errorf("forced map key on sequence: error = %v, want traversal", err)
	}
}
