package dive

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a specific failure from the error catalog.
type ErrorCode string

// Traversal error codes: the path demands descent into something that
// cannot be descended into.
const (
	// CodeScalarMidPath reports a defined, non-container value under a
	// pending key.
	CodeScalarMidPath ErrorCode = "TRAVERSAL_SCALAR_MID_PATH"
	// CodeKeyKindMismatch reports a key whose forced or inferred
	// interpretation cannot apply to the container it met, e.g. a
	// non-integer key against a sequence.
	CodeKeyKindMismatch ErrorCode = "TRAVERSAL_KEY_KIND_MISMATCH"
	// CodeNegativeIndex reports a sequence index below zero.
	CodeNegativeIndex ErrorCode = "TRAVERSAL_NEGATIVE_INDEX"
	// CodeDepthExceeded reports a path longer than the configured
	// maximum depth.
	CodeDepthExceeded ErrorCode = "TRAVERSAL_DEPTH_EXCEEDED"
)

// Invocation error codes: accessor-style dispatch against the wrong
// kind of target.
const (
	// CodeNotAnObject reports a method or property step against a value
	// that is absent or does not implement the required interface.
	CodeNotAnObject ErrorCode = "INVOCATION_NOT_AN_OBJECT"
	// CodeNoAccessor reports a write through an accessor the object
	// does not expose.
	CodeNoAccessor ErrorCode = "INVOCATION_NO_ACCESSOR"
	// CodeNoFieldAccess reports a forced map key against an object that
	// does not expose map-style fields.
	CodeNoFieldAccess ErrorCode = "INVOCATION_NO_FIELD_ACCESS"
	// CodeAccessorFailed wraps an error returned by an accessor call.
	CodeAccessorFailed ErrorCode = "INVOCATION_ACCESSOR_FAILED"
	// CodeRootNotAssignable reports a write that must replace the root
	// when the root was not passed as an assignable cell (*any).
	CodeRootNotAssignable ErrorCode = "INVOCATION_ROOT_NOT_ASSIGNABLE"
	// CodeUnlinkedParent reports a vivification or sequence growth
	// whose parent slot cannot be written, e.g. a container obtained
	// from an accessor call.
	CodeUnlinkedParent ErrorCode = "INVOCATION_UNLINKED_PARENT"
	// CodeNotClearable reports a clear against a slot that is not an
	// addressable map key or sequence index.
	CodeNotClearable ErrorCode = "INVOCATION_NOT_CLEARABLE"
)

// Key error codes: the key list itself is malformed.
const (
	// CodeBadDescriptor reports a Desc with zero or multiple populated
	// fields.
	CodeBadDescriptor ErrorCode = "KEY_BAD_DESCRIPTOR"
	// CodeUnsupportedKey reports a plain key value of an unsupported
	// type.
	CodeUnsupportedKey ErrorCode = "KEY_UNSUPPORTED"
	// CodePathSyntax reports a malformed path expression.
	CodePathSyntax ErrorCode = "KEY_PATH_SYNTAX"
)

// TraversalError reports that traversal is impossible at a point in the
// path: the current value is a dead end for the key applied to it.
type TraversalError struct {
	// Code identifies the failure from the catalog above.
	Code ErrorCode
	// Path is the rendered path up to and including the failing key.
	Path string
	// Kind is the runtime kind of the value the key was applied to.
	Kind Kind
	msg  string
}

// Error implements error.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("dive: %s at %q: %s", e.Code, e.Path, e.msg)
}

// InvocationError reports accessor-style dispatch against the wrong
// kind of target. Distinguished from TraversalError because the cause
// is not a dead end but a target that cannot satisfy method, property,
// or direct-assignment semantics.
type InvocationError struct {
	// Code identifies the failure from the catalog above.
	Code ErrorCode
	// Path is the rendered path up to and including the failing key.
	Path string
	msg  string
	err  error
}

// Error implements error.
func (e *InvocationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("dive: %s at %q: %s: %v", e.Code, e.Path, e.msg, e.err)
	}
	return fmt.Sprintf("dive: %s at %q: %s", e.Code, e.Path, e.msg)
}

// Unwrap returns the wrapped accessor error, if any.
func (e *InvocationError) Unwrap() error { return e.err }

// KeyError reports a malformed key or path expression. Key errors are
// detected before traversal starts; a path containing one performs no
// reads or writes.
type KeyError struct {
	// Code identifies the failure from the catalog above.
	Code ErrorCode
	// Position is the index of the bad key within the path.
	Position int
	msg      string
}

// Error implements error.
func (e *KeyError) Error() string {
	return fmt.Sprintf("dive: %s at key %d: %s", e.Code, e.Position, e.msg)
}

// IsTraversal reports whether err is (or wraps) a TraversalError.
func IsTraversal(err error) bool {
	var te *TraversalError
	return errors.As(err, &te)
}

// IsInvocation reports whether err is (or wraps) an InvocationError.
func IsInvocation(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

// IsKeyError reports whether err is (or wraps) a KeyError.
func IsKeyError(err error) bool {
	var ke *KeyError
	return errors.As(err, &ke)
}

func asKeyError(err error, target **KeyError) bool {
	return errors.As(err, target)
}
