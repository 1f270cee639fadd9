// Package derrors provides error handling for doclet.
//
// It re-exports github.com/cockroachdb/errors (stack traces, wrapping,
// hints) and defines the sentinel errors used across the extraction
// pipeline. Every recoverable condition wraps one of the sentinels so
// callers can classify with errors.Is instead of string matching.
package derrors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping.
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	WithHint     = crdb.WithHint
	WithDetail   = crdb.WithDetail
)

// Error inspection.
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Assertions.
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the extraction pipeline. All of them except
// ErrScopeImbalance are recoverable: they are reported through the
// diagnostic channel and processing continues.
var (
	// ErrUnknownTag indicates a tag name the active dictionary does not
	// recognize. The tag is ignored and the comment continues parsing.
	ErrUnknownTag = New("unknown tag")

	// ErrTagValue indicates a tag value that fails the tag's declared
	// value shape. The tag is skipped.
	ErrTagValue = New("invalid tag value")

	// ErrTypeExpression indicates a malformed type expression. The raw
	// text is retained as a fallback value.
	ErrTypeExpression = New("malformed type expression")

	// ErrDanglingReference indicates a cross-reference naming a symbol
	// that does not exist in the collection. The reference is left
	// unresolved.
	ErrDanglingReference = New("dangling reference")

	// ErrScopeImbalance indicates the scope stack did not return to zero
	// depth at end of traversal. This is a walker integration bug and is
	// fatal.
	ErrScopeImbalance = New("scope stack imbalance")

	// ErrCyclicAncestry indicates a memberof chain that revisits a node.
	// The ancestor walk is truncated at the first repeat.
	ErrCyclicAncestry = New("cyclic ancestry chain")

	// ErrDuplicateResolution indicates the name resolver was invoked
	// twice on the same doclet.
	ErrDuplicateResolution = New("name already resolved")

	// ErrUnknownGrammar indicates a request for a built-in dictionary
	// that does not exist.
	ErrUnknownGrammar = New("unknown grammar")
)

// IsRecoverable reports whether err is a recoverable extraction error.
// Recoverable errors are reported and skipped; everything else aborts
// the run.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	return IsAny(err,
		ErrUnknownTag,
		ErrTagValue,
		ErrTypeExpression,
		ErrDanglingReference,
		ErrCyclicAncestry,
	)
}

// IsFatal reports whether err is a structural invariant violation that
// must abort the run.
func IsFatal(err error) bool {
	return err != nil && Is(err, ErrScopeImbalance)
}
