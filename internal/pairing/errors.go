package pairing

import (
	"errors"
	"fmt"
)

// Caller contract violations. Incompatibility, predicate rejection, and
// zero weights are filtering outcomes and never produce these.
var (
	// ErrInvalidCandidateTable reports a malformed candidate table: an empty
	// ref, a missing weight function, a duplicate (ref, tile set) entry, or a
	// weight that is negative, NaN, or infinite.
	ErrInvalidCandidateTable = errors.New("invalid candidate table")
	// ErrUnresolvableTemplate reports a template resolver failure or a
	// resolved template that fails validation.
	ErrUnresolvableTemplate = errors.New("unresolvable template")
)

// CandidateError attributes a contract violation to one candidate table entry.
// It matches its Kind and its cause under errors.Is.
type CandidateError struct {
	// Kind is ErrInvalidCandidateTable or ErrUnresolvableTemplate.
	Kind error
	// Index is the candidate's position in the table.
	Index int
	// Ref is the candidate's template reference.
	Ref string
	// Err is the underlying cause, if any.
	Err error
}

func (e *CandidateError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: candidate[%d] %q", e.Kind, e.Index, e.Ref)
	}
	return fmt.Sprintf("%v: candidate[%d] %q: %v", e.Kind, e.Index, e.Ref, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CandidateError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidCandidate(index int, ref string, format string, args ...any) error {
	return &CandidateError{
		Kind:  ErrInvalidCandidateTable,
		Index: index,
		Ref:   ref,
		Err:   fmt.Errorf(format, args...),
	}
}
