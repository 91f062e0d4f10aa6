package socialmodel

import "fmt"

// ErrorKind is a semantic error kind (spec §7) — not a Go type per error,
// a small closed enum callers can switch on via errors.As(*Error).
type ErrorKind string

const (
	KindValidation       ErrorKind = "ValidationError"
	KindConflict         ErrorKind = "ConflictError"
	KindCapacityExceeded ErrorKind = "CapacityExceeded"
	KindTimeout          ErrorKind = "Timeout"
	KindNotFound         ErrorKind = "NotFound"
	KindState            ErrorKind = "StateError"
	KindTransientUpstream ErrorKind = "TransientUpstream"
	KindTerminalUpstream ErrorKind = "TerminalUpstream"
)

// Error is the single error type used across the core for every semantic
// kind in the §7 taxonomy. Wrap a cause with NewError/Wrap; unwrap it with
// errors.As.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind wrapping an underlying cause.
func Wrap(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	if e, ok := err.(*Error); ok {
		se = e
	} else {
		return false
	}
	return se.Kind == kind
}
