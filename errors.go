package ossim

import (
	"errors"
	"fmt"
)

// Kind categorises the three error families §7 distinguishes. The core
// scheduler only ever raises InvariantViolation; ConfigError and
// MetaDataError originate in the loaders but are re-exported here so
// callers at the entry point can switch on one Kind regardless of which
// loader raised.
type Kind string

const (
	KindConfig    Kind = "ConfigError"
	KindMetaData  Kind = "MetaDataError"
	KindInvariant Kind = "InvariantViolation"
)

// Error is the structured error Load and Simulation.Run return, wrapping
// the loaders' and the scheduler's own errors. Op names the operation
// that failed (e.g. "ossim.Load", "ossim.Run"); Msg is the
// human-readable detail; Inner wraps the underlying cause when there is
// one (a file I/O error, a parse error from an internal loader package).
type Error struct {
	Op    string
	Kind  Kind
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Inner)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is(err, ossim.ErrConfig) style Kind checks.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	if te.Kind == "" {
		return false
	}
	return e.Kind == te.Kind
}

// Sentinel errors usable with errors.Is to test an error's Kind without
// constructing a full *Error, e.g. errors.Is(err, ossim.ErrConfig).
var (
	ErrConfig    = &Error{Kind: KindConfig}
	ErrMetaData  = &Error{Kind: KindMetaData}
	ErrInvariant = &Error{Kind: KindInvariant}
)

// NewConfigError wraps a configuration-loading failure.
func NewConfigError(op, msg string, inner error) *Error {
	return &Error{Op: op, Kind: KindConfig, Msg: msg, Inner: inner}
}

// NewMetaDataError wraps a meta-data parsing failure.
func NewMetaDataError(op, msg string, inner error) *Error {
	return &Error{Op: op, Kind: KindMetaData, Msg: msg, Inner: inner}
}

// NewInvariantViolation reports a condition the scheduler never expects
// to observe during a run (e.g. an I/O completion for an unknown pid).
// Per §7 policy, the scheduler does not attempt recovery: it surfaces
// this and terminates.
func NewInvariantViolation(op, msg string) *Error {
	return &Error{Op: op, Kind: KindInvariant, Msg: msg}
}

// IsKind reports whether err (or any error it wraps) is an *Error of the
// given Kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}
