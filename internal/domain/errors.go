package domain

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// FieldError is one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is the single error type crossing the service boundary.
type Error struct {
	Kind   Kind
	Msg    string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Reason)
		}
		return strings.Join(parts, "; ")
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string, fields ...FieldError) error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: fields}
}
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

// Storage wraps a driver or connection failure. Msg names the operation and is
// only meant for logs.
func Storage(op string, err error) error {
	return &Error{Kind: KindStorage, Msg: op + ": " + errString(err), Err: err}
}

// KindOf reports the kind of err, or KindUnknown when err is not a *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
