// Package serrors defines the coded error taxonomy shared by the domain and
// application layers. Every error that crosses a service boundary carries a
// Kind so transports can map it to a status without string matching.
package serrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindDomain     Kind = "domain"
)

// Error is a coded error. Two errors are considered equivalent by errors.Is
// when their codes match, which lets callers compare against the package
// sentinels without caring about the formatted message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, cause: cause}
}

// WithMessagef returns a copy of e with a formatted message. The code, and
// therefore errors.Is identity, is preserved.
func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...), cause: e.cause}
}

func NewError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NewValidation(code, message string) *Error {
	return NewError(KindValidation, code, message)
}

func NewNotFound(code, message string) *Error {
	return NewError(KindNotFound, code, message)
}

func NewConflict(code, message string) *Error {
	return NewError(KindConflict, code, message)
}

func NewDomain(code, message string) *Error {
	return NewError(KindDomain, code, message)
}

// KindOf reports the Kind of err, or "" when err carries no taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsDomain(err error) bool     { return KindOf(err) == KindDomain }
