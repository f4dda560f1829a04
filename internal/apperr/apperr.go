// Package apperr defines the typed failures surfaced to the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for presentation.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindNetwork    Kind = "network"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindBusy       Kind = "busy"
)

// Error is a failure with a safe, user-facing message.
// Err holds the internal cause and is never shown to users.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, apperr.ErrBusy) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks. Only Kind is compared.
var (
	ErrAuth       = &Error{Kind: KindAuth}
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrBusy       = &Error{Kind: KindBusy}
)

// Auth builds an authentication failure.
func Auth(op, msg string, err error) *Error {
	return &Error{Kind: KindAuth, Op: op, Message: msg, Err: err}
}

// Network builds a transport or backend failure.
func Network(op, msg string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Message: msg, Err: err}
}

// NotFound builds a lookup failure.
func NotFound(op, msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: msg, Err: err}
}

// Busy reports that a pipeline is already running.
func Busy(op, pipeline string) *Error {
	return &Error{Kind: KindBusy, Op: op, Message: pipeline + " already in progress"}
}

// Validation builds a client-side validation failure with per-field messages.
func Validation(op, msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg, Fields: fields}
}

// KindOf returns the kind of the first *Error in the chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns a user-safe message for any error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Something went wrong"
}

// FieldsOf returns per-field validation messages, or nil.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
