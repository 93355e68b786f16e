// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-buf.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeOverflow
	ErrCodeSegmentRange
	ErrCodeMemory
	ErrCodeIllegalState
	ErrCodeInvalidArgument
	ErrCodeUnsupported
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeOverflow:
		return "overflow"
	case ErrCodeSegmentRange:
		return "segment range"
	case ErrCodeMemory:
		return "memory"
	case ErrCodeIllegalState:
		return "illegal state"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	case ErrCodeUnsupported:
		return "unsupported"
	default:
		return "internal"
	}
}

// Common errors used across the library.
//
// Family sentinels (ErrOverflow, ErrSegmentRange, ErrMemory, ErrIllegalState,
// ErrInvalidArgument, ErrUnsupported) match every *Error carrying the same code.
// Reason sentinels match themselves and their family.
var (
	ErrOverflow        = &Error{Code: ErrCodeOverflow, Message: "buffer overflow"}
	ErrSegmentRange    = &Error{Code: ErrCodeSegmentRange, Message: "segment index out of range"}
	ErrMemory          = &Error{Code: ErrCodeMemory, Message: "memory error"}
	ErrIllegalState    = &Error{Code: ErrCodeIllegalState, Message: "illegal state"}
	ErrInvalidArgument = &Error{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
	ErrUnsupported     = &Error{Code: ErrCodeUnsupported, Message: "operation not supported"}
	ErrInternal        = &Error{Code: ErrCodeInternal, Message: "internal error"}

	ErrBelowMinSize    = &Error{Code: ErrCodeMemory, Message: "requested size below pool minimum", reason: "below-min"}
	ErrAboveMaxSize    = &Error{Code: ErrCodeMemory, Message: "requested size above pool maximum", reason: "above-max"}
	ErrPoolExhausted   = &Error{Code: ErrCodeMemory, Message: "not enough memory left in pool", reason: "exhausted"}
	ErrNotOwned        = &Error{Code: ErrCodeMemory, Message: "segment not managed by this pool", reason: "not-owned"}
	ErrDoubleRecycle   = &Error{Code: ErrCodeMemory, Message: "segment already recycled", reason: "double-recycle"}
	ErrPoolDisposed    = &Error{Code: ErrCodeMemory, Message: "pool is disposed", reason: "pool-disposed"}
	ErrSegmentDisposed = &Error{Code: ErrCodeIllegalState, Message: "segment is disposed", reason: "segment-disposed"}
	ErrAlreadyFlipped  = &Error{Code: ErrCodeIllegalState, Message: "immutable buffer already flipped", reason: "already-flipped"}
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any

	reason string
	cause  *Error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether target is the family or reason sentinel of e.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	if t.reason == "" {
		return true
	}
	return t.reason == e.reason
}

// Reason returns the fine-grained failure reason, empty for family errors.
func (e *Error) Reason() string { return e.reason }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap returns a fresh copy of a sentinel so context can be attached
// without mutating the shared value.
func Wrap(sentinel *Error) *Error {
	return &Error{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Context: make(map[string]any),
		reason:  sentinel.reason,
		cause:   sentinel,
	}
}

// Unwrap exposes the sentinel an error was derived from.
func (e *Error) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
