// Package domainerrors defines the coded error type shared by every ledger layer.
//
// Services return *Error values carrying a Code; transports translate the code into
// a status (see pkg/platform/httputil). Stores never construct these directly: they
// return pkg/platform/sentinel facts which services translate.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and transports.
type Code string

// Generic codes.
const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Ledger codes. None of these are transient: a caller has to change its input or
// register a missing dependency before trying again.
const (
	// Validation
	CodeInvalidKey          Code = "invalid_key"
	CodeEmptyRoyaltyList    Code = "empty_royalty_list"
	CodeInvalidRoyaltyTotal Code = "invalid_royalty_total"

	// Conflict
	CodeAlreadyRegistered Code = "already_registered"
	CodeEdgeExists        Code = "edge_exists"

	// Missing dependency
	CodeNotFound            Code = "not_found"
	CodeOriginNotRegistered Code = "origin_not_registered"

	// Verification failure; must never be soft-failed.
	CodeCopyrightMismatch Code = "copyright_mismatch"
)

// Error is a coded domain error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// AsDomain passes coded errors through and wraps anything else as internal.
func AsDomain(err error, msg string) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return Wrap(err, CodeInternal, msg)
}
