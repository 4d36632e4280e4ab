// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package research

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a user-visible client failure. Every error in this
// taxonomy is caught at the boundary of the operation that raised it and
// converted to a single notification; none are fatal to the process.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeValidation
	ErrTypeNotConnected
	ErrTypeServer
	ErrTypeRender
	ErrTypeNoResult
	ErrTypeFormatterUnavailable
	ErrTypeChannel
)

// Sentinel errors for easy checking.
var (
	ErrEmptyQuery           = &ClientError{Type: ErrTypeValidation, Message: "please enter a research query"}
	ErrNotConnected         = &ClientError{Type: ErrTypeNotConnected, Message: "not connected to the research backend"}
	ErrNoResult             = &ClientError{Type: ErrTypeNoResult, Message: "no completed research to export"}
	ErrFormatterUnavailable = &ClientError{Type: ErrTypeFormatterUnavailable, Message: "document formatter is not available"}
)

// TypeOf extracts the ErrorType from err, or ErrTypeUnknown for foreign
// errors.
func TypeOf(err error) ErrorType {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnknown
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool { return TypeOf(err) == ErrTypeValidation }

// IsNotConnected reports whether err is a disconnected-submit failure.
func IsNotConnected(err error) bool { return TypeOf(err) == ErrTypeNotConnected }
