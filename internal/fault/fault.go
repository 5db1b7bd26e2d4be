// Package fault defines the error taxonomy shared by the painting core.
//
// Only malformed input is an error. Capacity conditions (a full cell, a
// full history, a full replay log) and absence conditions (erase on an
// empty cell, undo with nothing pending) are reported through boolean or
// nil results and never through this package.
package fault

import (
	"errors"
	"fmt"
)

// Code categorizes a fault.
type Code string

const (
	// CodeInvalidArgument covers negative dimensions, negative coordinates
	// and unknown policy names.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInvalidInput covers a value of the wrong kind where a layer or a
	// cell of the surface's policy was required.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeIndexOutOfBounds covers coordinates outside a surface.
	CodeIndexOutOfBounds Code = "INDEX_OUT_OF_BOUNDS"
)

// Error is a coded, structured error.
type Error struct {
	Code    Code
	Message string

	// Details carries optional diagnostic context (coordinates, extents).
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// InvalidArgument returns a CodeInvalidArgument error.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput returns a CodeInvalidInput error.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// OutOfBounds returns a CodeIndexOutOfBounds error for (x, y) on a
// width × height extent.
func OutOfBounds(x, y, width, height int) *Error {
	return &Error{
		Code:    CodeIndexOutOfBounds,
		Message: fmt.Sprintf("(%d, %d) outside %dx%d surface", x, y, width, height),
		Details: map[string]string{
			"x":      fmt.Sprintf("%d", x),
			"y":      fmt.Sprintf("%d", y),
			"width":  fmt.Sprintf("%d", width),
			"height": fmt.Sprintf("%d", height),
		},
	}
}

// Is reports whether err (or anything it wraps) is a fault with code.
func Is(err error, code Code) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// IsInvalidArgument reports whether err is a CodeInvalidArgument fault.
func IsInvalidArgument(err error) bool { return Is(err, CodeInvalidArgument) }

// IsInvalidInput reports whether err is a CodeInvalidInput fault.
func IsInvalidInput(err error) bool { return Is(err, CodeInvalidInput) }

// IsOutOfBounds reports whether err is a CodeIndexOutOfBounds fault.
func IsOutOfBounds(err error) bool { return Is(err, CodeIndexOutOfBounds) }
