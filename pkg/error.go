package pkg

// Sentinel errors for the ngen packages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrReadManifest is returned when reading a manifest file fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadManifest = MakeErrorf("failed to read manifest")

// ErrDecodeManifest is returned when a manifest cannot be decoded.
//
// This error should be wrapped with the underlying YAML, JSON or HCL
// diagnostic so that the source position is preserved.
var ErrDecodeManifest = MakeErrorf("failed to decode manifest")

// ErrInvalidManifest is returned when a decoded manifest describes
// something that cannot be turned into ninja statements.
//
// This error should be wrapped with the construction error reported by the
// ninja package.
var ErrInvalidManifest = MakeErrorf("invalid manifest")

// ErrEvaluateCondition is returned when a "when" condition fails to compile
// or run, or does not produce a boolean.
var ErrEvaluateCondition = MakeErrorf("failed to evaluate condition")

// ErrInvalidFormat is returned when an invalid format is specified.
//
// This error should be wrapped with additional context that specifies the
// invalid format along with a list of valid formats.
var ErrInvalidFormat = MakeErrorf("invalid format")

// ErrInvalidParam is returned when a command-line parameter is not of the
// form key=value.
var ErrInvalidParam = MakeErrorf("invalid parameter")

// ErrWriteOutput is returned when writing the generated build file fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrYAMLMarshal is returned when YAML or JSON marshaling fails.
//
// This error should be wrapped with the underlying marshaling error
// to preserve the error chain.
var ErrYAMLMarshal = MakeErrorf("YAML marshal error")

// ErrWatch is returned when the file watcher cannot be started or reports
// an error.
var ErrWatch = MakeErrorf("file watcher error")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, err)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
// The receiver is never modified, so one chain can be wrapped many times.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether every error in target also appears in the receiver.
// This lets a chain built with [Error.Wrap] match the sentinel it started
// from when tested with errors.Is.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 {
		return false
	}

	for _, want := range t {
		if !slices.ContainsFunc(e, func(err error) bool {
			return errors.Is(err, want)
		}) {
			return false
		}
	}

	return true
}
