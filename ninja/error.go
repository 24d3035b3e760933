package ninja

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrInvalidInput is the sentinel for every construction error reported by
// this package. Test for it with [errors.Is].
var ErrInvalidInput = NewError("invalid input")

// Predefined construction errors. Each one wraps [ErrInvalidInput].
var (
	ErrEmptyName         = ErrInvalidInput.Wrap(errors.New("empty name"))
	ErrBadIdentifier     = ErrInvalidInput.Wrap(errors.New("malformed identifier"))
	ErrBadPath           = ErrInvalidInput.Wrap(errors.New("malformed path"))
	ErrBadText           = ErrInvalidInput.Wrap(errors.New("malformed value"))
	ErrBadEscape         = ErrInvalidInput.Wrap(errors.New("bad $-escape (literal $ must be written as $$)"))
	ErrNoOutputs         = ErrInvalidInput.Wrap(errors.New("build statement without outputs"))
	ErrNoTargets         = ErrInvalidInput.Wrap(errors.New("default statement without targets"))
	ErrNegativeDepth     = ErrInvalidInput.Wrap(errors.New("negative pool depth"))
	ErrUnexpectedRuleVar = ErrInvalidInput.Wrap(errors.New("unexpected rule variable"))
	ErrReservedName      = ErrInvalidInput.Wrap(errors.New("top-level variable named after a statement keyword"))
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same message. This lets a
// derived error (see [Error.Wrap] and [Error.With]) match the sentinel it was
// created from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.msg == e.msg && (t.err == nil || errors.Is(e.err, t.err))
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
