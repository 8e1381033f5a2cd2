package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError includes more context than a plain error that is useful for troubleshooting.
type AnnotatedError struct {
	// msg is the error message.
	msg string
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
	// wrapped is the cause of this error, if any.
	wrapped error
}

// New creates a new AnnotatedError with the given message and attributes.
func New(msg string, attrs ...slog.Attr) error {
	var pcs [1]uintptr
	// Skip runtime.Callers and this function.
	runtime.Callers(2, pcs[:])
	return &AnnotatedError{
		msg:     msg,
		pc:      pcs[0],
		attrs:   attrs,
		wrapped: nil,
	}
}

// Wrap annotates err with a message and slog attributes while keeping the error chain intact
// for errors.Is and errors.As.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	var pcs [1]uintptr
	// Skip runtime.Callers and this function.
	runtime.Callers(2, pcs[:])
	return &AnnotatedError{
		msg:     msg,
		pc:      pcs[0],
		attrs:   attrs,
		wrapped: err,
	}
}

// NewSentinel creates a plain error without other context that can be detected with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Error implements error interface.
func (err *AnnotatedError) Error() string {
	if err.wrapped != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.wrapped.Error())
	}
	return err.msg
}

// Unwrap exposes the cause of the error.
func (err *AnnotatedError) Unwrap() error {
	return err.wrapped
}

// LogValue formats the error for useful logging.
func (err *AnnotatedError) LogValue() slog.Value {
	// Retrieve the source location of the error so that developers can locate it faster.
	frames := runtime.CallersFrames([]uintptr{err.pc})
	source, _ := frames.Next()

	attrs := append(
		[]slog.Attr{
			slog.String("msg", err.Error()),
			slog.String("source", fmt.Sprintf("%s:%d", source.File, source.Line)),
		},
		err.attrs...,
	)

	// Surface attributes from wrapped annotated errors as well.
	var annotated *AnnotatedError
	if errors.As(err.wrapped, &annotated) {
		attrs = append(attrs, slog.Any("cause", annotated))
	}

	return slog.GroupValue(attrs...)
}

// SlogError formats the error as an attribute for structured logging.
func SlogError(err error) slog.Attr {
	return slog.Any("error", err)
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
