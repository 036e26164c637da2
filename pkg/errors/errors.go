// Package errors wraps github.com/go-errors/errors so that every error
// created inside docanchor carries the stack of the call site that raised it.
package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New returns an error with the given message and the caller's stack.
func New(msg string) error {
	return goerrors.Wrap(stderrors.New(msg), 1)
}

// Errorf formats according to a format specifier. %w is honoured.
func Errorf(format string, args ...interface{}) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}

// Wrap annotates err with msg. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(fmt.Errorf("%s: %w", msg, err), 1)
}

// ErrorStack returns the stack recorded for err, or its message when the
// chain holds no stack.
func ErrorStack(err error) string {
	if err == nil {
		return ""
	}
	var e *goerrors.Error
	if stderrors.As(err, &e) {
		return e.ErrorStack()
	}
	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
