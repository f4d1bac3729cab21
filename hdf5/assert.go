package hdf5

import (
	"fmt"

	"github.com/batchatco/go-thrower"
	"github.com/pkg/errors"
)

// Various kinds of assertions. Parse code throws; the public entry points
// recover and return the thrown error.

// Panics if condition isn't met
func assert(condition bool, msg string) {
	if condition {
		return
	}
	fail(msg)
}

// Warns if condition isn't met
func warnAssert(condition bool, msg string) {
	if condition {
		return
	}
	logger.Warn(msg)
}

// Asserts with given error and message
func assertError(condition bool, err error, msg string) {
	if condition {
		return
	}
	failError(err, msg)
}

// Asserts with given error and formatted message
func assertErrorf(condition bool, err error, format string, v ...any) {
	if condition {
		return
	}
	failError(err, fmt.Sprintf(format, v...))
}

// Panics always with message
func fail(msg string) {
	failError(ErrInternal, msg)
}

// Panics with the specified error, carrying the message as context
func failError(err error, msg string) {
	logger.Error(msg)
	thrower.Throw(errors.Wrap(err, msg))
	panic("never gets here")
}

// Panics with the specified error and formatted context
func failErrorf(err error, format string, v ...any) {
	failError(err, fmt.Sprintf(format, v...))
}
