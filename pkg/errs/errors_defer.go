// Package errs holds helpers for errors raised in deferred calls.
package errs

import (
	"errors"
	"fmt"
)

// Capture runs errFunc and joins its error, if any, onto *errPtr so a failing
// deferred Close does not hide the original error.
func Capture(errPtr *error, errFunc func() error, msg string) {
	err := errFunc()
	if err == nil {
		return
	}
	*errPtr = errors.Join(*errPtr, fmt.Errorf("%s: %w", msg, err))
}
