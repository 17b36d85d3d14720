/*Package errors defines the error handling used across sockdrive.
It provides errors that carry their original cause,
so that context can be added while the wire- or codec-level
failure underneath stays recoverable via the Cause function.
*/
package errors

import (
	"github.com/pkg/errors"
)

// New returns an error with the provided message
func New(msg string) error {
	return errors.New(msg)
}

// Newf formats an error according to a format specifier
func Newf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Wrap returns an error that is annotated with the provided message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	return errors.WithMessage(err, msg)
}

// Wrapf returns an error that is annotated with the formatted message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.WithMessagef(err, format, args...)
}

// Cause returns the underlying cause of the error if possible.
// If the error does not implement `Cause() error` it returns the error itself.
func Cause(err error) error {
	return errors.Cause(err)
}
