package drive

import (
	"fmt"

	"github.com/caiiiycuk/sockdrive/codec"
	"github.com/caiiiycuk/sockdrive/errors"
)

// Status is the numeric result of a drive operation,
// matching the codes of the public C ABI:
// 0 is success, 1..6 identify the failed protocol step,
// negative values are codec failures.
type Status int8

const (
	// StatusOK indicates a successful operation.
	StatusOK Status = 0
	// StatusInvalidHandle is returned for operations on handle 0
	// or on a handle that was never opened (or already closed).
	StatusInvalidHandle Status = 1
	// StatusSendCommand indicates the command byte couldn't be sent.
	StatusSendCommand Status = 2
	// StatusSendSector indicates the sector/origin field couldn't be sent.
	StatusSendSector Status = 3
	// StatusSendPayload indicates the trailing request bytes couldn't be
	// sent: the ahead range byte on READ, the sector payload on WRITE.
	StatusSendPayload Status = 4
	// StatusRecvLength indicates the response length prefix
	// couldn't be received.
	StatusRecvLength Status = 5
	// StatusRecvPayload indicates the compressed response payload
	// couldn't be received.
	StatusRecvPayload Status = 6

	// StatusPayloadTooLarge indicates a payload
	// that exceeds the codec's scratch buffer.
	StatusPayloadTooLarge = Status(codec.TooLargeResult)
	// StatusPayloadCorrupt indicates a payload that didn't
	// decode to exactly one block.
	StatusPayloadCorrupt = Status(codec.CorruptResult)

	// StatusUnknown covers local errors that have no code
	// in the wire ABI, such as API misuse.
	StatusUnknown Status = -128
)

// Error implements error.Error
func (s Status) Error() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidHandle:
		return "invalid drive handle"
	case StatusSendCommand:
		return "send failed (command byte)"
	case StatusSendSector:
		return "send failed (sector field)"
	case StatusSendPayload:
		return "send failed (request payload)"
	case StatusRecvLength:
		return "recv failed (length prefix)"
	case StatusRecvPayload:
		return "recv failed (compressed payload)"
	case StatusPayloadTooLarge:
		return "codec failed (payload too large)"
	case StatusPayloadCorrupt:
		return "codec failed (payload corrupt)"
	default:
		return fmt.Sprintf("drive error (%d)", int8(s))
	}
}

// Int8 returns the status as its raw ABI code.
func (s Status) Int8() int8 {
	return int8(s)
}

// StatusOf extracts the ABI code from an error returned by a Drive.
// A nil error is StatusOK; errors that don't carry a Status
// map to StatusUnknown.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if status, ok := errors.Cause(err).(Status); ok {
		return status
	}

	return StatusUnknown
}

// statusError annotates a Status with the transport or codec
// error underneath, keeping the Status as the cause.
type statusError struct {
	status Status
	err    error
}

func statusErr(status Status, err error) error {
	if err == nil {
		return status
	}

	return &statusError{status: status, err: err}
}

// Error implements error.Error
func (e *statusError) Error() string {
	return e.status.Error() + ": " + e.err.Error()
}

// Cause implements the causer interface used by the errors package.
func (e *statusError) Cause() error {
	return e.status
}

// Unwrap supports the standard errors.Is/As chain.
func (e *statusError) Unwrap() error {
	return e.status
}
