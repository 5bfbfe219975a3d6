package errors

import (
	"errors"
	"fmt"
)

// New creates a StatusError with the given code and message.
// The classification is derived from the code.
//
// Example:
//
//	err := errors.New(errors.CodeObjectNameNotFound, "folder not found")
func New(code ErrorCode, message string) StatusError {
	return &statusError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a StatusError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) StatusError {
	return New(code, fmt.Sprintf(format, args...))
}

// FromStatusf creates a StatusError from a raw NT status value.
//
// Example:
//
//	if resp.Status != 0 {
//	    return errors.FromStatusf(resp.Status, "create %s", path)
//	}
func FromStatusf(status uint32, format string, args ...interface{}) StatusError {
	return Newf(FromStatus(status), format, args...)
}

// Wrap wraps err with a code and message while preserving it for errors.Is
// and errors.As. If err already carries a StatusError its classification is
// kept. Returns nil if err is nil.
//
// Example:
//
//	if err := conn.Send(req); err != nil {
//	    return errors.Wrap(err, errors.CodeNetworkNameDeleted, "tree disconnected")
//	}
func Wrap(err error, code ErrorCode, message string) StatusError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		classification = statusErr.Classification()
	}

	return &statusError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) StatusError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}
