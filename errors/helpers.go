package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from the outermost StatusError in err's chain.
// Returns CodeUnknown if err is nil or carries no StatusError.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var statusErr StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.Code()
	}

	return CodeUnknown
}

// GetClassification extracts the classification from err's chain.
// Returns ClassificationPermanent if err is nil or carries no StatusError,
// so unknown failures are never retried.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var statusErr StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if err is classified as retryable.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}

// IsPending reports whether err is a STATUS_PENDING response.
func IsPending(err error) bool {
	return err != nil && GetCode(err) == CodePending
}

// IsNotFound reports whether err signals a missing object, either the final
// component (STATUS_OBJECT_NAME_NOT_FOUND) or an intermediate one
// (STATUS_OBJECT_PATH_NOT_FOUND).
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case CodeObjectNameNotFound, CodeObjectPathNotFound:
		return true
	default:
		return false
	}
}
