package errors

import "errors"

// asStatusError returns err as a StatusError, converting plain errors to
// CodeUnknown so metadata can be attached to anything.
func asStatusError(err error) StatusError {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr
	}
	return &statusError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

// WithContext returns a copy of err with a context field added.
// Existing fields are preserved. Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", `a\b`)
func WithContext(err error, key string, value interface{}) StatusError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap returns a copy of err with the given fields merged into its
// context. New fields override existing ones. Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) StatusError {
	if err == nil {
		return nil
	}

	statusErr := asStatusError(err)
	merged := statusErr.Context()
	if merged == nil {
		merged = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &statusError{
		code:           statusErr.Code(),
		classification: statusErr.Classification(),
		message:        statusErr.Message(),
		context:        merged,
		cause:          statusErr.Unwrap(),
	}
}

// WithClassification returns a copy of err with the classification overridden.
// Returns nil if err is nil.
//
// Example:
//
//	// Treat exhausted server credits as transient for this request.
//	err = errors.WithClassification(err, errors.ClassificationRetryable)
func WithClassification(err error, classification ErrorClassification) StatusError {
	if err == nil {
		return nil
	}

	statusErr := asStatusError(err)
	return &statusError{
		code:           statusErr.Code(),
		classification: classification,
		message:        statusErr.Message(),
		context:        statusErr.Context(),
		cause:          statusErr.Unwrap(),
	}
}
