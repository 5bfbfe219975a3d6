package errors

// StatusError extends the standard error interface with the NT status the
// server reported and the retry classification derived from it.
type StatusError interface {
	error

	// Code returns the status code identifying the failure.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}
