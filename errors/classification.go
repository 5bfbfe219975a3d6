package errors

// ErrorClassification indicates whether an error should trigger a retry.
type ErrorClassification string

const (
	// ClassificationRetryable indicates the same request may succeed if reissued later.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates reissuing the request will not help.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// getDefaultClassification returns the default classification for a code.
// Only a pending request is retryable; every other status is permanent,
// including unknown codes.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if code == CodePending {
		return ClassificationRetryable
	}
	return ClassificationPermanent
}
