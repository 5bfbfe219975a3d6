package errs

import (
	"context"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/smb/errors"
)

// TestTranslate tests S3 error code to status mapping.
func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey"}, errors.CodeObjectNameNotFound},
		{"no such bucket", minio.ErrorResponse{Code: "NoSuchBucket"}, errors.CodeBadNetworkName},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied"}, errors.CodeAccessDenied},
		{"slow down", minio.ErrorResponse{Code: "SlowDown"}, errors.CodePending},
		{"service unavailable", minio.ErrorResponse{Code: "ServiceUnavailable"}, errors.CodePending},
		{"invalid name", minio.ErrorResponse{Code: "InvalidObjectName"}, errors.CodeObjectNameInvalid},
		{"unknown code", minio.ErrorResponse{Code: "InternalError"}, errors.CodeUnsuccessful},
		{"plain error", fmt.Errorf("connection reset"), errors.CodeUnsuccessful},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Translate("open", `a\b`, tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.err.Error(), "cause is preserved")

			var se errors.StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, `a\b`, se.Context()["path"])
			assert.Equal(t, "open", se.Context()["op"])
		})
	}
}

// TestTranslate_Retryable verifies throttling is retried by the walker.
func TestTranslate_Retryable(t *testing.T) {
	err := Translate("create", "a", minio.ErrorResponse{Code: "SlowDown"})
	assert.True(t, errors.IsRetryable(err))
	assert.True(t, errors.IsPending(err))

	err = Translate("create", "a", minio.ErrorResponse{Code: "AccessDenied"})
	assert.False(t, errors.IsRetryable(err))
}

// TestTranslate_Passthrough tests nil and context errors.
func TestTranslate_Passthrough(t *testing.T) {
	assert.NoError(t, Translate("open", "a", nil))
	assert.Equal(t, context.Canceled, Translate("open", "a", context.Canceled))

	wrapped := fmt.Errorf("request: %w", context.DeadlineExceeded)
	assert.Equal(t, wrapped, Translate("open", "a", wrapped))
}

// TestStatus tests status construction.
func TestStatus(t *testing.T) {
	err := Status(errors.CodeInvalidHandle, "close", "a", "unknown handle")
	assert.Equal(t, errors.CodeInvalidHandle, errors.GetCode(err))
	assert.Contains(t, err.Error(), "close: unknown handle")
}
