// Package errs translates MinIO errors into share status errors.
package errs

import (
	"context"
	stderrors "errors"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/smb/errors"
)

// codes maps S3 error codes to NT statuses.
var codes = map[string]errors.ErrorCode{
	"NoSuchKey":                     errors.CodeObjectNameNotFound,
	"NoSuchBucket":                  errors.CodeBadNetworkName,
	"AccessDenied":                  errors.CodeAccessDenied,
	"InvalidAccessKeyId":            errors.CodeAccessDenied,
	"SignatureDoesNotMatch":         errors.CodeAccessDenied,
	"SlowDown":                      errors.CodePending,
	"ServiceUnavailable":            errors.CodePending,
	"XMinioServerNotInitialized":    errors.CodePending,
	"InvalidObjectName":             errors.CodeObjectNameInvalid,
	"KeyTooLongError":               errors.CodeObjectNameInvalid,
	"XMinioObjectExistsAsDirectory": errors.CodeObjectNameCollision,
}

// Translate converts a MinIO error into a status error carrying op and path.
// Context errors are returned as is. Unrecognized errors become
// STATUS_UNSUCCESSFUL.
func Translate(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}

	resp := minio.ToErrorResponse(err)
	code, ok := codes[resp.Code]
	if !ok {
		code = errors.CodeUnsuccessful
	}

	return errors.WithContextMap(errors.Wrap(err, code, op), map[string]interface{}{
		"op":   op,
		"path": path,
		"s3":   resp.Code,
	})
}

// Status creates a status error carrying op and path.
func Status(code errors.ErrorCode, op, path, message string) error {
	return errors.WithContextMap(errors.Newf(code, "%s: %s", op, message), map[string]interface{}{
		"op":   op,
		"path": path,
	})
}
