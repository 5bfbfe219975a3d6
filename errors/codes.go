package errors

// ErrorCode identifies a status condition. Codes carry the NT status name so
// they read the same in logs as in a packet capture.
type ErrorCode string

const (
	// Transient statuses.

	// CodePending indicates the server accepted the request but is still processing it.
	CodePending ErrorCode = "STATUS_PENDING"

	// CodeInsufficientResources indicates the server ran out of resources for the request.
	CodeInsufficientResources ErrorCode = "STATUS_INSUFFICIENT_RESOURCES"

	// Lookup statuses.

	// CodeObjectNameNotFound indicates the final path component does not exist.
	CodeObjectNameNotFound ErrorCode = "STATUS_OBJECT_NAME_NOT_FOUND"

	// CodeObjectPathNotFound indicates an intermediate path component does not exist.
	CodeObjectPathNotFound ErrorCode = "STATUS_OBJECT_PATH_NOT_FOUND"

	// CodeObjectNameCollision indicates the object already exists.
	CodeObjectNameCollision ErrorCode = "STATUS_OBJECT_NAME_COLLISION"

	// CodeObjectNameInvalid indicates the server rejected the object name.
	CodeObjectNameInvalid ErrorCode = "STATUS_OBJECT_NAME_INVALID"

	// CodeNotADirectory indicates a non-directory object sits where a directory was expected.
	CodeNotADirectory ErrorCode = "STATUS_NOT_A_DIRECTORY"

	// Access statuses.

	// CodeAccessDenied indicates the session lacks rights for the operation.
	CodeAccessDenied ErrorCode = "STATUS_ACCESS_DENIED"

	// CodeSharingViolation indicates another open prevents the requested access.
	CodeSharingViolation ErrorCode = "STATUS_SHARING_VIOLATION"

	// Session statuses.

	// CodeInvalidHandle indicates the file id is unknown to the server.
	CodeInvalidHandle ErrorCode = "STATUS_INVALID_HANDLE"

	// CodeBadNetworkName indicates the share does not exist.
	CodeBadNetworkName ErrorCode = "STATUS_BAD_NETWORK_NAME"

	// CodeNetworkNameDeleted indicates the tree connect was torn down.
	CodeNetworkNameDeleted ErrorCode = "STATUS_NETWORK_NAME_DELETED"

	// CodeUserSessionDeleted indicates the session was logged off.
	CodeUserSessionDeleted ErrorCode = "STATUS_USER_SESSION_DELETED"

	// Generic statuses.

	// CodeInvalidParameter indicates a malformed request.
	CodeInvalidParameter ErrorCode = "STATUS_INVALID_PARAMETER"

	// CodeUnsuccessful is the catch-all failure status.
	CodeUnsuccessful ErrorCode = "STATUS_UNSUCCESSFUL"

	// Client-side codes. These never travel on the wire.

	// CodeInvalidPath indicates a path with no usable components.
	CodeInvalidPath ErrorCode = "INVALID_PATH"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// statusValues maps codes to their 32-bit NT status values.
var statusValues = map[ErrorCode]uint32{
	CodePending:               0x00000103,
	CodeUnsuccessful:          0xC0000001,
	CodeInvalidHandle:         0xC0000008,
	CodeInvalidParameter:      0xC000000D,
	CodeAccessDenied:          0xC0000022,
	CodeObjectNameInvalid:     0xC0000033,
	CodeObjectNameNotFound:    0xC0000034,
	CodeObjectNameCollision:   0xC0000035,
	CodeObjectPathNotFound:    0xC000003A,
	CodeSharingViolation:      0xC0000043,
	CodeInsufficientResources: 0xC000009A,
	CodeNetworkNameDeleted:    0xC00000C9,
	CodeBadNetworkName:        0xC00000CC,
	CodeNotADirectory:         0xC0000103,
	CodeUserSessionDeleted:    0xC0000203,
}

var codesByStatus = func() map[uint32]ErrorCode {
	m := make(map[uint32]ErrorCode, len(statusValues))
	for code, status := range statusValues {
		m[status] = code
	}
	return m
}()

// Status returns the NT status value for the code.
// The second result is false for client-side codes.
func (c ErrorCode) Status() (uint32, bool) {
	status, ok := statusValues[c]
	return status, ok
}

// FromStatus returns the code for a raw NT status value.
// Unrecognized values map to CodeUnknown.
func FromStatus(status uint32) ErrorCode {
	if code, ok := codesByStatus[status]; ok {
		return code
	}
	return CodeUnknown
}
