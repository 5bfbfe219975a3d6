// Package errors provides structured status errors for SMB-style shares.
//
// Every error carries an ErrorCode named after the NT status the server
// reported (STATUS_PENDING, STATUS_OBJECT_NAME_NOT_FOUND, ...), a
// classification (retryable or permanent) and optional context metadata.
// Errors stay compatible with the standard library (errors.Is, errors.As,
// errors.Unwrap).
//
// # Creating errors
//
// Dispatchers translate whatever their transport reports into a status error:
//
//	err := errors.New(errors.CodeObjectNameNotFound, "folder not found")
//	err = errors.WithContext(err, "path", `share\a\b`)
//
// Raw status words received off the wire can be mapped back to a code:
//
//	code := errors.FromStatus(0xC0000034) // CodeObjectNameNotFound
//
// # Classifying errors
//
// Callers branch on the code, never on the message:
//
//	switch {
//	case errors.IsNotFound(err):
//	    // create the missing component
//	case errors.IsPending(err):
//	    // retry later
//	default:
//	    return err
//	}
//
// Only CodePending is retryable by default. The classification is preserved
// when wrapping and can be overridden with WithClassification.
package errors
