// Package smb creates directory trees on SMB-style file shares.
//
// A Share wraps a Dispatcher, the collaborator that sends folder open,
// folder create and close requests over an established session, and adds
// recursive directory creation on top of it:
//
//	share, err := smb.New(dispatcher, smb.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	err = share.MkdirAll(ctx, `projects\2024\reports`)
//
// # Walking a path
//
// MkdirAll splits the path on either separator ("/" or `\`), drops empty
// components and visits every ancestor from the shallowest down. Each
// ancestor is opened first; only when the server answers
// STATUS_OBJECT_NAME_NOT_FOUND or STATUS_OBJECT_PATH_NOT_FOUND is it
// created. Handles obtained either way are closed before moving on.
// Directories created before a failure are left in place.
//
// # Pending requests
//
// A STATUS_PENDING answer to an open or create is re-issued after 100ms,
// 200ms, 400ms, 800ms and 1s. The retry count belongs to the ancestor being
// processed and resets when the walk moves on. When the budget is spent the
// pending error itself is returned. Any error reclassified as retryable with
// errors.WithClassification is re-issued the same way. Every other error is
// returned exactly as the dispatcher produced it, so callers can keep
// classifying it with the errors package.
//
// # Concurrency
//
// Each call issues one request at a time. Separate calls on the same Share
// run independently and may overlap; the Dispatcher must therefore be safe
// for concurrent use, or the caller must serialize calls. MkdirAllAsync
// runs a call on its own goroutine and reports through a callback.
//
// # Dispatchers
//
// Two dispatchers ship with this module:
//
//   - github.com/jmgilman/go/smb/billy serves a go-billy filesystem
//     (in-memory or local) with SMB status semantics.
//   - github.com/jmgilman/go/smb/minio serves an S3 bucket, storing
//     directories as marker objects.
package smb
