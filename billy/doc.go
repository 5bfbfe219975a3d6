// Package billy serves the smb.Dispatcher contract from a go-billy
// filesystem, giving local directories and in-memory trees the status
// semantics of an SMB share.
//
// Usage:
//
//	// In-memory share
//	d := billy.NewMemory()
//
//	// Share rooted at a local directory
//	d := billy.NewLocal("/srv/share")
//
//	share, err := smb.New(d)
//	err = share.MkdirAll(ctx, `reports\2024`)
//
// Paths received from the Share use `\` and are converted to slash paths
// relative to the filesystem root. Status codes follow the server:
//
//   - missing final component: STATUS_OBJECT_NAME_NOT_FOUND
//   - missing intermediate component: STATUS_OBJECT_PATH_NOT_FOUND
//   - create on an existing name: STATUS_OBJECT_NAME_COLLISION
//   - open on a file: STATUS_NOT_A_DIRECTORY
//   - close of an unknown handle: STATUS_INVALID_HANDLE
//
// # Thread Safety
//
// A Dispatcher is safe for concurrent use by multiple goroutines.
package billy
