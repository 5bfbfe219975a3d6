package smb

import (
	"context"
	"io/fs"

	"github.com/google/uuid"
	"github.com/jmgilman/go/smb/errors"
)

// DefaultMode is the creation mode used when none is given.
const DefaultMode fs.FileMode = 0o777

// Handle identifies an open directory on the share.
type Handle struct {
	// FileID is the server-assigned identifier of the open.
	FileID uuid.UUID

	// Path is the share path the handle was opened for.
	Path string
}

// Dispatcher sends folder requests over an established session.
//
// Errors must be classifiable with the errors package: a missing directory
// reports CodeObjectNameNotFound or CodeObjectPathNotFound and a request the
// server is still working on reports CodePending. Implementations must be
// safe for concurrent use if a Share is used from several goroutines.
type Dispatcher interface {
	// OpenFolder opens an existing directory.
	OpenFolder(ctx context.Context, path string) (*Handle, error)

	// CreateFolder creates a directory whose parent already exists.
	CreateFolder(ctx context.Context, path string, mode fs.FileMode) (*Handle, error)

	// Close releases a handle returned by OpenFolder or CreateFolder.
	Close(ctx context.Context, h *Handle) error
}

// Share performs directory operations against a single share.
// A Share holds no mutable state and is safe for concurrent use.
type Share struct {
	dispatcher Dispatcher
	cfg        *config
}

// New creates a Share that sends requests through d.
func New(d Dispatcher, opts ...Option) (*Share, error) {
	if d == nil {
		return nil, errors.New(errors.CodeInvalidParameter, "dispatcher is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParameter, "invalid share options")
	}

	return &Share{
		dispatcher: d,
		cfg:        cfg,
	}, nil
}
