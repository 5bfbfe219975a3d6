package billy

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"

	"github.com/jmgilman/go/smb"
	"github.com/jmgilman/go/smb/errors"
	"github.com/jmgilman/go/smb/internal/pathutil"
)

// Dispatcher serves folder requests from a billy.Filesystem.
type Dispatcher struct {
	bfs billy.Filesystem

	// createMu serializes the existence check and the mkdir of CreateFolder.
	createMu sync.Mutex

	mu      sync.Mutex
	handles map[uuid.UUID]string
}

// New creates a Dispatcher backed by bfs.
func New(bfs billy.Filesystem) *Dispatcher {
	return &Dispatcher{
		bfs:     bfs,
		handles: make(map[uuid.UUID]string),
	}
}

// NewMemory creates a Dispatcher backed by an empty in-memory filesystem.
func NewMemory() *Dispatcher {
	return New(memfs.New())
}

// NewLocal creates a Dispatcher whose share root is the local directory root.
func NewLocal(root string) *Dispatcher {
	return New(osfs.New(root))
}

// Unwrap returns the underlying billy.Filesystem.
func (d *Dispatcher) Unwrap() billy.Filesystem {
	return d.bfs
}

// OpenFolder opens an existing directory.
func (d *Dispatcher) OpenFolder(ctx context.Context, p string) (*smb.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := pathutil.ToSlash(p)
	if name != "" {
		info, err := d.bfs.Stat(name)
		if err != nil {
			return nil, d.translate("open", p, name, err)
		}
		if !info.IsDir() {
			return nil, statusError(errors.CodeNotADirectory, "open", p, "not a directory")
		}
	}

	return d.register(p), nil
}

// CreateFolder creates a directory whose parent exists. mode is passed to
// the filesystem; in-memory filesystems keep it as is, local ones apply umask.
// Of several concurrent creates of one path exactly one succeeds; the others
// report STATUS_OBJECT_NAME_COLLISION.
func (d *Dispatcher) CreateFolder(ctx context.Context, p string, mode fs.FileMode) (*smb.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := pathutil.ToSlash(p)
	if name == "" {
		return nil, statusError(errors.CodeObjectNameCollision, "create", p, "share root exists")
	}

	d.createMu.Lock()
	defer d.createMu.Unlock()

	_, err := d.bfs.Stat(name)
	switch {
	case err == nil:
		return nil, statusError(errors.CodeObjectNameCollision, "create", p, "name exists")
	case !os.IsNotExist(err):
		return nil, d.translate("create", p, name, err)
	}

	if parent := path.Dir(name); parent != "." {
		info, err := d.bfs.Stat(parent)
		if err != nil || !info.IsDir() {
			return nil, statusError(errors.CodeObjectPathNotFound, "create", p, "parent not found")
		}
	}

	if err := d.bfs.MkdirAll(name, mode); err != nil {
		return nil, d.translate("create", p, name, err)
	}

	return d.register(p), nil
}

// Close releases a handle.
func (d *Dispatcher) Close(_ context.Context, h *smb.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if h == nil {
		return errors.New(errors.CodeInvalidHandle, "close: nil handle")
	}
	if _, ok := d.handles[h.FileID]; !ok {
		return statusError(errors.CodeInvalidHandle, "close", h.Path, "unknown handle")
	}
	delete(d.handles, h.FileID)
	return nil
}

func (d *Dispatcher) register(p string) *smb.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	h := &smb.Handle{FileID: uuid.New(), Path: p}
	d.handles[h.FileID] = p
	return h
}

// translate maps a filesystem error for name to a status error.
func (d *Dispatcher) translate(op, p, name string, err error) error {
	switch {
	case os.IsNotExist(err):
		if parent := path.Dir(name); parent != "." {
			if info, perr := d.bfs.Stat(parent); perr != nil || !info.IsDir() {
				return statusError(errors.CodeObjectPathNotFound, op, p, "parent not found")
			}
		}
		return statusError(errors.CodeObjectNameNotFound, op, p, "not found")
	case os.IsPermission(err):
		return errors.WithContext(errors.Wrap(err, errors.CodeAccessDenied, op), "path", p)
	default:
		return errors.WithContext(errors.Wrap(err, errors.CodeUnsuccessful, op), "path", p)
	}
}

func statusError(code errors.ErrorCode, op, p, message string) error {
	return errors.WithContextMap(errors.Newf(code, "%s: %s", op, message), map[string]interface{}{
		"op":   op,
		"path": p,
	})
}

// Compile-time interface check.
var _ smb.Dispatcher = (*Dispatcher)(nil)
