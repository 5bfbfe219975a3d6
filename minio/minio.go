package minio

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jmgilman/go/smb"
	"github.com/jmgilman/go/smb/errors"
	"github.com/jmgilman/go/smb/internal/pathutil"
	"github.com/jmgilman/go/smb/minio/internal/errs"
)

// Dispatcher serves folder requests from a MinIO bucket.
type Dispatcher struct {
	client *minio.Client
	bucket string
	prefix string

	mu      sync.Mutex
	handles map[uuid.UUID]string
}

// New creates a MinIO-backed dispatcher.
// Returns error if configuration is invalid or the client cannot be built.
// No request is sent to the server.
func New(cfg Config) (*Dispatcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParameter, "invalid config")
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParameter, "failed to create minio client")
		}
	}

	return &Dispatcher{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  pathutil.ToSlash(cfg.Prefix),
		handles: make(map[uuid.UUID]string),
	}, nil
}

// Client returns the underlying MinIO client.
func (d *Dispatcher) Client() *minio.Client {
	return d.client
}

// markerKey returns the marker object key for a share path. The second
// result is false for the share root, which has no marker.
func (d *Dispatcher) markerKey(p string) (string, bool) {
	name := pathutil.ToSlash(p)
	switch {
	case name == "":
		return "", false
	case d.prefix == "":
		return name + "/", true
	default:
		return d.prefix + "/" + name + "/", true
	}
}

// OpenFolder opens an existing folder. A folder exists when its marker
// object exists or when any object is stored below it.
func (d *Dispatcher) OpenFolder(ctx context.Context, p string) (*smb.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, ok := d.markerKey(p)
	if !ok {
		return d.register(p), nil
	}

	_, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return d.register(p), nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return nil, errs.Translate("open", p, err)
	}

	found, err := d.hasChildren(ctx, key)
	if err != nil {
		return nil, errs.Translate("open", p, err)
	}
	if !found {
		return nil, errs.Status(errors.CodeObjectNameNotFound, "open", p, "not found")
	}

	return d.register(p), nil
}

// hasChildren reports whether any object is stored below key.
func (d *Dispatcher) hasChildren(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range d.client.ListObjects(ctx, d.bucket, minio.ListObjectsOptions{
		Prefix:    key,
		Recursive: true,
		MaxKeys:   1,
	}) {
		if object.Err != nil {
			return false, object.Err
		}
		if strings.HasPrefix(object.Key, key) {
			return true, nil
		}
	}
	return false, nil
}

// CreateFolder writes the folder marker. The mode is stored as user metadata.
func (d *Dispatcher) CreateFolder(ctx context.Context, p string, mode fs.FileMode) (*smb.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, ok := d.markerKey(p)
	if !ok {
		return nil, errs.Status(errors.CodeObjectNameCollision, "create", p, "share root exists")
	}

	_, err := d.client.PutObject(ctx, d.bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{
		ContentType: "application/x-directory",
		UserMetadata: map[string]string{
			ModeMetadataKey: fmt.Sprintf("%#o", uint32(mode.Perm())),
		},
	})
	if err != nil {
		return nil, errs.Translate("create", p, err)
	}

	return d.register(p), nil
}

// Close releases a handle. Handles are client-side only.
func (d *Dispatcher) Close(_ context.Context, h *smb.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if h == nil {
		return errors.New(errors.CodeInvalidHandle, "close: nil handle")
	}
	if _, ok := d.handles[h.FileID]; !ok {
		return errs.Status(errors.CodeInvalidHandle, "close", h.Path, "unknown handle")
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

// Compile-time interface check.
var _ smb.Dispatcher = (*Dispatcher)(nil)
