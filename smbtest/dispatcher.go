// Package smbtest provides test doubles and a conformance suite for
// smb.Dispatcher implementations.
//
// Dispatcher is an in-memory share whose answers can be scripted per
// request, and Clock records retry delays without sleeping:
//
//	d := smbtest.NewDispatcher()
//	d.Script(smbtest.OpCreate, `a\b`, pending, pending, nil)
//	clock := smbtest.NewClock()
//	share, _ := smb.New(d, smb.WithTimer(clock.NewTimer))
//
// TestDispatcher runs the conformance suite against a real implementation:
//
//	func TestMyDispatcher(t *testing.T) {
//	    smbtest.TestDispatcher(t, func() smb.Dispatcher {
//	        return mydispatcher.New()
//	    })
//	}
package smbtest

import (
	"context"
	"io/fs"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jmgilman/go/smb"
	"github.com/jmgilman/go/smb/errors"
)

// Op names a dispatcher request.
type Op string

const (
	OpOpen   Op = "open"
	OpCreate Op = "create"
	OpClose  Op = "close"
)

// Call records one request received by a Dispatcher.
type Call struct {
	Op   Op
	Path string
	Mode fs.FileMode
}

type scriptKey struct {
	op   Op
	path string
}

// Dispatcher is an in-memory smb.Dispatcher.
//
// Without a script it behaves like a share: opening or creating below a
// missing parent reports STATUS_OBJECT_PATH_NOT_FOUND, opening a missing
// leaf reports STATUS_OBJECT_NAME_NOT_FOUND and creating an existing
// directory reports STATUS_OBJECT_NAME_COLLISION. It is safe for concurrent use.
type Dispatcher struct {
	mu          sync.Mutex
	dirs        map[string]bool
	handles     map[uuid.UUID]string
	scripts     map[scriptKey][]error
	calls       []Call
	inFlight    int
	maxInFlight int
}

// NewDispatcher returns a Dispatcher where the given directories already exist.
// Paths use `\` as separator.
func NewDispatcher(existing ...string) *Dispatcher {
	d := &Dispatcher{
		dirs:    make(map[string]bool),
		handles: make(map[uuid.UUID]string),
		scripts: make(map[scriptKey][]error),
	}
	for _, dir := range existing {
		d.dirs[dir] = true
	}
	return d
}

// Script queues answers for requests of op on path. Each matching request
// consumes one entry; a nil entry falls through to the default behavior.
// Once the queue is empty the default behavior applies again.
func (d *Dispatcher) Script(op Op, path string, errs ...error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := scriptKey{op: op, path: path}
	d.scripts[key] = append(d.scripts[key], errs...)
}

// Calls returns every request received so far, in order.
func (d *Dispatcher) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallsFor returns the requests of a single kind, in order.
func (d *Dispatcher) CallsFor(op Op) []Call {
	var out []Call
	for _, c := range d.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Paths returns the paths of the requests of a single kind, in order.
func (d *Dispatcher) Paths(op Op) []string {
	var out []string
	for _, c := range d.CallsFor(op) {
		out = append(out, c.Path)
	}
	return out
}

// Exists reports whether dir exists on the fake share.
func (d *Dispatcher) Exists(dir string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirs[dir]
}

// OpenHandles returns the number of handles not yet closed.
func (d *Dispatcher) OpenHandles() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handles)
}

// MaxInFlight returns the highest number of requests that were in progress
// at the same time.
func (d *Dispatcher) MaxInFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxInFlight
}

// begin records a call and pops its scripted answer. The first result is
// false when the default behavior applies.
func (d *Dispatcher) begin(call Call) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, call)
	d.inFlight++
	if d.inFlight > d.maxInFlight {
		d.maxInFlight = d.inFlight
	}

	key := scriptKey{op: call.Op, path: call.Path}
	queue := d.scripts[key]
	if len(queue) == 0 {
		return false, nil
	}
	d.scripts[key] = queue[1:]
	if queue[0] == nil {
		return false, nil
	}
	return true, queue[0]
}

func (d *Dispatcher) end() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight--
}

// parentExists must be called with mu held.
func (d *Dispatcher) parentExists(dir string) bool {
	i := strings.LastIndex(dir, `\`)
	return i < 0 || d.dirs[dir[:i]]
}

// open must be called with mu held.
func (d *Dispatcher) open(dir string) *smb.Handle {
	h := &smb.Handle{FileID: uuid.New(), Path: dir}
	d.handles[h.FileID] = dir
	return h
}

// OpenFolder implements smb.Dispatcher.
func (d *Dispatcher) OpenFolder(_ context.Context, path string) (*smb.Handle, error) {
	defer d.end()
	if scripted, err := d.begin(Call{Op: OpOpen, Path: path}); scripted {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.dirs[path]:
		return d.open(path), nil
	case !d.parentExists(path):
		return nil, errors.WithContext(errors.New(errors.CodeObjectPathNotFound, "parent not found"), "path", path)
	default:
		return nil, errors.WithContext(errors.New(errors.CodeObjectNameNotFound, "folder not found"), "path", path)
	}
}

// CreateFolder implements smb.Dispatcher.
func (d *Dispatcher) CreateFolder(_ context.Context, path string, mode fs.FileMode) (*smb.Handle, error) {
	defer d.end()
	if scripted, err := d.begin(Call{Op: OpCreate, Path: path, Mode: mode}); scripted {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.dirs[path]:
		return nil, errors.WithContext(errors.New(errors.CodeObjectNameCollision, "folder exists"), "path", path)
	case !d.parentExists(path):
		return nil, errors.WithContext(errors.New(errors.CodeObjectPathNotFound, "parent not found"), "path", path)
	}

	d.dirs[path] = true
	return d.open(path), nil
}

// Close implements smb.Dispatcher.
func (d *Dispatcher) Close(_ context.Context, h *smb.Handle) error {
	defer d.end()
	path := ""
	if h != nil {
		path = h.Path
	}
	if scripted, err := d.begin(Call{Op: OpClose, Path: path}); scripted {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if h == nil {
		return errors.New(errors.CodeInvalidHandle, "nil handle")
	}
	if _, ok := d.handles[h.FileID]; !ok {
		return errors.WithContext(errors.New(errors.CodeInvalidHandle, "unknown handle"), "path", h.Path)
	}
	delete(d.handles, h.FileID)
	return nil
}

// Compile-time interface check.
var _ smb.Dispatcher = (*Dispatcher)(nil)
