package smbtest

import (
	"context"
	"testing"

	"github.com/jmgilman/go/smb"
	"github.com/jmgilman/go/smb/errors"
)

// SuiteConfig describes documented differences between dispatchers.
type SuiteConfig struct {
	// ImplicitParentDirs indicates directories can be created below a
	// missing parent (object stores).
	ImplicitParentDirs bool

	// IdempotentCreate indicates creating an existing directory succeeds
	// instead of reporting STATUS_OBJECT_NAME_COLLISION.
	IdempotentCreate bool

	// SkipTests lists subtest names to skip.
	SkipTests []string
}

// ShareSuiteConfig returns the configuration for dispatchers with full SMB
// semantics.
func ShareSuiteConfig() SuiteConfig {
	return SuiteConfig{}
}

// ObjectStoreSuiteConfig returns the configuration for dispatchers backed by
// object stores, where directories are markers.
func ObjectStoreSuiteConfig() SuiteConfig {
	return SuiteConfig{
		ImplicitParentDirs: true,
		IdempotentCreate:   true,
	}
}

// TestDispatcher runs the conformance suite with ShareSuiteConfig.
// newDispatcher must return a dispatcher for a fresh, empty share.
func TestDispatcher(t *testing.T, newDispatcher func() smb.Dispatcher) {
	TestDispatcherWithConfig(t, newDispatcher, ShareSuiteConfig())
}

// TestDispatcherWithConfig runs the conformance suite.
func TestDispatcherWithConfig(t *testing.T, newDispatcher func() smb.Dispatcher, cfg SuiteConfig) {
	t.Helper()

	skip := make(map[string]bool, len(cfg.SkipTests))
	for _, name := range cfg.SkipTests {
		skip[name] = true
	}

	tests := []struct {
		name string
		fn   func(*testing.T, smb.Dispatcher, SuiteConfig)
	}{
		{"OpenMissing", testOpenMissing},
		{"OpenBelowMissing", testOpenBelowMissing},
		{"CreateThenOpen", testCreateThenOpen},
		{"CreateNested", testCreateNested},
		{"CreateBelowMissing", testCreateBelowMissing},
		{"CreateExisting", testCreateExisting},
		{"CloseTwice", testCloseTwice},
		{"MkdirAll", testMkdirAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if skip[tt.name] {
				t.Skipf("skipped by configuration")
			}
			tt.fn(t, newDispatcher(), cfg)
		})
	}
}

func mustCreate(t *testing.T, d smb.Dispatcher, path string) {
	t.Helper()
	h, err := d.CreateFolder(context.Background(), path, smb.DefaultMode)
	if err != nil {
		t.Fatalf("CreateFolder(%q) error = %v", path, err)
	}
	if err := d.Close(context.Background(), h); err != nil {
		t.Fatalf("Close(%q) error = %v", path, err)
	}
}

func mustOpen(t *testing.T, d smb.Dispatcher, path string) {
	t.Helper()
	h, err := d.OpenFolder(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenFolder(%q) error = %v", path, err)
	}
	if h == nil {
		t.Fatalf("OpenFolder(%q) returned nil handle", path)
	}
	if h.Path != path {
		t.Errorf("OpenFolder(%q) handle path = %q", path, h.Path)
	}
	if err := d.Close(context.Background(), h); err != nil {
		t.Fatalf("Close(%q) error = %v", path, err)
	}
}

func testOpenMissing(t *testing.T, d smb.Dispatcher, _ SuiteConfig) {
	_, err := d.OpenFolder(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Fatalf("OpenFolder(missing) error = %v, want not found", err)
	}
}

func testOpenBelowMissing(t *testing.T, d smb.Dispatcher, _ SuiteConfig) {
	_, err := d.OpenFolder(context.Background(), `missing\child`)
	if !errors.IsNotFound(err) {
		t.Fatalf(`OpenFolder(missing\child) error = %v, want not found`, err)
	}
}

func testCreateThenOpen(t *testing.T, d smb.Dispatcher, _ SuiteConfig) {
	mustCreate(t, d, "dir")
	mustOpen(t, d, "dir")
}

func testCreateNested(t *testing.T, d smb.Dispatcher, _ SuiteConfig) {
	mustCreate(t, d, "a")
	mustCreate(t, d, `a\b`)
	mustCreate(t, d, `a\b\c`)
	mustOpen(t, d, `a\b\c`)
	mustOpen(t, d, "a")
}

func testCreateBelowMissing(t *testing.T, d smb.Dispatcher, cfg SuiteConfig) {
	h, err := d.CreateFolder(context.Background(), `nope\child`, smb.DefaultMode)
	if cfg.ImplicitParentDirs {
		if err != nil {
			t.Fatalf("CreateFolder below missing parent error = %v", err)
		}
		_ = d.Close(context.Background(), h)
		return
	}
	if !errors.IsNotFound(err) {
		t.Fatalf("CreateFolder below missing parent error = %v, want not found", err)
	}
}

func testCreateExisting(t *testing.T, d smb.Dispatcher, cfg SuiteConfig) {
	mustCreate(t, d, "dup")
	h, err := d.CreateFolder(context.Background(), "dup", smb.DefaultMode)
	if cfg.IdempotentCreate {
		if err != nil {
			t.Fatalf("CreateFolder(existing) error = %v", err)
		}
		_ = d.Close(context.Background(), h)
		return
	}
	if code := errors.GetCode(err); code != errors.CodeObjectNameCollision {
		t.Fatalf("CreateFolder(existing) code = %s, want %s", code, errors.CodeObjectNameCollision)
	}
}

func testCloseTwice(t *testing.T, d smb.Dispatcher, _ SuiteConfig) {
	h, err := d.CreateFolder(context.Background(), "closeme", smb.DefaultMode)
	if err != nil {
		t.Fatalf("CreateFolder error = %v", err)
	}
	if err := d.Close(context.Background(), h); err != nil {
		t.Fatalf("first Close error = %v", err)
	}
	err = d.Close(context.Background(), h)
	if code := errors.GetCode(err); code != errors.CodeInvalidHandle {
		t.Fatalf("second Close code = %s, want %s", code, errors.CodeInvalidHandle)
	}
}

func testMkdirAll(t *testing.T, d smb.Dispatcher, _ SuiteConfig) {
	share, err := smb.New(d)
	if err != nil {
		t.Fatalf("smb.New error = %v", err)
	}

	ctx := context.Background()
	if err := share.MkdirAll(ctx, "/p/q/r"); err != nil {
		t.Fatalf("MkdirAll error = %v", err)
	}
	for _, dir := range []string{"p", `p\q`, `p\q\r`} {
		mustOpen(t, d, dir)
	}

	if err := share.MkdirAll(ctx, `p\q\r\s`); err != nil {
		t.Fatalf("MkdirAll over existing tree error = %v", err)
	}
	ok, err := share.Exists(ctx, "p/q/r/s")
	if err != nil || !ok {
		t.Fatalf("Exists(p/q/r/s) = %v, %v; want true, nil", ok, err)
	}
}
