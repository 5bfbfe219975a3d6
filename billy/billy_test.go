package billy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/smb"
	"github.com/jmgilman/go/smb/errors"
	"github.com/jmgilman/go/smb/smbtest"
)

// TestMemory_Conformance runs the dispatcher suite against an in-memory filesystem.
func TestMemory_Conformance(t *testing.T) {
	smbtest.TestDispatcher(t, func() smb.Dispatcher {
		return NewMemory()
	})
}

// TestLocal_Conformance runs the dispatcher suite against a temporary directory.
func TestLocal_Conformance(t *testing.T) {
	smbtest.TestDispatcher(t, func() smb.Dispatcher {
		return NewLocal(t.TempDir())
	})
}

// TestNewMemory verifies NewMemory creates an empty filesystem.
func TestNewMemory(t *testing.T) {
	d := NewMemory()
	require.NotNil(t, d)
	require.NotNil(t, d.Unwrap())

	infos, err := d.Unwrap().ReadDir("/")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

// TestOpenFolder_File verifies a file is not opened as a directory.
func TestOpenFolder_File(t *testing.T) {
	d := NewMemory()
	f, err := d.Unwrap().Create("report.txt")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = d.OpenFolder(context.Background(), "report.txt")
	assert.Equal(t, errors.CodeNotADirectory, errors.GetCode(err))

	_, err = d.OpenFolder(context.Background(), `report.txt\inner`)
	assert.Equal(t, errors.CodeObjectPathNotFound, errors.GetCode(err))
}

// TestOpenFolder_Root verifies the share root always opens.
func TestOpenFolder_Root(t *testing.T) {
	d := NewMemory()
	h, err := d.OpenFolder(context.Background(), `\`)
	require.NoError(t, err)
	require.NoError(t, d.Close(context.Background(), h))

	_, err = d.CreateFolder(context.Background(), "", smb.DefaultMode)
	assert.Equal(t, errors.CodeObjectNameCollision, errors.GetCode(err))
}

// TestOpenFolder_NameVersusPathNotFound verifies the two missing statuses.
func TestOpenFolder_NameVersusPathNotFound(t *testing.T) {
	d := NewMemory()
	require.NoError(t, d.Unwrap().MkdirAll("a", 0o755))

	_, err := d.OpenFolder(context.Background(), `a\b`)
	assert.Equal(t, errors.CodeObjectNameNotFound, errors.GetCode(err))

	_, err = d.OpenFolder(context.Background(), `a\b\c`)
	assert.Equal(t, errors.CodeObjectPathNotFound, errors.GetCode(err))
}

// TestCancelledContext verifies requests are refused once ctx is done.
func TestCancelledContext(t *testing.T) {
	d := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.OpenFolder(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = d.CreateFolder(ctx, "a", smb.DefaultMode)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestShare_MkdirAll verifies a Share builds the tree on the filesystem.
func TestShare_MkdirAll(t *testing.T) {
	d := NewMemory()
	share, err := smb.New(d)
	require.NoError(t, err)

	require.NoError(t, share.MkdirAll(context.Background(), "/projects/2024/q1", smb.WithMode(0o750)))

	info, err := d.Unwrap().Stat("projects/2024/q1")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, share.MkdirAll(context.Background(), `projects\2024\q2`))
	infos, err := d.Unwrap().ReadDir("projects/2024")
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	d.mu.Lock()
	assert.Empty(t, d.handles, "every handle is closed")
	d.mu.Unlock()
}

// TestShare_MkdirAllThroughFile verifies a file in the way stops the walk.
func TestShare_MkdirAllThroughFile(t *testing.T) {
	d := NewMemory()
	require.NoError(t, d.Unwrap().MkdirAll("a", 0o755))
	f, err := d.Unwrap().Create("a/b")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	share, err := smb.New(d)
	require.NoError(t, err)

	err = share.MkdirAll(context.Background(), "a/b/c")
	assert.Equal(t, errors.CodeNotADirectory, errors.GetCode(err))

	_, err = d.Unwrap().Stat("a/b/c")
	assert.Error(t, err)
}

// TestCreateFolder_Concurrent verifies only one of several racing creates wins.
func TestCreateFolder_Concurrent(t *testing.T) {
	for name, newDispatcher := range map[string]func() *Dispatcher{
		"memory": NewMemory,
		"local":  func() *Dispatcher { return NewLocal(t.TempDir()) },
	} {
		t.Run(name, func(t *testing.T) {
			d := newDispatcher()
			const workers = 16

			var wg sync.WaitGroup
			errs := make([]error, workers)
			start := make(chan struct{})
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					h, err := d.CreateFolder(context.Background(), "race", smb.DefaultMode)
					if err == nil {
						err = d.Close(context.Background(), h)
					}
					errs[i] = err
				}(i)
			}
			close(start)
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
					continue
				}
				assert.Equal(t, errors.CodeObjectNameCollision, errors.GetCode(err))
			}
			assert.Equal(t, 1, succeeded)
		})
	}
}
