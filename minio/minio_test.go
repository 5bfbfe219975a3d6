package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/smb"
	"github.com/jmgilman/go/smb/errors"
)

// TestConfigValidation tests Config.validate() with various scenarios.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "valid config with client",
			config: Config{
				Client: &minio.Client{},
				Bucket: "test-bucket",
			},
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "bucket is required",
		},
		{
			name: "missing endpoint without client",
			config: Config{
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "endpoint is required when client is not provided",
		},
		{
			name: "missing access key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "access key is required when client is not provided",
		},
		{
			name: "missing secret key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "secret key is required when client is not provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, errors.CodeInvalidParameter, errors.GetCode(err))
		})
	}
}

// TestNew verifies construction without contacting a server.
func TestNew(t *testing.T) {
	d, err := New(Config{
		Endpoint:  "localhost:9000",
		Bucket:    "test-bucket",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Prefix:    "/tenants\\acme/",
	})
	require.NoError(t, err)
	assert.NotNil(t, d.Client())
	assert.Equal(t, "tenants/acme", d.prefix)

	_, err = New(Config{Endpoint: "localhost:9000"})
	assert.Equal(t, errors.CodeInvalidParameter, errors.GetCode(err))
}

// TestMarkerKey tests share path to object key conversion.
func TestMarkerKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		want   string
		wantOK bool
	}{
		{"root", "", `\`, "", false},
		{"root with prefix", "p", "", "", false},
		{"single", "", "a", "a/", true},
		{"nested backslash", "", `a\b\c`, "a/b/c/", true},
		{"nested slash", "", "/a/b/", "a/b/", true},
		{"with prefix", "tenants/acme", `a\b`, "tenants/acme/a/b/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dispatcher{prefix: tt.prefix}
			got, ok := d.markerKey(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestRootAndHandles tests the requests served without a round trip.
func TestRootAndHandles(t *testing.T) {
	d, err := New(Config{Client: &minio.Client{}, Bucket: "test-bucket"})
	require.NoError(t, err)
	ctx := context.Background()

	h, err := d.OpenFolder(ctx, `\`)
	require.NoError(t, err)
	require.NoError(t, d.Close(ctx, h))
	assert.Equal(t, errors.CodeInvalidHandle, errors.GetCode(d.Close(ctx, h)))
	assert.Equal(t, errors.CodeInvalidHandle, errors.GetCode(d.Close(ctx, nil)))

	_, err = d.CreateFolder(ctx, "/", smb.DefaultMode)
	assert.Equal(t, errors.CodeObjectNameCollision, errors.GetCode(err))
}

// TestCancelledContext verifies requests are refused once ctx is done.
func TestCancelledContext(t *testing.T) {
	d, err := New(Config{Client: &minio.Client{}, Bucket: "test-bucket"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.OpenFolder(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = d.CreateFolder(ctx, "a", smb.DefaultMode)
	assert.ErrorIs(t, err, context.Canceled)
}
