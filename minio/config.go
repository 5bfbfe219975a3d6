// Package minio serves share folder requests from a MinIO/S3-compatible bucket.
//
// Object stores have no directories, so a folder is represented by a
// zero-byte marker object whose key ends in a slash. A folder also exists
// when any object is stored below its prefix. Creating a folder that already
// exists succeeds and parents are never required.
package minio

import (
	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/smb/errors"
)

// ModeMetadataKey is the user metadata key holding the requested mode.
const ModeMetadataKey = "Smb-Mode"

// Config holds MinIO dispatcher configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the bucket backing the share
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional key prefix treated as the share root
	Prefix string

	// Client is an optional pre-configured MinIO client.
	// If provided, Endpoint/AccessKey/SecretKey are ignored.
	Client *minio.Client
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return errors.New(errors.CodeInvalidParameter, "bucket is required")
	}

	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return errors.New(errors.CodeInvalidParameter, "endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return errors.New(errors.CodeInvalidParameter, "access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return errors.New(errors.CodeInvalidParameter, "secret key is required when client is not provided")
	}

	return nil
}
