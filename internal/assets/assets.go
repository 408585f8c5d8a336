// Package assets stores uploaded source files (content documents, wireframes
// and design inspirations) and resolves their public URLs.
package assets

import (
	"context"
	"errors"
	"io"
	"slices"
)

// Bucket names.
const (
	BucketContentDocuments   = "content-documents"
	BucketWireframes         = "wireframes"
	BucketDesignInspirations = "design-inspirations"
)

// PublicPathPrefix is the URL path under which public objects are served.
const PublicPathPrefix = "/storage/v1/object/public/"

var (
	ErrInvalidBucket  = errors.New("assets: unknown bucket")
	ErrInvalidPath    = errors.New("assets: object path is invalid")
	ErrNotFound       = errors.New("assets: object not found")
	ErrTooLarge       = errors.New("assets: object exceeds the size limit")
	ErrUnsupportedURL = errors.New("assets: unsupported storage URL format")
)

// Buckets lists the known buckets.
func Buckets() []string {
	return []string{BucketContentDocuments, BucketWireframes, BucketDesignInspirations}
}

// ValidBucket reports whether name is a known bucket.
func ValidBucket(name string) bool {
	return slices.Contains(Buckets(), name)
}

// Object is a stored blob.
type Object struct {
	Bucket      string
	Path        string
	ContentType string
	Data        []byte
}

// Store is the blob storage backend.
type Store interface {
	Put(ctx context.Context, bucket, path, contentType string, body io.Reader) error
	Get(ctx context.Context, bucket, path string) (*Object, error)
	Delete(ctx context.Context, bucket, path string) error
}
