package assets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStore keeps objects in Cloud Storage. Logical buckets map to configured
// bucket names; unmapped buckets use their logical name.
type GCSStore struct {
	client  *storage.Client
	buckets map[string]string
}

func NewGCSStore(client *storage.Client, buckets map[string]string) (*GCSStore, error) {
	if client == nil {
		return nil, errors.New("assets: storage client is required")
	}
	return &GCSStore{client: client, buckets: buckets}, nil
}

func (s *GCSStore) Put(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	handle, err := s.object(bucket, path)
	if err != nil {
		return err
	}
	writer := handle.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=3600"
	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()
		return fmt.Errorf("assets: upload object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("assets: finalize object: %w", err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, bucket, path string) (*Object, error) {
	handle, err := s.object(bucket, path)
	if err != nil {
		return nil, err
	}
	reader, err := handle.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("assets: open object: %w", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("assets: read object: %w", err)
	}
	return &Object{
		Bucket:      bucket,
		Path:        path,
		ContentType: reader.Attrs.ContentType,
		Data:        data,
	}, nil
}

func (s *GCSStore) Delete(ctx context.Context, bucket, path string) error {
	handle, err := s.object(bucket, path)
	if err != nil {
		return err
	}
	if err := handle.Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("assets: delete object: %w", err)
	}
	return nil
}

func (s *GCSStore) object(bucket, path string) (*storage.ObjectHandle, error) {
	if !ValidBucket(bucket) {
		return nil, ErrInvalidBucket
	}
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	name := bucket
	if mapped := s.buckets[bucket]; mapped != "" {
		name = mapped
	}
	return s.client.Bucket(name).Object(path), nil
}
