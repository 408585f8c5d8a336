package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// FSStore keeps objects under root/<bucket>/<path>. Content types are
// sniffed on read.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, errors.New("assets: filesystem root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create root: %w", err)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) Put(_ context.Context, bucket, path, _ string, body io.Reader) error {
	target, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("assets: create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("assets: create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("assets: write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("assets: close object: %w", err)
	}
	return os.Rename(tmp.Name(), target)
}

func (s *FSStore) Get(_ context.Context, bucket, path string) (*Object, error) {
	target, err := s.resolve(bucket, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("assets: read object: %w", err)
	}
	return &Object{
		Bucket:      bucket,
		Path:        path,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

func (s *FSStore) Delete(_ context.Context, bucket, path string) error {
	target, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("assets: delete object: %w", err)
	}
	return nil
}

func (s *FSStore) resolve(bucket, path string) (string, error) {
	if !ValidBucket(bucket) {
		return "", ErrInvalidBucket
	}
	path, err := cleanPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(path)), nil
}
