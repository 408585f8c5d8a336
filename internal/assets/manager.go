package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// DefaultMaxSize bounds a single upload.
const DefaultMaxSize int64 = 20 << 20

// TextExtractor turns an uploaded content document into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
}

// UploadRequest describes one upload.
type UploadRequest struct {
	Bucket   string
	UserID   uuid.UUID
	Filename string
	Body     io.Reader
}

// Upload is the stored object plus its public URL. ExtractedText is only
// filled for content documents; ExtractError records an extraction failure
// without failing the upload.
type Upload struct {
	Bucket        string `json:"bucket"`
	Path          string `json:"path"`
	PublicURL     string `json:"public_url"`
	ContentType   string `json:"content_type"`
	Size          int    `json:"size"`
	ExtractedText string `json:"extracted_text,omitempty"`
	ExtractError  string `json:"extract_error,omitempty"`
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSuffix overrides the random object name suffix.
func WithSuffix(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.suffix = fn
		}
	}
}

func WithMaxSize(limit int64) Option {
	return func(m *Manager) {
		if limit > 0 {
			m.maxSize = limit
		}
	}
}

func WithExtractor(extractor TextExtractor) Option {
	return func(m *Manager) {
		m.extractor = extractor
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager uploads and resolves assets on top of a Store.
type Manager struct {
	store     Store
	baseURL   string
	now       func() time.Time
	suffix    func() string
	maxSize   int64
	extractor TextExtractor
	logger    interfaces.Logger
}

func NewManager(store Store, publicBaseURL string, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		baseURL: publicBaseURL,
		now:     time.Now,
		suffix:  randomSuffix,
		maxSize: DefaultMaxSize,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ObjectPath builds <user>/<unix-millis>-<suffix>.<ext>.
func (m *Manager) ObjectPath(userID uuid.UUID, filename string) string {
	name := strconv.FormatInt(m.now().UnixMilli(), 10) + "-" + m.suffix()
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), "."); ext != "" {
		name += "." + ext
	}
	return userID.String() + "/" + name
}

// Upload stores the body and returns its public URL.
func (m *Manager) Upload(ctx context.Context, req UploadRequest) (*Upload, error) {
	if !ValidBucket(req.Bucket) {
		return nil, ErrInvalidBucket
	}
	data, err := io.ReadAll(io.LimitReader(req.Body, m.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("assets: read upload: %w", err)
	}
	if int64(len(data)) > m.maxSize {
		return nil, ErrTooLarge
	}
	contentType := mimetype.Detect(data).String()
	objectPath := m.ObjectPath(req.UserID, req.Filename)

	if err := m.store.Put(ctx, req.Bucket, objectPath, contentType, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	result := &Upload{
		Bucket:      req.Bucket,
		Path:        objectPath,
		PublicURL:   m.PublicURL(req.Bucket, objectPath),
		ContentType: contentType,
		Size:        len(data),
	}
	logger := m.logger.WithContext(ctx)
	logger.Info("asset.uploaded", "bucket", req.Bucket, "path", objectPath, "size", len(data))

	if req.Bucket == BucketContentDocuments && m.extractor != nil {
		text, err := m.extractor.ExtractText(ctx, req.Filename, data)
		if err != nil {
			logger.Warn("asset.extract.failed", "path", objectPath, "error", err)
			result.ExtractError = err.Error()
		} else {
			result.ExtractedText = text
		}
	}
	return result, nil
}

// PublicURL returns the public URL of an object.
func (m *Manager) PublicURL(bucket, objectPath string) string {
	return PublicURL(m.baseURL, bucket, objectPath)
}

// Get fetches an object by bucket and path.
func (m *Manager) Get(ctx context.Context, bucket, objectPath string) (*Object, error) {
	if !ValidBucket(bucket) {
		return nil, ErrInvalidBucket
	}
	return m.store.Get(ctx, bucket, objectPath)
}

// Fetch resolves a public URL to the stored object.
func (m *Manager) Fetch(ctx context.Context, publicURL string) (*Object, error) {
	bucket, objectPath, err := ParsePublicURL(publicURL)
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, bucket, objectPath)
}

// DataURI fetches a public URL and encodes it as a base64 data URI. Objects
// without a known type default to image/png.
func (m *Manager) DataURI(ctx context.Context, publicURL string) (string, error) {
	obj, err := m.Fetch(ctx, publicURL)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(obj.ContentType, obj.Data), nil
}

// Delete removes an object.
func (m *Manager) Delete(ctx context.Context, bucket, objectPath string) error {
	if !ValidBucket(bucket) {
		return ErrInvalidBucket
	}
	return m.store.Delete(ctx, bucket, objectPath)
}

// EncodeDataURI renders data as data:<mime>;base64,<payload>.
func EncodeDataURI(contentType string, data []byte) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = "image/png"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}
