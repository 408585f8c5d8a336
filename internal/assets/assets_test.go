package assets_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/assets"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(context.Context, string, []byte) (string, error) {
	return s.text, s.err
}

func newManager(store assets.Store, opts ...assets.Option) *assets.Manager {
	base := []assets.Option{
		assets.WithClock(func() time.Time { return time.UnixMilli(1717171717171) }),
		assets.WithSuffix(func() string { return "abc1234" }),
	}
	return assets.NewManager(store, "https://cdn.example.com/", append(base, opts...)...)
}

func TestManagerObjectPathLayout(t *testing.T) {
	manager := newManager(assets.NewMemoryStore())
	user := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	got := manager.ObjectPath(user, "Wireframe.PNG")
	want := "11111111-2222-3333-4444-555555555555/1717171717171-abc1234.png"
	if got != want {
		t.Fatalf("object path: got %q want %q", got, want)
	}
	if got := manager.ObjectPath(user, "noext"); !strings.HasSuffix(got, "-abc1234") {
		t.Fatalf("expected no extension, got %q", got)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	url := assets.PublicURL("https://cdn.example.com/", assets.BucketWireframes, "user/1 2#.png")
	if url != "https://cdn.example.com/storage/v1/object/public/wireframes/user/1%202%23.png" {
		t.Fatalf("unexpected public url %q", url)
	}
	bucket, path, err := assets.ParsePublicURL(url)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bucket != assets.BucketWireframes || path != "user/1 2#.png" {
		t.Fatalf("unexpected parse result %q %q", bucket, path)
	}
}

func TestParsePublicURLRejectsOtherLayouts(t *testing.T) {
	cases := []string{
		"https://cdn.example.com/files/wireframes/a.png",
		"https://cdn.example.com/storage/v1/object/public/wireframes",
		"https://cdn.example.com/storage/v1/object/public//a.png",
	}
	for _, raw := range cases {
		if _, _, err := assets.ParsePublicURL(raw); !errors.Is(err, assets.ErrUnsupportedURL) {
			t.Fatalf("%s: expected ErrUnsupportedURL, got %v", raw, err)
		}
	}
}

func TestManagerUploadAndDataURI(t *testing.T) {
	ctx := context.Background()
	manager := newManager(assets.NewMemoryStore())

	upload, err := manager.Upload(ctx, assets.UploadRequest{
		Bucket:   assets.BucketWireframes,
		UserID:   uuid.New(),
		Filename: "sketch.png",
		Body:     bytes.NewReader(pngHeader),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if upload.ContentType != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", upload.ContentType)
	}
	if !strings.HasPrefix(upload.PublicURL, "https://cdn.example.com/storage/v1/object/public/wireframes/") {
		t.Fatalf("unexpected public url %q", upload.PublicURL)
	}

	uri, err := manager.DataURI(ctx, upload.PublicURL)
	if err != nil {
		t.Fatalf("data uri: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected data uri prefix %q", uri[:30])
	}
}

func TestManagerUploadValidation(t *testing.T) {
	ctx := context.Background()
	manager := newManager(assets.NewMemoryStore(), assets.WithMaxSize(4))

	if _, err := manager.Upload(ctx, assets.UploadRequest{Bucket: "avatars", Body: strings.NewReader("x")}); !errors.Is(err, assets.ErrInvalidBucket) {
		t.Fatalf("expected ErrInvalidBucket, got %v", err)
	}
	if _, err := manager.Upload(ctx, assets.UploadRequest{Bucket: assets.BucketWireframes, Body: strings.NewReader("too large")}); !errors.Is(err, assets.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestManagerExtractionFailureDoesNotFailUpload(t *testing.T) {
	ctx := context.Background()
	manager := newManager(assets.NewMemoryStore(), assets.WithExtractor(stubExtractor{err: errors.New("corrupt docx")}))

	upload, err := manager.Upload(ctx, assets.UploadRequest{
		Bucket:   assets.BucketContentDocuments,
		Filename: "brief.docx",
		Body:     strings.NewReader("not a zip"),
	})
	if err != nil {
		t.Fatalf("upload should succeed, got %v", err)
	}
	if upload.ExtractError != "corrupt docx" || upload.ExtractedText != "" {
		t.Fatalf("unexpected extraction result %+v", upload)
	}

	ok := newManager(assets.NewMemoryStore(), assets.WithExtractor(stubExtractor{text: "hello"}))
	upload, err = ok.Upload(ctx, assets.UploadRequest{Bucket: assets.BucketContentDocuments, Filename: "brief.txt", Body: strings.NewReader("hello")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if upload.ExtractedText != "hello" {
		t.Fatalf("expected extracted text, got %q", upload.ExtractedText)
	}
}

func TestFSStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := assets.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new fs store: %v", err)
	}
	if err := store.Put(ctx, assets.BucketDesignInspirations, "u/one.png", "", bytes.NewReader(pngHeader)); err != nil {
		t.Fatalf("put: %v", err)
	}
	obj, err := store.Get(ctx, assets.BucketDesignInspirations, "u/one.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if obj.ContentType != "image/png" || !bytes.Equal(obj.Data, pngHeader) {
		t.Fatalf("unexpected object %+v", obj)
	}
	if err := store.Put(ctx, assets.BucketDesignInspirations, "../escape.png", "", bytes.NewReader(pngHeader)); !errors.Is(err, assets.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if err := store.Delete(ctx, assets.BucketDesignInspirations, "u/one.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, assets.BucketDesignInspirations, "u/one.png"); !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEncodeDataURIDefaultsToPNG(t *testing.T) {
	if got := assets.EncodeDataURI("", []byte("x")); got != "data:image/png;base64,eA==" {
		t.Fatalf("unexpected data uri %q", got)
	}
	if got := assets.EncodeDataURI("image/jpeg; charset=binary", []byte("x")); got != "data:image/jpeg;base64,eA==" {
		t.Fatalf("unexpected data uri %q", got)
	}
}
