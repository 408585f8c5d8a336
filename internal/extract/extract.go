// Package extract turns uploaded content documents into plain text used as
// generation input.
package extract

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies a supported document format.
type Format string

const (
	FormatDocx     Format = "docx"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

const (
	mimeDocx   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeMsWord = "application/msword"
)

var (
	ErrUnsupportedFormat = errors.New("extract: unsupported document format")
	ErrCorruptDocument   = errors.New("extract: document could not be read")
)

// Result is the extracted text plus optional hints found in the document.
type Result struct {
	Format      Format `json:"format"`
	Text        string `json:"text"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Extractor reads one format.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*Result, error)
}

// Registry picks an extractor by file extension, then by sniffed MIME type.
type Registry struct {
	extractors map[Format]Extractor
}

// NewRegistry returns a registry with the docx, markdown and text
// extractors installed.
func NewRegistry() *Registry {
	return &Registry{extractors: map[Format]Extractor{
		FormatDocx:     DocxExtractor{},
		FormatMarkdown: MarkdownExtractor{},
		FormatText:     TextExtractor{},
	}}
}

// Register installs or replaces the extractor for format.
func (r *Registry) Register(format Format, extractor Extractor) {
	r.extractors[format] = extractor
}

// Detect resolves the format of a named document.
func Detect(filename string, data []byte) (Format, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".docx", ".doc":
		return FormatDocx, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".txt":
		return FormatText, nil
	}
	detected := mimetype.Detect(data)
	switch {
	case detected.Is(mimeDocx), detected.Is(mimeMsWord):
		return FormatDocx, nil
	case detected.Is("text/markdown"):
		return FormatMarkdown, nil
	case detected.Is("text/plain"):
		return FormatText, nil
	}
	return "", ErrUnsupportedFormat
}

// Extract detects the format of data and extracts its text.
func (r *Registry) Extract(ctx context.Context, filename string, data []byte) (*Result, error) {
	format, err := Detect(filename, data)
	if err != nil {
		return nil, err
	}
	extractor, ok := r.extractors[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	result, err := extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	result.Format = format
	return result, nil
}

// ExtractText returns only the extracted text.
func (r *Registry) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	result, err := r.Extract(ctx, filename, data)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// TextExtractor reads plain text, normalizing line endings.
type TextExtractor struct{}

func (TextExtractor) Extract(_ context.Context, data []byte) (*Result, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	return &Result{Text: strings.TrimSpace(text)}, nil
}
