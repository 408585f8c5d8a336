package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// DocxExtractor reads the text runs of word/document.xml. Each paragraph
// becomes one line.
type DocxExtractor struct{}

func (DocxExtractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	var part *zip.File
	for _, file := range archive.File {
		if file.Name == docxBodyPart {
			part = file
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrCorruptDocument, docxBodyPart)
	}
	reader, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer reader.Close()

	text, err := docxText(ctx, reader)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text}, nil
}

func docxText(ctx context.Context, r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		out       strings.Builder
		paragraph strings.Builder
		inText    bool
	)
	flush := func() {
		line := strings.TrimRight(paragraph.String(), " \t")
		paragraph.Reset()
		if out.Len() > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(line)
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				paragraph.WriteByte('\t')
			case "br", "cr":
				paragraph.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(el)
			}
		}
	}
	return strings.TrimSpace(out.String()), nil
}
