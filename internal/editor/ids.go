package editor

import (
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/goliatone/go-landing/document"
)

// NewSectionID returns "<type>-<ulid>". ULIDs are monotonic within a process
// so ids are never reused.
func NewSectionID(t document.SectionType) string {
	kind := strings.TrimSpace(string(t))
	if kind == "" {
		kind = "section"
	}
	return kind + "-" + strings.ToLower(ulid.Make().String())
}
