// Package document defines the landing page content model: an ordered list of
// typed sections plus advisory metadata.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SectionType discriminates section content. The set is closed for rendering
// and editing defaults, but unknown values are kept as-is.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionFeatures     SectionType = "features"
	SectionTestimonials SectionType = "testimonials"
	SectionCTA          SectionType = "cta"
	SectionHowItWorks   SectionType = "how-it-works"
	SectionFooter       SectionType = "footer"
)

var knownTypes = []SectionType{
	SectionHero,
	SectionFeatures,
	SectionTestimonials,
	SectionCTA,
	SectionHowItWorks,
	SectionFooter,
}

// SectionTypes lists the renderable section types in canonical order.
func SectionTypes() []SectionType {
	return append([]SectionType(nil), knownTypes...)
}

// Known reports whether t has a specialized template.
func (t SectionType) Known() bool {
	for _, known := range knownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Array-valued content fields by section type.
const (
	FieldFeatures     = "features"
	FieldTestimonials = "testimonials"
	FieldSteps        = "steps"
)

// DefaultPrimaryColor is used when metadata carries no color.
const DefaultPrimaryColor = "#6366f1"

// Document is the full landing page content record.
type Document struct {
	Sections []Section
	Metadata Metadata
	// Extra holds top-level keys this package does not model.
	Extra map[string]any
}

// Metadata carries document-wide defaults.
type Metadata struct {
	PrimaryColor string
	Headline     string
	Subheadline  string
	LastEdited   *time.Time
	Extra        map[string]any
}

// Section is one typed content block. Content is an open mapping whose shape
// depends on Type.
type Section struct {
	ID      string
	Type    SectionType
	Content map[string]any
	Extra   map[string]any
}

// Text returns the string value stored under field, or "" when the field is
// absent or not textual.
func (s Section) Text(field string) string {
	return textValue(s.Content[field])
}

// Items returns the object entries of an array-valued field. Entries that are
// not objects are skipped.
func (s Section) Items(field string) []map[string]any {
	list, ok := s.Content[field].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if obj, ok := entry.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}

// ItemText reads a string field from an array entry.
func ItemText(item map[string]any, field string) string {
	return textValue(item[field])
}

func textValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64, int, int64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// FindSection returns the index of the section with id, or -1.
func (d Document) FindSection(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// HasType reports whether any section is of type t.
func (d Document) HasType(t SectionType) bool {
	for _, section := range d.Sections {
		if section.Type == t {
			return true
		}
	}
	return false
}

// Types returns the section types in document order.
func (d Document) Types() []SectionType {
	out := make([]SectionType, len(d.Sections))
	for i, section := range d.Sections {
		out[i] = section.Type
	}
	return out
}
