package editor

import (
	"slices"
	"strings"

	"github.com/goliatone/go-landing/document"
)

const (
	OpUpdateField     = "update_field"
	OpAddArrayItem    = "add_array_item"
	OpRemoveArrayItem = "remove_array_item"
	OpUpdateArrayItem = "update_array_item"
	OpReorder         = "reorder"
	OpAddSection      = "add_section"
	OpDeleteSection   = "delete_section"
	OpUpdateMetadata  = "update_metadata"
)

// UpdateField replaces one key of a section's content. Values are not checked
// against the section type.
func (s *Session) UpdateField(sectionID, field string, value any) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return ErrFieldRequired
	}
	return s.mutate(OpUpdateField, sectionID, func() (bool, error) {
		section, err := s.section(sectionID)
		if err != nil {
			return false, err
		}
		section.Content[field] = document.CloneValue(value)
		return true, nil
	})
}

// AddArrayItem appends item to an array-valued content field, creating the
// array when absent.
func (s *Session) AddArrayItem(sectionID, arrayField string, item map[string]any) error {
	arrayField = strings.TrimSpace(arrayField)
	if arrayField == "" {
		return ErrFieldRequired
	}
	return s.mutate(OpAddArrayItem, sectionID, func() (bool, error) {
		section, err := s.section(sectionID)
		if err != nil {
			return false, err
		}
		list, err := arrayValue(section, arrayField)
		if err != nil {
			return false, err
		}
		section.Content[arrayField] = append(list, cloneItem(item))
		return true, nil
	})
}

// RemoveArrayItem deletes the entry at index. An out of range index is a
// no-op.
func (s *Session) RemoveArrayItem(sectionID, arrayField string, index int) error {
	return s.mutate(OpRemoveArrayItem, sectionID, func() (bool, error) {
		section, err := s.section(sectionID)
		if err != nil {
			return false, err
		}
		list, err := arrayValue(section, arrayField)
		if err != nil {
			return false, err
		}
		if index < 0 || index >= len(list) {
			return false, nil
		}
		section.Content[arrayField] = slices.Delete(slices.Clone(list), index, index+1)
		return true, nil
	})
}

// UpdateArrayItem sets field on the object at index. An out of range index is
// a no-op.
func (s *Session) UpdateArrayItem(sectionID, arrayField string, index int, field string, value any) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return ErrFieldRequired
	}
	return s.mutate(OpUpdateArrayItem, sectionID, func() (bool, error) {
		section, err := s.section(sectionID)
		if err != nil {
			return false, err
		}
		list, err := arrayValue(section, arrayField)
		if err != nil {
			return false, err
		}
		if index < 0 || index >= len(list) {
			return false, nil
		}
		item, ok := list[index].(map[string]any)
		if !ok {
			return false, ErrNotObject
		}
		item[field] = document.CloneValue(value)
		return true, nil
	})
}

// Reorder moves a section to newIndex keeping the relative order of every
// other section. newIndex is clamped to the valid range.
func (s *Session) Reorder(sectionID string, newIndex int) error {
	return s.mutate(OpReorder, sectionID, func() (bool, error) {
		from := s.doc.FindSection(sectionID)
		if from < 0 {
			return false, &SectionNotFoundError{ID: sectionID}
		}
		to := min(max(newIndex, 0), len(s.doc.Sections)-1)
		if to == from {
			return false, nil
		}
		moved := s.doc.Sections[from]
		sections := slices.Delete(s.doc.Sections, from, from+1)
		s.doc.Sections = slices.Insert(sections, to, moved)
		return true, nil
	})
}

// AddSection appends a section of type t with a fresh id and the type's
// default content.
func (s *Session) AddSection(t document.SectionType) (document.Section, error) {
	if strings.TrimSpace(string(t)) == "" {
		return document.Section{}, ErrSectionTypeRequired
	}
	var added document.Section
	err := s.mutate(OpAddSection, "", func() (bool, error) {
		id := s.newID(t)
		for s.doc.FindSection(id) >= 0 {
			id = s.newID(t)
		}
		added = document.Section{
			ID:      id,
			Type:    t,
			Content: document.DefaultContent(t),
		}
		s.doc.Sections = append(s.doc.Sections, added)
		added = added.Clone()
		return true, nil
	})
	return added, err
}

// DeleteSection removes a section. Deleting the selected section clears the
// selection.
func (s *Session) DeleteSection(sectionID string) error {
	return s.mutate(OpDeleteSection, sectionID, func() (bool, error) {
		idx := s.doc.FindSection(sectionID)
		if idx < 0 {
			return false, &SectionNotFoundError{ID: sectionID}
		}
		s.doc.Sections = slices.Delete(s.doc.Sections, idx, idx+1)
		if s.selected == sectionID {
			s.selected = ""
		}
		return true, nil
	})
}

// UpdateMetadata sets one of primaryColor, headline or subheadline. Other
// keys are stored as extra metadata.
func (s *Session) UpdateMetadata(key string, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrFieldRequired
	}
	return s.mutate(OpUpdateMetadata, "", func() (bool, error) {
		meta := &s.doc.Metadata
		switch key {
		case "primaryColor":
			meta.PrimaryColor = value
		case "headline":
			meta.Headline = value
		case "subheadline":
			meta.Subheadline = value
		default:
			if meta.Extra == nil {
				meta.Extra = map[string]any{}
			}
			meta.Extra[key] = value
		}
		return true, nil
	})
}

func arrayValue(section *document.Section, field string) ([]any, error) {
	raw, ok := section.Content[field]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	return list, nil
}
