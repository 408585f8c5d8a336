package document

import "maps"

// Clone returns a deep copy of the document. Editing the copy never affects
// the original.
func (d Document) Clone() Document {
	out := Document{
		Metadata: d.Metadata.Clone(),
		Extra:    CloneMap(d.Extra),
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, section := range d.Sections {
			out.Sections[i] = section.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	return Section{
		ID:      s.ID,
		Type:    s.Type,
		Content: CloneMap(s.Content),
		Extra:   CloneMap(s.Extra),
	}
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	out := m
	if m.LastEdited != nil {
		stamp := *m.LastEdited
		out.LastEdited = &stamp
	}
	out.Extra = CloneMap(m.Extra)
	return out
}

// CloneMap deep-copies nested maps and slices decoded from JSON.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = CloneValue(value)
	}
	return out
}

// CloneValue deep-copies a JSON-shaped value.
func CloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return CloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = CloneValue(entry)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = CloneMap(entry)
		}
		return out
	case map[string]string:
		return maps.Clone(v)
	default:
		return v
	}
}
