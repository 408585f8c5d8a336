package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
)

// ErrInvalidDocument reports JSON that cannot be read as a document.
var ErrInvalidDocument = errors.New("document: invalid document json")

const (
	keySections = "sections"
	keyMetadata = "metadata"

	keyID      = "id"
	keyType    = "type"
	keyContent = "content"

	keyPrimaryColor = "primaryColor"
	keyHeadline     = "headline"
	keySubheadline  = "subheadline"
	keyLastEdited   = "lastEdited"
)

// Parse reads a document from JSON. Empty input and a missing sections array
// both yield a document without sections. Unknown keys are kept in Extra.
func Parse(data []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Marshal encodes doc as JSON.
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := maps.Clone(d.Extra)
	if out == nil {
		out = map[string]any{}
	}
	sections := d.Sections
	if sections == nil {
		sections = []Section{}
	}
	out[keySections] = sections
	out[keyMetadata] = d.Metadata
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*d = Document{}

	if payload, ok := raw[keySections]; ok {
		delete(raw, keySections)
		var entries []json.RawMessage
		if !isNull(payload) {
			if err := json.Unmarshal(payload, &entries); err != nil {
				return fmt.Errorf("sections: %w", err)
			}
		}
		d.Sections = make([]Section, 0, len(entries))
		for i, entry := range entries {
			var section Section
			if err := json.Unmarshal(entry, &section); err != nil {
				return fmt.Errorf("sections[%d]: %w", i, err)
			}
			d.Sections = append(d.Sections, section)
		}
	}

	if payload, ok := raw[keyMetadata]; ok {
		delete(raw, keyMetadata)
		if !isNull(payload) {
			if err := json.Unmarshal(payload, &d.Metadata); err != nil {
				return fmt.Errorf("metadata: %w", err)
			}
		}
	}

	d.Extra, err = decodeExtra(raw)
	return err
}

func (s Section) MarshalJSON() ([]byte, error) {
	out := maps.Clone(s.Extra)
	if out == nil {
		out = map[string]any{}
	}
	out[keyID] = s.ID
	out[keyType] = string(s.Type)
	// A non-object content kept in Extra survives unless fields were set.
	if _, kept := out[keyContent]; !kept || len(s.Content) > 0 {
		content := s.Content
		if content == nil {
			content = map[string]any{}
		}
		out[keyContent] = content
	}
	return json.Marshal(out)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*s = Section{Content: map[string]any{}}

	if payload, ok := raw[keyID]; ok {
		delete(raw, keyID)
		value, err := decodeValue(payload)
		if err != nil {
			return err
		}
		if value != nil {
			s.ID = fmt.Sprint(value)
		}
	}
	if payload, ok := raw[keyType]; ok {
		delete(raw, keyType)
		var kind string
		if !isNull(payload) {
			if err := json.Unmarshal(payload, &kind); err != nil {
				return fmt.Errorf("type: %w", err)
			}
		}
		s.Type = SectionType(kind)
	}
	if payload, ok := raw[keyContent]; ok {
		delete(raw, keyContent)
		value, err := decodeValue(payload)
		if err != nil {
			return err
		}
		if obj, ok := value.(map[string]any); ok {
			s.Content = obj
		} else if value != nil {
			raw[keyContent] = payload
		}
	}

	s.Extra, err = decodeExtra(raw)
	return err
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	out := maps.Clone(m.Extra)
	if out == nil {
		out = map[string]any{}
	}
	setString(out, keyPrimaryColor, m.PrimaryColor)
	setString(out, keyHeadline, m.Headline)
	setString(out, keySubheadline, m.Subheadline)
	if m.LastEdited != nil {
		out[keyLastEdited] = m.LastEdited.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*m = Metadata{}
	values, err := decodeExtra(raw)
	if err != nil {
		return err
	}
	m.PrimaryColor = takeString(values, keyPrimaryColor)
	m.Headline = takeString(values, keyHeadline)
	m.Subheadline = takeString(values, keySubheadline)
	if stamp, ok := values[keyLastEdited].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
			m.LastEdited = &parsed
			delete(values, keyLastEdited)
		}
	}
	if len(values) > 0 {
		m.Extra = values
	}
	return nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, nil
}

func decodeValue(payload json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func decodeExtra(raw map[string]json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(raw))
	for key, payload := range raw {
		value, err := decodeValue(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		extra[key] = value
	}
	return extra, nil
}

func isNull(payload json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(payload), []byte("null"))
}

func setString(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}

// takeString removes key from values when it holds a string. Values of other
// shapes stay in place so they survive a round trip.
func takeString(values map[string]any, key string) string {
	value, ok := values[key].(string)
	if !ok {
		return ""
	}
	delete(values, key)
	return value
}
