package workspace

import (
	"fmt"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/editor"
)

// Operation is the wire form of one editor mutation.
type Operation struct {
	Op          string         `json:"op"`
	SectionID   string         `json:"section_id,omitempty"`
	SectionType string         `json:"section_type,omitempty"`
	Field       string         `json:"field,omitempty"`
	ArrayField  string         `json:"array_field,omitempty"`
	Index       int            `json:"index,omitempty"`
	NewIndex    int            `json:"new_index,omitempty"`
	Key         string         `json:"key,omitempty"`
	Value       any            `json:"value,omitempty"`
	Item        map[string]any `json:"item,omitempty"`
}

const opSelect = "select"

func (op Operation) apply(session *editor.Session) error {
	switch op.Op {
	case editor.OpUpdateField:
		return session.UpdateField(op.SectionID, op.Field, op.Value)
	case editor.OpAddArrayItem:
		item := op.Item
		if item == nil {
			item = document.DefaultItem(op.ArrayField)
		}
		return session.AddArrayItem(op.SectionID, op.ArrayField, item)
	case editor.OpRemoveArrayItem:
		return session.RemoveArrayItem(op.SectionID, op.ArrayField, op.Index)
	case editor.OpUpdateArrayItem:
		return session.UpdateArrayItem(op.SectionID, op.ArrayField, op.Index, op.Field, op.Value)
	case editor.OpReorder:
		return session.Reorder(op.SectionID, op.NewIndex)
	case editor.OpAddSection:
		_, err := session.AddSection(document.SectionType(op.SectionType))
		return err
	case editor.OpDeleteSection:
		return session.DeleteSection(op.SectionID)
	case editor.OpUpdateMetadata:
		value, _ := op.Value.(string)
		return session.UpdateMetadata(op.Key, value)
	case opSelect:
		return session.Select(op.SectionID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op.Op)
	}
}
