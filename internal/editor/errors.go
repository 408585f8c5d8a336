package editor

import (
	"errors"
	"fmt"
)

var (
	ErrSectionTypeRequired = errors.New("editor: section type required")
	ErrFieldRequired       = errors.New("editor: field name required")
	ErrNotArray            = errors.New("editor: content field is not an array")
	ErrNotObject           = errors.New("editor: array item is not an object")
)

// SectionNotFoundError reports an operation on an id the session does not
// hold.
type SectionNotFoundError struct {
	ID string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("editor: section %q not found", e.ID)
}
