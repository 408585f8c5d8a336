package landingpages

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired   = errors.New("landingpages: title is required")
	ErrIDRequired      = errors.New("landingpages: id is required")
	ErrStatusInvalid   = errors.New("landingpages: status is invalid")
	ErrContentInvalid  = errors.New("landingpages: stored content is not a valid document")
	ErrArchived        = errors.New("landingpages: landing page is archived")
	ErrSlugUnavailable = errors.New("landingpages: slug could not be generated")
	ErrSlugTaken       = errors.New("landingpages: slug already in use")
)

// NotFoundError reports a missing landing page.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("landing page %q not found", e.Key)
}
