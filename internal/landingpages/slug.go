package landingpages

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

const fallbackSlugBase = "landing-page"

// GenerateSlug returns the normalized title followed by a base36 timestamp
// so repeated titles stay unique.
func GenerateSlug(title string, at time.Time) string {
	base, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil || base == "" {
		base = fallbackSlugBase
	}
	return base + "-" + strconv.FormatInt(at.UnixMilli(), 36)
}
