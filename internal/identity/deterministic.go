package identity

import (
	"fmt"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key using go-hashid. Keys must be
// prefixed by entity kind so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SectionID returns a stable id for a section that arrived without one, based
// on the owning document key and the section position at load time.
func SectionID(documentKey string, index int, sectionType string) string {
	kind := strings.TrimSpace(sectionType)
	if kind == "" {
		kind = "section"
	}
	key := fmt.Sprintf("go-landing:section:%s:%d:%s", strings.TrimSpace(documentKey), index, kind)
	return kind + "-" + strings.ReplaceAll(UUID(key).String(), "-", "")[:12]
}

// LandingPageUUID derives the id used for seeded or imported landing pages
// keyed by slug.
func LandingPageUUID(slug string) uuid.UUID {
	return UUID("go-landing:landing_page:" + strings.ToLower(strings.TrimSpace(slug)))
}
