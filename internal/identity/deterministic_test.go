package identity_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-landing/internal/identity"
)

func TestSectionIDIsStableAndPositional(t *testing.T) {
	a := identity.SectionID("page-1", 0, "hero")
	b := identity.SectionID("page-1", 0, "hero")
	c := identity.SectionID("page-1", 1, "hero")

	if a != b {
		t.Fatalf("expected stable id, got %s and %s", a, b)
	}
	if a == c {
		t.Fatal("expected different positions to yield different ids")
	}
	if !strings.HasPrefix(a, "hero-") || len(a) != len("hero-")+12 {
		t.Fatalf("unexpected id shape %q", a)
	}
	if got := identity.SectionID("page-1", 0, ""); !strings.HasPrefix(got, "section-") {
		t.Fatalf("expected section prefix for empty type, got %q", got)
	}
}

func TestLandingPageUUIDNormalizesSlug(t *testing.T) {
	if identity.LandingPageUUID(" Acme ") != identity.LandingPageUUID("acme") {
		t.Fatal("expected slug normalization")
	}
}
