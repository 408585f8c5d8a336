package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/render"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func sampleDocument() document.Document {
	return document.Document{
		Metadata: document.Metadata{PrimaryColor: "#0ea5e9", Subheadline: "Meta sub"},
		Sections: []document.Section{
			{ID: "hero-1", Type: document.SectionHero, Content: map[string]any{"headline": "Launch faster", "subheadline": "Ship today"}},
			{ID: "features-1", Type: document.SectionFeatures, Content: map[string]any{
				"features": []any{
					map[string]any{"icon": "🚀", "title": "Speed", "description": "Quick"},
					map[string]any{"title": "Trust"},
				},
			}},
			{ID: "how-1", Type: document.SectionHowItWorks, Content: map[string]any{
				"steps": []any{
					map[string]any{"title": "Sign up"},
					map[string]any{"title": "Build"},
					map[string]any{"title": "Ship"},
				},
			}},
			{ID: "testimonials-1", Type: document.SectionTestimonials, Content: map[string]any{
				"testimonials": []any{map[string]any{"name": "ana", "quote": "Great"}},
			}},
			{ID: "cta-1", Type: document.SectionCTA, Content: map[string]any{}},
		},
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := render.New(render.WithClock(fixedClock))
	doc := sampleDocument()

	first := r.Render(doc, "Acme")
	second := r.Render(doc, "Acme")
	if first != second {
		t.Fatal("expected identical output for identical input")
	}
}

func TestRenderEmptyDocumentUsesPlaceholderAndSingleFooter(t *testing.T) {
	r := render.New(render.WithClock(fixedClock))
	html := r.Render(document.Document{}, "Acme Launch")

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Fatalf("expected doctype, got %q", html[:20])
	}
	page := parseHTML(t, html)
	if got := page.Find("title").Text(); got != "Acme Launch" {
		t.Fatalf("expected title Acme Launch, got %q", got)
	}
	if got := page.Find("h1").Text(); got != "Acme Launch" {
		t.Fatalf("expected placeholder headline, got %q", got)
	}
	if n := page.Find("footer").Length(); n != 1 {
		t.Fatalf("expected exactly one footer, got %d", n)
	}
	if got := page.Find("footer p").Text(); got != "© 2025 Acme Launch. All rights reserved." {
		t.Fatalf("unexpected copyright %q", got)
	}
}

func TestRenderDoesNotDuplicateExistingFooter(t *testing.T) {
	doc := document.Document{Sections: []document.Section{
		{ID: "hero-1", Type: document.SectionHero},
		{ID: "footer-1", Type: document.SectionFooter, Content: map[string]any{"copyright": "© Acme Corp"}},
	}}

	page := parseHTML(t, render.New(render.WithClock(fixedClock)).Render(doc, "Acme"))
	footers := page.Find("footer")
	if footers.Length() != 1 {
		t.Fatalf("expected one footer, got %d", footers.Length())
	}
	if got := footers.Text(); !strings.Contains(got, "© Acme Corp") {
		t.Fatalf("expected custom copyright, got %q", got)
	}
}

func TestRenderSkipsUnknownSectionTypes(t *testing.T) {
	doc := document.Document{Sections: []document.Section{
		{ID: "hero-1", Type: document.SectionHero, Content: map[string]any{"headline": "First"}},
		{ID: "carousel-1", Type: "carousel", Content: map[string]any{"slides": []any{"a"}}},
		{ID: "cta-1", Type: document.SectionCTA, Content: map[string]any{"title": "Last"}},
	}}

	page := parseHTML(t, render.New(render.WithClock(fixedClock)).Render(doc, "Acme"))
	sections := page.Find("body > section")
	if sections.Length() != 2 {
		t.Fatalf("expected 2 rendered sections, got %d", sections.Length())
	}
	if got := sections.Eq(0).Find("h1").Text(); got != "First" {
		t.Fatalf("expected hero first, got %q", got)
	}
	if got := sections.Eq(1).Find("h2").Text(); got != "Last" {
		t.Fatalf("expected cta second, got %q", got)
	}
}

func TestRenderAppliesDefaults(t *testing.T) {
	doc := document.Document{Sections: []document.Section{
		{Type: document.SectionHero},
		{Type: document.SectionFeatures},
		{Type: document.SectionTestimonials},
		{Type: document.SectionCTA},
		{Type: document.SectionHowItWorks},
	}}
	page := parseHTML(t, render.New(render.WithClock(fixedClock)).Render(doc, "Acme"))

	hero := page.Find("body > section").Eq(0)
	if hero.Find("h1").Text() != "Acme" {
		t.Fatalf("hero headline should fall back to title, got %q", hero.Find("h1").Text())
	}
	link := hero.Find("a")
	if href, _ := link.Attr("href"); href != "#cta" || strings.TrimSpace(link.Text()) != "Get Started" {
		t.Fatalf("unexpected hero cta %q %q", href, link.Text())
	}

	titles := page.Find("h2").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	want := []string{"Why choose us?", "What our customers say", "Ready to start?", "How it works"}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected default titles %v", titles)
	}

	cta := page.Find("#cta a")
	if href, _ := cta.Attr("href"); href != "#" {
		t.Fatalf("expected cta link #, got %q", href)
	}
}

func TestRenderNumbersStepsAndFallsBackToMetadata(t *testing.T) {
	doc := sampleDocument()
	doc.Sections[0].Content = map[string]any{}
	doc.Metadata.Headline = "Meta headline"

	page := parseHTML(t, render.New(render.WithClock(fixedClock)).Render(doc, "Acme"))
	if got := page.Find("h1").Text(); got != "Meta headline" {
		t.Fatalf("expected metadata headline, got %q", got)
	}
	numbers := page.Find("ol li > div:first-child").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	if strings.Join(numbers, ",") != "1,2,3" {
		t.Fatalf("expected steps numbered 1..3, got %v", numbers)
	}
	if desc, _ := page.Find(`meta[name="description"]`).Attr("content"); desc != "Meta sub" {
		t.Fatalf("expected metadata description, got %q", desc)
	}
	if got := page.Find("figcaption div").First().Text(); got != "A" {
		t.Fatalf("expected avatar initial A, got %q", got)
	}
	if icon := page.Find(".grid span").Eq(1).Text(); icon != "✨" {
		t.Fatalf("expected default icon, got %q", icon)
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	doc := document.Document{
		Metadata: document.Metadata{PrimaryColor: "red;}</style><script>x()</script>"},
		Sections: []document.Section{
			{Type: document.SectionHero, Content: map[string]any{"headline": `<script>alert("x")</script>`, "ctaLink": "javascript:alert(1)"}},
		},
	}
	html := render.New(render.WithClock(fixedClock)).Render(doc, "Acme")

	if strings.Contains(html, `<script>alert`) || strings.Contains(html, "x()") {
		t.Fatalf("user text was not escaped:\n%s", html)
	}
	if strings.Contains(html, "javascript:alert") {
		t.Fatal("unsafe link was not neutralized")
	}
	if !strings.Contains(html, "--primary-color: #6366f1") {
		t.Fatal("invalid color should fall back to the default")
	}
}

func TestRenderOptions(t *testing.T) {
	html := render.New(render.WithLanguage("pt-BR"), render.WithStylesheet("")).Render(document.Document{}, "Acme")
	if !strings.Contains(html, `<html lang="pt-BR">`) {
		t.Fatal("expected configured language")
	}
	if strings.Contains(html, "<script") {
		t.Fatal("expected stylesheet script to be omitted")
	}
}
