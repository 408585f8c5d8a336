package generation

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/identity"
)

// CreatePersonalizedFallback builds the document used when the generation
// service returns nothing usable. The copy is derived from title and
// description so the page is never generic.
func CreatePersonalizedFallback(title, description string) document.Document {
	return Fallback(title, description, time.Now())
}

// Fallback is CreatePersonalizedFallback with an explicit clock for the
// footer year.
func Fallback(title, description string, now time.Time) document.Document {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	subheadline := description
	if subheadline == "" {
		subheadline = fmt.Sprintf("Discover everything %s can do for you and transform your experience", title)
	}

	sections := []document.Section{
		{
			Type: document.SectionHero,
			Content: map[string]any{
				"headline":    title,
				"subheadline": subheadline,
				"ctaText":     "Get Started",
				"ctaLink":     "#cta",
			},
		},
		{
			Type: document.SectionFeatures,
			Content: map[string]any{
				"title": fmt.Sprintf("Why choose %s?", title),
				document.FieldFeatures: []any{
					item("icon", "🚀", "title", "Fast and efficient", "description", "Results in record time with the highest quality."),
					item("icon", "💡", "title", "Innovative", "description", "Cutting-edge technology to solve your problems."),
					item("icon", "🎯", "title", "Focused on results", "description", "Every detail designed to maximize your success."),
					item("icon", "🛡️", "title", "Safe and reliable", "description", "Your peace of mind is our priority."),
				},
			},
		},
		{
			Type: document.SectionHowItWorks,
			Content: map[string]any{
				"title": "How it works",
				document.FieldSteps: []any{
					item("title", "Sign up", "description", fmt.Sprintf("Create your %s account in less than 2 minutes.", title)),
					item("title", "Set it up", "description", "Tailor it to your needs."),
					item("title", "Enjoy", "description", "Start using it and see the results."),
				},
			},
		},
		{
			Type: document.SectionTestimonials,
			Content: map[string]any{
				"title": "What our customers say",
				document.FieldTestimonials: []any{
					item("quote", fmt.Sprintf("%s completely changed the way I work. Highly recommended!", title), "name", "Maria Silva", "role", "Entrepreneur"),
					item("quote", "Amazing results and outstanding support.", "name", "John Santos", "role", "Marketing Manager"),
				},
			},
		},
		{
			Type: document.SectionCTA,
			Content: map[string]any{
				"title":    "Ready to start?",
				"subtitle": fmt.Sprintf("Join the people already enjoying %s.", title),
				"ctaText":  "Start for free",
				"ctaLink":  "#",
			},
		},
		{
			Type: document.SectionFooter,
			Content: map[string]any{
				"copyright": fmt.Sprintf("© %d %s. All rights reserved.", now.Year(), title),
			},
		},
	}
	for i := range sections {
		sections[i].ID = identity.SectionID(title, i, string(sections[i].Type))
	}

	return document.Document{
		Sections: sections,
		Metadata: document.Metadata{
			PrimaryColor: document.DefaultPrimaryColor,
			Headline:     title,
			Subheadline:  subheadline,
		},
	}
}

func item(pairs ...string) map[string]any {
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}
	return out
}
