package validation

import "github.com/goliatone/go-landing/document"

// LandingPageSchema is the JSON schema of a generated landing page document.
// It doubles as the parameters of the generation tool, so descriptions are
// written for the generation service.
func LandingPageSchema() map[string]any {
	str := func(description string) map[string]any {
		out := map[string]any{"type": "string"}
		if description != "" {
			out["description"] = description
		}
		return out
	}
	items := func(required []any, props map[string]any) map[string]any {
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": props,
				"required":   required,
			},
		}
	}
	types := make([]any, 0, len(document.SectionTypes()))
	for _, t := range document.SectionTypes() {
		types = append(types, string(t))
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sections": map[string]any{
				"type":        "array",
				"description": "Array of landing page sections in order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        types,
							"description": "Type of section",
						},
						"content": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"headline":    str("Main headline for hero section"),
								"subheadline": str("Subheadline or supporting text"),
								"ctaText":     str("Call to action button text"),
								"ctaLink":     str("Call to action link"),
								"title":       str("Section title"),
								"subtitle":    str("Section subtitle"),
								document.FieldFeatures: items([]any{"title", "description"}, map[string]any{
									"icon":        str("Emoji icon for the feature"),
									"title":       str(""),
									"description": str(""),
								}),
								document.FieldSteps: items([]any{"title", "description"}, map[string]any{
									"title":       str(""),
									"description": str(""),
								}),
								document.FieldTestimonials: items([]any{"quote", "name"}, map[string]any{
									"quote": str(""),
									"name":  str(""),
									"role":  str(""),
								}),
								"copyright": str("Copyright text for footer"),
							},
						},
					},
					"required": []any{"type", "content"},
				},
			},
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"primaryColor": str("Primary color in hex format (e.g., #6366f1)"),
					"headline":     str("Main headline of the page"),
					"subheadline":  str("Main subheadline"),
				},
				"required": []any{"primaryColor", "headline", "subheadline"},
			},
		},
		"required": []any{"sections", "metadata"},
	}
}

var landingPageValidator = MustNewValidator(LandingPageSchema())

// LandingPage returns the shared validator for generated documents.
func LandingPage() *Validator {
	return landingPageValidator
}
