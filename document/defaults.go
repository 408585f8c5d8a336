package document

// DefaultContent returns the starting content for a newly added section of
// type t. Unknown types start empty.
func DefaultContent(t SectionType) map[string]any {
	switch t {
	case SectionHero:
		return map[string]any{
			"headline":    "Your headline here",
			"subheadline": "Describe what makes your offer worth a closer look",
			"ctaText":     "Get Started",
			"ctaLink":     "#cta",
		}
	case SectionFeatures:
		return map[string]any{
			"title": "Why choose us?",
			FieldFeatures: []any{
				featureItem("🚀", "Fast", "Get up and running in minutes"),
				featureItem("💡", "Simple", "Everything you need and nothing you don't"),
				featureItem("🎯", "Focused", "Built around the results that matter to you"),
			},
		}
	case SectionTestimonials:
		return map[string]any{
			"title": "What our customers say",
			FieldTestimonials: []any{
				map[string]any{
					"name":  "Client name",
					"role":  "Role, Company",
					"quote": "Share what a happy customer said about you.",
				},
			},
		}
	case SectionCTA:
		return map[string]any{
			"title":    "Ready to start?",
			"subtitle": "Join the people who already made the switch",
			"ctaText":  "Get Started",
			"ctaLink":  "#",
		}
	case SectionHowItWorks:
		return map[string]any{
			"title": "How it works",
			FieldSteps: []any{
				stepItem("Sign up", "Create your account in a few seconds"),
				stepItem("Set up", "Tell us what you need"),
				stepItem("Launch", "Go live and start seeing results"),
			},
		}
	default:
		return map[string]any{}
	}
}

// DefaultItem returns an empty entry for the array field of a section type.
func DefaultItem(field string) map[string]any {
	switch field {
	case FieldFeatures:
		return featureItem("✨", "New feature", "Describe this feature")
	case FieldTestimonials:
		return map[string]any{"name": "Client name", "role": "", "quote": ""}
	case FieldSteps:
		return stepItem("New step", "Describe this step")
	default:
		return map[string]any{}
	}
}

func featureItem(icon, title, description string) map[string]any {
	return map[string]any{"icon": icon, "title": title, "description": description}
}

func stepItem(title, description string) map[string]any {
	return map[string]any{"title": title, "description": description}
}
