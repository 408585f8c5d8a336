package generation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-landing/internal/validation"
)

// maxDocumentChars bounds the extracted document text forwarded in the prompt.
const maxDocumentChars = 12000

const systemPrompt = `You are an expert in high-converting landing pages.

Your task is to generate a COMPLETE and PERSONALIZED landing page from the information provided by the user.

RULES:
1. Never produce generic or placeholder copy. Every text must be specific to the project.
2. When a wireframe or visual inspiration is attached, follow the STRUCTURE and LAYOUT of the image when choosing sections.
3. When a description is provided, build all copy on top of it.
4. Write persuasive headlines and copy that converts.
5. Adapt the number and type of sections to the project.
6. Pick colors that make sense for the project's niche.
7. Provide at least 3 or 4 relevant features or benefits.
8. Testimonials must read as real and specific to the product or service.

SECTIONS:
- hero: strong headline, persuasive subheadline, clear call to action
- features: benefits with emoji icons and descriptions
- how-it-works: clear steps
- testimonials: quotes with name and role
- cta: final call to action
- footer: copyright and legal information`

// LandingPageTool is the structured-output tool declaration.
func LandingPageTool() Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        ToolName,
			Description: "Generates a complete landing page structure with all sections and content.",
			Parameters:  validation.LandingPageSchema(),
		},
	}
}

// BuildMessages assembles the system and user messages. images are data URIs
// appended after the text part in the order given.
func BuildMessages(req Request, images []string) []ChatMessage {
	var text strings.Builder
	fmt.Fprintf(&text, "Create a complete landing page for the following project:\n\n**Title:** %s\n", req.Title)
	if req.Description != "" {
		fmt.Fprintf(&text, "**Description:** %s\n", req.Description)
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(&text, "**Target audience:** %s\n", req.TargetAudience)
	}
	if req.Tone != "" {
		fmt.Fprintf(&text, "**Tone of voice:** %s\n", req.Tone)
	}
	if req.Language != "" {
		fmt.Fprintf(&text, "**Write all copy in:** %s\n", languageName(req.Language))
	}
	if req.WireframeURL != "" {
		text.WriteString("\n**IMPORTANT:** Analyze the attached wireframe. Use the STRUCTURE and ARRANGEMENT of its elements to organize the sections: how many there are, their order and layout.")
	}
	if req.DesignInspirationURL != "" {
		text.WriteString("\n**IMPORTANT:** Analyze the attached inspiration image. Extract its COLORS and VISUAL STYLE and use a similar primaryColor.")
	}
	if req.DocumentText != "" {
		docText := req.DocumentText
		if runes := []rune(docText); len(runes) > maxDocumentChars {
			docText = string(runes[:maxDocumentChars])
		}
		fmt.Fprintf(&text, "\n**IMPORTANT:** Use the following content document as the basis for the copy:\n\"\"\"\n%s\n\"\"\"", docText)
	} else if req.ContentDocumentURL != "" {
		fmt.Fprintf(&text, "\n**IMPORTANT:** A content document was provided (%s). Use its information as the basis for the copy.", req.ContentDocumentURL)
	}
	fmt.Fprintf(&text, `

Generate the landing page with the %s function. Include:
- A hero section with a strong headline based on the title "%s"
- A features or benefits section (at least 3 items)
- A how it works section (3 or 4 steps)
- A testimonials section (2 or 3 testimonials)
- A final call to action section
- A footer with copyright`, ToolName, req.Title)

	parts := []ContentPart{{Type: "text", Text: text.String()}}
	for _, uri := range images {
		if uri == "" {
			continue
		}
		parts = append(parts, ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: uri}})
	}
	return []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: parts},
	}
}
