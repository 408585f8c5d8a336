package generation

import (
	"regexp"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/validation"
)

// Source records which parsing step produced a document.
type Source string

const (
	SourceToolCall Source = "tool_call"
	SourceContent  Source = "content"
	SourceFallback Source = "fallback"
)

var embeddedObject = regexp.MustCompile(`(?s)\{.*\}`)

// ParseResponse reads the first usable document from resp: the tool call
// arguments first, then a JSON object embedded in the message text. Payloads
// that fail the landing page schema or carry no sections are rejected whole.
func ParseResponse(resp *ChatResponse) (document.Document, Source, bool) {
	if resp == nil || len(resp.Choices) == 0 {
		return document.Document{}, "", false
	}
	message := resp.Choices[0].Message
	for _, call := range message.ToolCalls {
		if call.Function.Name != ToolName {
			continue
		}
		if doc, ok := decodePayload([]byte(call.Function.Arguments)); ok {
			return doc, SourceToolCall, true
		}
		break
	}
	if match := embeddedObject.FindString(message.Content); match != "" {
		if doc, ok := decodePayload([]byte(match)); ok {
			return doc, SourceContent, true
		}
	}
	return document.Document{}, "", false
}

func decodePayload(raw []byte) (document.Document, bool) {
	if _, err := validation.LandingPage().ValidateJSON(raw); err != nil {
		return document.Document{}, false
	}
	doc, err := document.Parse(raw)
	if err != nil || len(doc.Sections) == 0 {
		return document.Document{}, false
	}
	return doc, true
}
