package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-4o-mini"
	DefaultTimeout  = 90 * time.Second
	ToolName        = "generate_landing_page"
)

// ErrMalformedResponse marks a success status whose body could not be
// decoded. Callers recover with the fallback document.
var ErrMalformedResponse = errors.New("generation: malformed upstream response")

// ChatMessage is one chat completion message. Content is either a string or
// a slice of ContentPart.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one multimodal message part.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Tool declares a callable function.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type ToolChoice struct {
	Type     string             `json:"type"`
	Function ToolChoiceFunction `json:"function"`
}

type ToolChoiceFunction struct {
	Name string `json:"name"`
}

// ChatRequest is the chat completion request body.
type ChatRequest struct {
	Model      string        `json:"model"`
	Messages   []ChatMessage `json:"messages"`
	Tools      []Tool        `json:"tools,omitempty"`
	ToolChoice *ToolChoice   `json:"tool_choice,omitempty"`
}

// ChatResponse keeps the fields the adapter reads.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

type ChatChoice struct {
	Message ResponseMessage `json:"message"`
}

type ResponseMessage struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Completer sends chat completion requests.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ClientConfig configures the HTTP client.
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	model    string
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: normalizeEndpoint(cfg.Endpoint),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    model,
	}
}

// WithHTTPClient swaps the transport client.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	if client != nil {
		c.http = client
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Complete posts req. Rate limits and exhausted credits map to their own
// errors and are never retried here.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.Configured() {
		return nil, wrapUnavailable(ErrMissingCredentials)
	}
	if req.Model == "" {
		req.Model = c.model
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, wrapUpstream(fmt.Errorf("generation: request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapUpstream(fmt.Errorf("generation: read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, wrapRateLimited(ErrRateLimited)
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, wrapQuotaExhausted(ErrQuotaExhausted)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, wrapUpstream(&UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))})
	}

	var parsed ChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &parsed, nil
}

func normalizeEndpoint(value string) string {
	endpoint := strings.TrimSpace(value)
	if endpoint == "" {
		return DefaultEndpoint
	}
	endpoint = strings.TrimRight(endpoint, "/")
	if strings.HasSuffix(endpoint, "/chat/completions") {
		return endpoint
	}
	if strings.HasSuffix(endpoint, "/v1") {
		return endpoint + "/chat/completions"
	}
	return endpoint + "/v1/chat/completions"
}
