package publishing

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

// WordPress page statuses accepted by CreatePage.
const (
	WordPressDraft   = "draft"
	WordPressPublish = "publish"
)

var (
	ErrMissingCredentials = errors.New("publishing: site url, username and application password are required")
	ErrInvalidStatus      = errors.New("publishing: status must be draft or publish")
	ErrContentRequired    = errors.New("publishing: title and content are required")
)

// Credentials authenticate against the WordPress REST API with an
// application password.
type Credentials struct {
	SiteURL     string `json:"site_url"`
	Username    string `json:"username"`
	AppPassword string `json:"app_password"`
}

func (c Credentials) normalized() (Credentials, error) {
	out := Credentials{
		SiteURL:     strings.TrimRight(strings.TrimSpace(c.SiteURL), "/"),
		Username:    strings.TrimSpace(c.Username),
		AppPassword: strings.TrimSpace(c.AppPassword),
	}
	if out.SiteURL == "" || out.Username == "" || out.AppPassword == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return out, nil
}

// WordPressError reports a non-success REST response.
type WordPressError struct {
	Status int
	Body   string
}

func (e *WordPressError) Error() string {
	return fmt.Sprintf("wordpress returned status %d: %s", e.Status, e.Body)
}

// WordPressUser is the authenticated account.
type WordPressUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PageInput is a page to create.
type PageInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Slug    string `json:"slug,omitempty"`
	Status  string `json:"status"`
}

// WordPressPage is the created page.
type WordPressPage struct {
	ID     int    `json:"id"`
	Link   string `json:"link"`
	Status string `json:"status"`
	Slug   string `json:"slug"`
}

// WordPressClient calls the WordPress REST API.
type WordPressClient struct {
	http *http.Client
}

func NewWordPressClient(timeout time.Duration) *WordPressClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WordPressClient{http: &http.Client{Timeout: timeout}}
}

// TestConnection verifies the credentials by reading the current user.
func (c *WordPressClient) TestConnection(ctx context.Context, creds Credentials) (*WordPressUser, error) {
	creds, err := creds.normalized()
	if err != nil {
		return nil, err
	}
	var user WordPressUser
	if err := c.do(ctx, creds, http.MethodGet, "/wp-json/wp/v2/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePage creates a page. An empty status means draft.
func (c *WordPressClient) CreatePage(ctx context.Context, creds Credentials, input PageInput) (*WordPressPage, error) {
	creds, err := creds.normalized()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}
	switch input.Status {
	case "":
		input.Status = WordPressDraft
	case WordPressDraft, WordPressPublish:
	default:
		return nil, ErrInvalidStatus
	}
	var page WordPressPage
	if err := c.do(ctx, creds, http.MethodPost, "/wp-json/wp/v2/pages", input, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *WordPressClient) do(ctx context.Context, creds Credentials, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, creds.SiteURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(creds.Username, creds.AppPassword)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wordpress request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wordpress read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &WordPressError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("wordpress decode response: %w", err)
	}
	return nil
}
