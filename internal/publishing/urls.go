package publishing

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-urlkit"
)

const (
	publicGroup     = "public"
	pageRoute       = "page"
	DefaultPagePath = "/p/:slug"
)

// PageURLs builds public landing page URLs.
type PageURLs struct {
	manager *urlkit.RouteManager
}

// NewPageURLs registers the public page route under baseURL.
func NewPageURLs(baseURL, pagePath string) *PageURLs {
	if strings.TrimSpace(pagePath) == "" {
		pagePath = DefaultPagePath
	}
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    publicGroup,
			BaseURL: strings.TrimRight(baseURL, "/"),
			Paths:   map[string]string{pageRoute: pagePath},
		}},
	})
	return &PageURLs{manager: manager}
}

// PageURL returns the public URL of the landing page with slug.
func (u *PageURLs) PageURL(slug string) (url string, err error) {
	if u == nil || u.manager == nil {
		return "", fmt.Errorf("publishing: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("publishing: build page url: %v", rec)
		}
	}()
	return u.manager.Group(publicGroup).Builder(pageRoute).WithParam("slug", slug).Build()
}
