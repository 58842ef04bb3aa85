// Package seo builds the search-engine facing parts of a page: meta tags,
// JSON-LD documents, the sitemap, robots.txt and URL classification.
package seo

import (
	"strings"
)

// Site is the organization-wide identity used by every builder.
type Site struct {
	Name        string
	BaseURL     string
	Description string
	Logo        string
	SameAs      []string
}

// URL resolves route against the site base URL.
func (s Site) URL(route string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if route == "" || route == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}

// Host returns the base URL host without scheme or port.
func (s Site) Host() string {
	host := s.BaseURL
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	if idx := strings.IndexAny(host, "/:"); idx >= 0 {
		host = host[:idx]
	}
	return strings.ToLower(host)
}
