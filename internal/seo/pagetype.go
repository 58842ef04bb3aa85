package seo

import (
	"strings"

	"github.com/theprojectseo/internal/content"
)

// PageType classifies a URL path by its shape alone, without the catalog.
// Analytics uses it for paths that may no longer exist.
func PageType(path string) content.Kind {
	switch {
	case path == "/":
		return content.KindHome
	case path == "/blog":
		return content.KindBlog
	case strings.HasPrefix(path, "/blog/"):
		return content.KindBlogPost
	case path == "/services", strings.HasPrefix(path, "/services/"):
		return content.KindService
	case strings.HasPrefix(path, "/industries/"):
		return content.KindIndustry
	case strings.HasPrefix(path, "/locations/"):
		return content.KindLocation
	case strings.HasSuffix(path, "-seo-services"):
		return content.KindCountrySEO
	case path == "/pricing":
		return content.KindPricing
	case path == "/contact":
		return content.KindContact
	case path == "/company":
		return content.KindCompany
	case path == "/privacy", path == "/terms":
		return content.KindLegal
	default:
		return content.KindOther
	}
}
