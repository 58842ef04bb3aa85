package seo

import (
	"time"

	"github.com/theprojectseo/internal/content"
)

// Meta is everything rendered into <head> besides JSON-LD.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	Robots        string
	OGType        string
	OGTitle       string
	OGImage       string
	SiteName      string
	TwitterCard   string
	PublishedTime time.Time
	Author        string
}

// OGImagePath is where the share image of route is served.
func OGImagePath(route string) string {
	if route == "/" {
		return "/og/index.png"
	}
	return "/og" + route + ".png"
}

// PageMeta derives head metadata for a catalog page.
func PageMeta(site Site, page *content.Page) Meta {
	meta := Meta{
		Title:       page.Title,
		Description: page.Description,
		Canonical:   site.URL(page.Route),
		Robots:      "index, follow",
		OGType:      "website",
		OGTitle:     page.Heading,
		OGImage:     site.URL(OGImagePath(page.Route)),
		SiteName:    site.Name,
		TwitterCard: "summary_large_image",
	}
	if page.Post != nil {
		meta.OGType = "article"
		meta.PublishedTime = page.Post.Published
		meta.Author = page.Post.Author.Name
	}
	if page.Sitemap.Exclude {
		meta.Robots = "noindex, follow"
	}
	return meta
}

// NotFoundMeta is used for the 404 page.
func NotFoundMeta(site Site) Meta {
	return Meta{
		Title:       "Page not found | " + site.Name,
		Description: "The page you are looking for does not exist.",
		Robots:      "noindex, nofollow",
		OGType:      "website",
		SiteName:    site.Name,
		TwitterCard: "summary",
	}
}
