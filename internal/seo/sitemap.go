package seo

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/theprojectseo/internal/content"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLEntry is one <url> element.
type URLEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []URLEntry `xml:"url"`
}

// DefaultPriority ranks a page by kind. The services index outranks
// individual services.
func DefaultPriority(page *content.Page) float64 {
	switch page.Kind {
	case content.KindHome:
		return 1.0
	case content.KindPricing, content.KindContact:
		return 0.9
	case content.KindService:
		if page.Route == "/services" {
			return 0.9
		}
		return 0.8
	case content.KindCompany, content.KindIndustry, content.KindLocation, content.KindCountrySEO:
		return 0.8
	case content.KindBlog, content.KindBlogPost:
		return 0.7
	case content.KindLegal:
		return 0.3
	default:
		return 0.5
	}
}

// DefaultChangeFreq is how often crawlers should expect a page of this kind to change.
func DefaultChangeFreq(kind content.Kind) string {
	switch kind {
	case content.KindHome, content.KindBlog:
		return "weekly"
	case content.KindLegal:
		return "yearly"
	default:
		return "monthly"
	}
}

// SitemapEntries lists every page that is not excluded. Posts report their
// publish date, everything else reports lastMod.
func SitemapEntries(site Site, pages []*content.Page, lastMod time.Time) []URLEntry {
	entries := make([]URLEntry, 0, len(pages))
	for _, page := range pages {
		if page.Sitemap.Exclude {
			continue
		}
		priority := page.Sitemap.Priority
		if priority == 0 {
			priority = DefaultPriority(page)
		}
		freq := page.Sitemap.ChangeFreq
		if freq == "" {
			freq = DefaultChangeFreq(page.Kind)
		}
		modified := lastMod
		if page.Post != nil {
			modified = page.Post.Published
		}

		entry := URLEntry{
			Loc:        site.URL(page.Route),
			ChangeFreq: freq,
			Priority:   strconv.FormatFloat(priority, 'f', 1, 64),
		}
		if !modified.IsZero() {
			entry.LastMod = modified.UTC().Format("2006-01-02")
		}
		entries = append(entries, entry)
	}
	return entries
}

// Sitemap renders the sitemap.xml document.
func Sitemap(site Site, pages []*content.Page, lastMod time.Time) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace, URLs: SitemapEntries(site, pages, lastMod)}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
