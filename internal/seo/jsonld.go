package seo

import (
	"encoding/json"
	"strings"

	"github.com/theprojectseo/internal/content"
)

const schemaContext = "https://schema.org"

// Document is one JSON-LD object.
type Document map[string]any

// Type returns the document's @type.
func (d Document) Type() string {
	t, _ := d["@type"].(string)
	return t
}

// MarshalIndent renders the document for a <script type="application/ld+json"> block.
func (d Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func newDocument(typ string) Document {
	return Document{"@context": schemaContext, "@type": typ}
}

func organizationRef(site Site) map[string]any {
	return map[string]any{"@type": "Organization", "name": site.Name, "url": site.URL("/")}
}

// Organization describes the agency itself.
func Organization(site Site) Document {
	doc := newDocument("Organization")
	doc["name"] = site.Name
	doc["url"] = site.URL("/")
	if site.Description != "" {
		doc["description"] = site.Description
	}
	if site.Logo != "" {
		doc["logo"] = site.URL(site.Logo)
	}
	if len(site.SameAs) > 0 {
		doc["sameAs"] = site.SameAs
	}
	return doc
}

// WebPage is the generic document for pages without a more specific type.
func WebPage(site Site, page *content.Page) Document {
	doc := newDocument("WebPage")
	doc["name"] = page.Heading
	doc["description"] = page.Description
	doc["url"] = site.URL(page.Route)
	doc["isPartOf"] = map[string]any{"@type": "WebSite", "name": site.Name, "url": site.URL("/")}
	return doc
}

// Service describes a service, industry, location or country page. The offer
// catalog lists the page's service cards.
func Service(site Site, page *content.Page) Document {
	doc := newDocument("Service")
	name := page.Schema.ServiceName
	if name == "" {
		name = page.Heading
	}
	area := page.Schema.AreaServed
	if area == "" {
		area = "Worldwide"
	}

	doc["name"] = name
	doc["description"] = page.Description
	doc["url"] = site.URL(page.Route)
	doc["provider"] = organizationRef(site)
	doc["areaServed"] = area
	if page.Schema.ServiceType != "" {
		doc["serviceType"] = page.Schema.ServiceType
	}
	if len(page.Schema.Keywords) > 0 {
		doc["keywords"] = strings.Join(page.Schema.Keywords, ", ")
	}
	if about := things(page.Schema.About); len(about) > 0 {
		doc["about"] = about
	}

	if items := page.ServiceItems(); len(items) > 0 {
		offers := make([]any, 0, len(items))
		for _, item := range items {
			offers = append(offers, map[string]any{
				"@type": "Offer",
				"itemOffered": map[string]any{
					"@type":       "Service",
					"name":        item.Title,
					"description": item.Description,
				},
			})
		}
		doc["hasOfferCatalog"] = map[string]any{
			"@type":           "OfferCatalog",
			"name":            name,
			"itemListElement": offers,
		}
	}
	return doc
}

// Article describes a blog post.
func Article(site Site, page *content.Page) Document {
	doc := newDocument("Article")
	doc["headline"] = page.Heading
	doc["description"] = page.Description
	doc["url"] = site.URL(page.Route)
	doc["mainEntityOfPage"] = map[string]any{"@type": "WebPage", "@id": site.URL(page.Route)}
	doc["publisher"] = organizationRef(site)
	doc["image"] = site.URL(OGImagePath(page.Route))

	if post := page.Post; post != nil {
		doc["datePublished"] = post.Published.Format("2006-01-02")
		if post.Author.Name != "" {
			author := map[string]any{"@type": "Person", "name": post.Author.Name}
			if post.Author.Role != "" {
				author["jobTitle"] = post.Author.Role
			}
			doc["author"] = author
		} else {
			doc["author"] = organizationRef(site)
		}
		if post.Category != "" {
			doc["articleSection"] = post.Category
		}
	}
	if len(page.Schema.Keywords) > 0 {
		doc["keywords"] = strings.Join(page.Schema.Keywords, ", ")
	}
	if about := things(page.Schema.About); len(about) > 0 {
		doc["about"] = about
	}
	return doc
}

// BreadcrumbList mirrors the visible breadcrumb trail.
func BreadcrumbList(site Site, crumbs []content.Crumb) Document {
	doc := newDocument("BreadcrumbList")
	items := make([]any, 0, len(crumbs))
	for i, crumb := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     crumb.Name,
			"item":     site.URL(crumb.Route),
		})
	}
	doc["itemListElement"] = items
	return doc
}

// CollectionPage describes the blog index and links every listed post.
func CollectionPage(site Site, page *content.Page, posts []*content.Page) Document {
	doc := newDocument("CollectionPage")
	doc["name"] = page.Heading
	doc["description"] = page.Description
	doc["url"] = site.URL(page.Route)
	parts := make([]any, 0, len(posts))
	for _, post := range posts {
		part := map[string]any{
			"@type":    "Article",
			"headline": post.Heading,
			"url":      site.URL(post.Route),
		}
		if post.Post != nil {
			part["datePublished"] = post.Post.Published.Format("2006-01-02")
		}
		parts = append(parts, part)
	}
	doc["hasPart"] = parts
	return doc
}

// FAQPage lists question/answer pairs in input order.
func FAQPage(items []content.FAQItem) Document {
	doc := newDocument("FAQPage")
	questions := make([]any, 0, len(items))
	for _, item := range items {
		questions = append(questions, map[string]any{
			"@type": "Question",
			"name":  item.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  item.Answer,
			},
		})
	}
	doc["mainEntity"] = questions
	return doc
}

func things(in []content.Thing) []any {
	out := make([]any, 0, len(in))
	for _, thing := range in {
		entry := map[string]any{"@type": "Thing", "name": thing.Name}
		if thing.SameAs != "" {
			entry["sameAs"] = thing.SameAs
		}
		out = append(out, entry)
	}
	return out
}

// ForPage selects the documents a page carries: the organization, one
// kind-specific document, the breadcrumb trail, and an FAQPage when the page
// has questions.
func ForPage(site Site, page *content.Page, crumbs []content.Crumb, posts []*content.Page) []Document {
	docs := []Document{Organization(site)}

	switch page.Kind {
	case content.KindHome:
		docs = append(docs, WebPage(site, page))
	case content.KindService, content.KindIndustry, content.KindLocation, content.KindCountrySEO:
		docs = append(docs, Service(site, page))
	case content.KindBlog:
		docs = append(docs, CollectionPage(site, page, posts))
	case content.KindBlogPost:
		docs = append(docs, Article(site, page))
	default:
		docs = append(docs, WebPage(site, page))
	}

	if len(crumbs) > 1 {
		docs = append(docs, BreadcrumbList(site, crumbs))
	}
	if faqs := page.FAQItems(); len(faqs) > 0 {
		docs = append(docs, FAQPage(faqs))
	}
	return docs
}
