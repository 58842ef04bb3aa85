package content

import (
	"html/template"
	"time"
)

// Kind classifies a page for breadcrumbs, structured data and sitemap ranking.
type Kind string

const (
	KindHome       Kind = "home"
	KindService    Kind = "service"
	KindIndustry   Kind = "industry"
	KindLocation   Kind = "location"
	KindCountrySEO Kind = "country-seo"
	KindBlog       Kind = "blog"
	KindBlogPost   Kind = "blog-post"
	KindPricing    Kind = "pricing"
	KindContact    Kind = "contact"
	KindCompany    Kind = "company"
	KindLegal      Kind = "legal"
	KindOther      Kind = "other"
)

var knownKinds = map[Kind]struct{}{
	KindHome: {}, KindService: {}, KindIndustry: {}, KindLocation: {},
	KindCountrySEO: {}, KindBlog: {}, KindBlogPost: {}, KindPricing: {},
	KindContact: {}, KindCompany: {}, KindLegal: {}, KindOther: {},
}

// Link is a labelled hyperlink used by heroes and CTAs.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// IsZero reports whether the link has nothing to render.
func (l Link) IsZero() bool {
	return l.Label == "" || l.Href == ""
}

// Hero is the introductory banner at the top of a page.
type Hero struct {
	Eyebrow     string `yaml:"eyebrow"`
	Title       string `yaml:"title"`
	Accent      string `yaml:"accent"`
	TitleAfter  string `yaml:"title_after"`
	Description string `yaml:"description"`
	Primary     Link   `yaml:"primary"`
	Secondary   Link   `yaml:"secondary"`
}

// SchemaHints carries optional structured-data values a page can override.
type SchemaHints struct {
	ServiceName string   `yaml:"service_name"`
	ServiceType string   `yaml:"service_type"`
	AreaServed  string   `yaml:"area_served"`
	Keywords    []string `yaml:"keywords"`
	About       []Thing  `yaml:"about"`
}

// Thing names an entity a page is about, optionally linked to Wikidata.
type Thing struct {
	Name   string `yaml:"name"`
	SameAs string `yaml:"same_as"`
}

// SitemapHints overrides the kind-based sitemap defaults for one page.
type SitemapHints struct {
	Priority   float64 `yaml:"priority"`
	ChangeFreq string  `yaml:"changefreq"`
	Exclude    bool    `yaml:"exclude"`
}

// Author identifies who wrote a blog post.
type Author struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Post holds the blog-specific fields of a blog-post page.
type Post struct {
	Slug      string
	Title     string
	Category  string
	ReadTime  string
	Lead      string
	Author    Author
	Published time.Time
	Related   []string
	FAQ       []FAQItem
}

// Page is one routable page of the site, fully resolved and immutable after load.
type Page struct {
	Route       string
	Kind        Kind
	Title       string
	Description string
	Heading     string
	NavLabel    string
	Order       int
	Hero        *Hero
	Sections    []Section
	Schema      SchemaHints
	Sitemap     SitemapHints
	Body        template.HTML
	Post        *Post
	Source      string
}

// Label returns the short name used in menus and breadcrumbs.
func (p *Page) Label() string {
	if p.NavLabel != "" {
		return p.NavLabel
	}
	return p.Heading
}

// FAQItems collects every question/answer pair on the page in render order.
func (p *Page) FAQItems() []FAQItem {
	var items []FAQItem
	for _, section := range p.Sections {
		if block, ok := section.Block.(*FAQBlock); ok {
			items = append(items, block.Items...)
		}
	}
	if p.Post != nil {
		items = append(items, p.Post.FAQ...)
	}
	return items
}

// ServiceItems collects the feature-grid cards declared on the page.
func (p *Page) ServiceItems() []ServiceItem {
	var items []ServiceItem
	for _, section := range p.Sections {
		if block, ok := section.Block.(*ServicesBlock); ok {
			items = append(items, block.Items...)
		}
	}
	return items
}

// Crumb is one breadcrumb step.
type Crumb struct {
	Name  string
	Route string
}

// NavGroup is one dropdown of the site navigation.
type NavGroup struct {
	Label string
	Links []Link
}
