package view

import (
	"io"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/internal/service"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig lets 400 responses swap so the lead form can show its error.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"400","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

// LayoutData is the chrome shared by every public page.
type LayoutData struct {
	Site   seo.Site
	Meta   seo.Meta
	JSONLD []seo.Document
	Nav    []content.NavGroup
	Now    time.Time
}

// Render writes node as HTML.
func Render(w io.Writer, node g.Node) error {
	if node == nil {
		return nil
	}
	return node.Render(w)
}

// Layout wraps body in the document head, site header and footer.
func Layout(data LayoutData, body ...g.Node) g.Node {
	return Doctype(
		HTML(Lang("en"),
			Head(headNodes(data)...),
			Body(
				SiteHeader(data.Site, data.Nav),
				Main(ID("main"), g.Group(body)),
				SiteFooter(data.Site, data.Nav, data.Now),
				Script(Src("/static/js/beacon.js"), g.Attr("defer")),
			),
		),
	)
}

func headNodes(data LayoutData) []g.Node {
	meta := data.Meta
	nodes := []g.Node{
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		Meta(Name("htmx-config"), Content(htmxConfig)),
		g.El("title", g.Text(meta.Title)),
		Meta(Name("description"), Content(meta.Description)),
		g.If(meta.Robots != "", Meta(Name("robots"), Content(meta.Robots))),
		g.If(meta.Canonical != "", Link(Rel("canonical"), Href(meta.Canonical))),
		property("og:type", meta.OGType),
		property("og:title", meta.OGTitle),
		property("og:description", meta.Description),
		property("og:url", meta.Canonical),
		property("og:site_name", meta.SiteName),
		property("og:image", meta.OGImage),
		g.If(meta.OGImage != "", g.Group{
			property("og:image:width", strconv.Itoa(service.OGWidth)),
			property("og:image:height", strconv.Itoa(service.OGHeight)),
		}),
		namedMeta("twitter:card", meta.TwitterCard),
		namedMeta("twitter:title", meta.OGTitle),
		namedMeta("twitter:description", meta.Description),
		namedMeta("twitter:image", meta.OGImage),
	}
	if !meta.PublishedTime.IsZero() {
		nodes = append(nodes, property("article:published_time", meta.PublishedTime.Format(time.RFC3339)))
	}
	if meta.Author != "" {
		nodes = append(nodes, property("article:author", meta.Author))
	}
	nodes = append(nodes,
		Link(Rel("stylesheet"), Href("/static/css/site.css")),
		JSONLD(data.JSONLD),
		Script(Src(htmxScript), g.Attr("defer")),
	)
	return nodes
}

func property(name, value string) g.Node {
	if value == "" {
		return nil
	}
	return Meta(g.Attr("property", name), Content(value))
}

func namedMeta(name, value string) g.Node {
	if value == "" {
		return nil
	}
	return Meta(Name(name), Content(value))
}

// JSONLD renders one ld+json script per document. Documents that fail to
// marshal are skipped; handlers validate them beforehand.
func JSONLD(docs []seo.Document) g.Node {
	nodes := make([]g.Node, 0, len(docs))
	for _, doc := range docs {
		raw, err := doc.MarshalIndent()
		if err != nil {
			continue
		}
		nodes = append(nodes, Script(Type("application/ld+json"), g.Raw(string(raw))))
	}
	return g.Group(nodes)
}

// SiteHeader is the brand, dropdown navigation and the primary CTA.
func SiteHeader(site seo.Site, nav []content.NavGroup) g.Node {
	return Header(Class("site-header"),
		Container(
			A(Class("brand"), Href("/"), g.Text(site.Name)),
			Nav(Class("nav"), g.Attr("aria-label", "Main"),
				Ul(g.Map(nav, func(group content.NavGroup) g.Node {
					return Li(Class("nav-group"),
						Span(Class("nav-label"), g.Attr("tabindex", "0"), g.Text(group.Label)),
						Ul(Class("nav-menu"), g.Map(group.Links, func(link content.Link) g.Node {
							return Li(A(Href(link.Href), g.Text(link.Label)))
						})),
					)
				})),
			),
			A(Class("btn btn-primary"), Href("/contact"), g.Text("Get a proposal")),
		),
	)
}

// SiteFooter repeats the navigation and links the legal pages.
func SiteFooter(site seo.Site, nav []content.NavGroup, now time.Time) g.Node {
	if now.IsZero() {
		now = time.Now()
	}
	return Footer(Class("site-footer"),
		Container(
			Div(Class("grid"),
				Div(
					A(Class("brand"), Href("/"), g.Text(site.Name)),
					g.If(site.Description != "", P(g.Text(site.Description))),
				),
				g.Map(nav, func(group content.NavGroup) g.Node {
					return Div(
						H4(g.Text(group.Label)),
						Ul(g.Map(group.Links, func(link content.Link) g.Node {
							return Li(A(Href(link.Href), g.Text(link.Label)))
						})),
					)
				}),
			),
			P(Class("legal"),
				g.Textf("© %d %s. ", now.Year(), site.Name),
				A(Href("/privacy"), g.Text("Privacy")),
				g.Text(" · "),
				A(Href("/terms"), g.Text("Terms")),
				g.Text(" · "),
				A(Href("/sitemap.xml"), g.Text("Sitemap")),
			),
		),
	)
}
