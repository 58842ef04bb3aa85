package view

import (
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
)

// PageData is everything needed to render one catalog page.
type PageData struct {
	Layout  LayoutData
	Page    *content.Page
	Crumbs  []content.Crumb
	Posts   []*content.Page
	Related []*content.Page
	Now     time.Time
}

// Page assembles a catalog page: breadcrumbs, hero, the Markdown body for
// posts and legal pages, then the page's sections.
func Page(data PageData) g.Node {
	page := data.Page
	ctx := SectionContext{Page: page, Posts: data.Posts, Now: data.Now}

	return Layout(data.Layout,
		Breadcrumbs(data.Crumbs),
		Hero(page),
		g.Iff(page.Post != nil, func() g.Node { return postBody(page, data.Related) }),
		g.If(page.Post == nil && page.Body != "",
			Section(Class("section"), Container(Div(Class("prose"), g.Raw(string(page.Body))))),
		),
		Sections(page.Sections, ctx),
	)
}

func postBody(page *content.Page, related []*content.Page) g.Node {
	post := page.Post
	return Article(Class("section post"),
		Container(
			PostByline(post),
			g.If(post.Lead != "", P(Class("lead"), g.Text(post.Lead))),
			Div(Class("prose"), g.Raw(string(page.Body))),
			g.If(len(post.FAQ) > 0, Section(Class("faq-section"),
				H2(Class("heading"), g.Text("Frequently Asked Questions")),
				FAQ(post.FAQ),
			)),
			g.If(len(related) > 0, Section(Class("related"),
				H2(Class("heading"), g.Text("Related Articles")),
				PostList(related),
			)),
		),
	)
}

// NotFound is the 404 page.
func NotFound(layout LayoutData) g.Node {
	return ErrorPage(layout, "Page not found", "The page you are looking for does not exist or has moved.")
}

// ErrorPage renders a message inside the shared layout.
func ErrorPage(layout LayoutData, heading, message string) g.Node {
	return Layout(layout,
		Section(Class("hero hero-plain"),
			Container(
				H1(Class("heading"), g.Text(heading)),
				P(Class("lead"), g.Text(message)),
				Div(Class("actions"),
					A(Class("btn btn-primary"), Href("/"), g.Text("Back to home")),
					A(Class("btn btn-secondary"), Href("/contact"), g.Text("Contact us")),
				),
			),
		),
	)
}
