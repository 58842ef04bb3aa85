package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
)

// Hero renders the page banner. Pages without hero data get a plain H1 so
// every page still carries its declared heading.
func Hero(page *content.Page) g.Node {
	hero := page.Hero
	if hero == nil {
		return Section(Class("hero hero-plain"),
			Container(
				H1(Class("heading"), g.Text(page.Heading)),
				g.If(page.Post == nil && page.Description != "", P(Class("lead"), g.Text(page.Description))),
			),
		)
	}

	description := hero.Description
	if description == "" {
		description = page.Description
	}
	return Section(Class("hero"),
		Container(
			g.If(hero.Eyebrow != "", P(Class("subheading"), g.Text(hero.Eyebrow))),
			H1(Class("heading"), g.Text(page.Heading)),
			heroTitle(hero),
			P(Class("lead"), g.Text(description)),
			g.If(!hero.Primary.IsZero() || !hero.Secondary.IsZero(),
				Div(Class("actions"),
					LinkButton(hero.Primary, true),
					LinkButton(hero.Secondary, false),
				),
			),
		),
	)
}

// heroTitle is the large display line under the H1, with the accent span
// highlighted.
func heroTitle(hero *content.Hero) g.Node {
	if hero.Title == "" {
		return nil
	}
	return P(Class("display"),
		g.Text(hero.Title),
		g.If(hero.Accent != "", g.Group{g.Text(" "), Span(Class("accent"), g.Text(hero.Accent))}),
		g.If(hero.TitleAfter != "", g.Text(" "+hero.TitleAfter)),
	)
}

// Breadcrumbs renders the visible trail; the last crumb is the current page.
func Breadcrumbs(crumbs []content.Crumb) g.Node {
	if len(crumbs) < 2 {
		return nil
	}
	items := make([]g.Node, 0, len(crumbs))
	for i, crumb := range crumbs {
		if i == len(crumbs)-1 {
			items = append(items, Li(g.Attr("aria-current", "page"), g.Text(crumb.Name)))
			continue
		}
		items = append(items, Li(A(Href(crumb.Route), g.Text(crumb.Name))))
	}
	return Nav(Class("breadcrumbs"), g.Attr("aria-label", "Breadcrumb"),
		Container(Ol(g.Group(items))),
	)
}
