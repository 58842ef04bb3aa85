// Package view renders the public site with gomponents: small presentational
// atoms, one composite component per section type, the two interactive
// widgets, and the shared layout.
package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
)

// Container centers its children at the site's content width.
func Container(children ...g.Node) g.Node {
	return Div(Class("container"), g.Group(children))
}

// SectionShell wraps a composite section with its optional subheading,
// heading and lead paragraph.
func SectionShell(class, subheading, heading, lead string, children ...g.Node) g.Node {
	classes := "section"
	if class != "" {
		classes += " " + class
	}
	return Section(Class(classes),
		Container(
			g.If(subheading != "", P(Class("subheading"), g.Text(subheading))),
			g.If(heading != "", H2(Class("heading"), g.Text(heading))),
			g.If(lead != "", P(Class("lead"), g.Text(lead))),
			g.Group(children),
		),
	)
}

// LinkButton renders a link styled as a button. Empty links render nothing.
func LinkButton(link content.Link, primary bool) g.Node {
	if link.IsZero() {
		return nil
	}
	class := "btn btn-secondary"
	if primary {
		class = "btn btn-primary"
	}
	return A(Class(class), Href(link.Href), g.Text(link.Label))
}

// Icon is a decorative glyph hook styled by CSS.
func Icon(name string) g.Node {
	if name == "" {
		return nil
	}
	return Span(Class("icon icon-"+name), g.Attr("aria-hidden", "true"))
}

// CheckList renders a bulleted feature list.
func CheckList(items []string) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Ul(Class("checklist"),
		g.Map(items, func(item string) g.Node {
			return Li(Icon("check"), g.Text(item))
		}),
	)
}
