package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
)

// FAQ renders one <details> per item, in input order. No JavaScript is
// needed to open or close an answer.
func FAQ(items []content.FAQItem) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Div(Class("faq"),
		g.Map(items, func(item content.FAQItem) g.Node {
			return Details(
				Summary(g.Text(item.Question)),
				Div(Class("answer"), P(g.Text(item.Answer))),
			)
		}),
	)
}
