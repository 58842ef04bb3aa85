package view

import (
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/widget"
)

// SectionContext is what a section may need beyond its own payload.
type SectionContext struct {
	Page  *content.Page
	Posts []*content.Page
	Now   time.Time
}

// Sections renders every section of a page in order.
func Sections(sections []content.Section, ctx SectionContext) g.Node {
	nodes := make([]g.Node, 0, len(sections))
	for _, section := range sections {
		nodes = append(nodes, RenderSection(section, ctx))
	}
	return g.Group(nodes)
}

// RenderSection dispatches on the section payload.
func RenderSection(section content.Section, ctx SectionContext) g.Node {
	switch block := section.Block.(type) {
	case *content.StatsBlock:
		return StatsBar(section, block)
	case *content.ServicesBlock:
		return ServicesGrid(section, block)
	case *content.FeatureCardsBlock:
		return FeatureCards(section, block)
	case *content.ProcessBlock:
		return ProcessSection(section, block)
	case *content.CaseStudyBlock:
		return CaseStudy(section, block)
	case *content.PricingBlock:
		return Pricing(section, block)
	case *content.TestimonialsBlock:
		return Testimonials(section, block)
	case *content.FAQBlock:
		return SectionShell("faq-section", section.Subheading, section.Heading, section.Lead, FAQ(block.Items))
	case *content.TextBlock:
		return TextSection(section, block)
	case *content.RelatedBlock:
		return RelatedLinks(section, block)
	case *content.CTABlock:
		return CTA(section, block)
	case *content.LeadFormBlock:
		source := "/"
		if ctx.Page != nil {
			source = ctx.Page.Route
		}
		return SectionShell("lead-form-section", section.Subheading, section.Heading, section.Lead,
			LeadFormPanel(block, LeadFormState{SourcePage: source}))
	case *content.WorkflowBlock:
		stepper := widget.NewStepper(len(widget.WorkflowNodes), widget.DefaultRevertDelay)
		return SectionShell("workflow-section", section.Subheading, section.Heading, section.Lead,
			Workflow(stepper, ctx.Now))
	case *content.MarkdownBlock:
		return SectionShell("markdown-section", section.Subheading, section.Heading, section.Lead,
			Div(Class("prose"), g.Raw(string(block.HTML))))
	case *content.PostsBlock:
		posts := ctx.Posts
		if block.Limit > 0 && block.Limit < len(posts) {
			posts = posts[:block.Limit]
		}
		return SectionShell("posts-section", section.Subheading, section.Heading, section.Lead, PostList(posts))
	default:
		return nil
	}
}

func StatsBar(section content.Section, block *content.StatsBlock) g.Node {
	return SectionShell("stats", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid grid-stats"),
			g.Map(block.Stats, func(stat content.Stat) g.Node {
				return Div(Class("stat"),
					P(Class("stat-value"), g.Text(stat.Value)),
					P(Class("stat-label"), g.Text(stat.Label)),
				)
			}),
		),
	)
}

func ServicesGrid(section content.Section, block *content.ServicesBlock) g.Node {
	return SectionShell("services", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid"),
			g.Map(block.Items, func(item content.ServiceItem) g.Node {
				return Article(Class("card"),
					Icon(item.Icon),
					H3(g.Text(item.Title)),
					P(g.Text(item.Description)),
					CheckList(item.Features),
				)
			}),
		),
	)
}

func FeatureCards(section content.Section, block *content.FeatureCardsBlock) g.Node {
	return SectionShell("feature-cards", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid"),
			g.Map(block.Cards, func(card content.FeatureCard) g.Node {
				return Article(Class("card"),
					H3(g.Text(card.Title)),
					CheckList(card.Items),
				)
			}),
		),
	)
}

func ProcessSection(section content.Section, block *content.ProcessBlock) g.Node {
	return SectionShell("process", section.Subheading, section.Heading, section.Lead,
		Ol(Class("grid process-steps"),
			g.Map(block.Steps, func(step content.ProcessStep) g.Node {
				return Li(Class("card"),
					g.If(step.Number != "", Span(Class("step-number"), g.Text(step.Number))),
					H3(g.Text(step.Title)),
					P(g.Text(step.Description)),
				)
			}),
		),
		g.If(block.Visual != "", ProcessVisual(block.Visual)),
	)
}

func CaseStudy(section content.Section, block *content.CaseStudyBlock) g.Node {
	return SectionShell("case-study", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid"),
			Div(Class("card"), H3(g.Text("The challenge")), P(g.Text(block.Challenge))),
			Div(Class("card"), H3(g.Text("Our solution")), P(g.Text(block.Solution))),
		),
		g.If(len(block.Results) > 0,
			Table(Class("results"),
				THead(Tr(Th(g.Text("Metric")), Th(g.Text("Improvement")), Th(g.Text("Timeframe")))),
				TBody(g.Map(block.Results, func(r content.CaseStudyResult) g.Node {
					return Tr(Td(g.Text(r.Metric)), Td(Class("stat-value"), g.Text(r.Improvement)), Td(g.Text(r.Timeframe)))
				})),
			),
		),
	)
}

func Pricing(section content.Section, block *content.PricingBlock) g.Node {
	return SectionShell("pricing", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid"),
			g.Map(block.Tiers, func(tier content.PricingTier) g.Node {
				cardClass := "card"
				if tier.Featured {
					cardClass = "card featured"
				}
				return Article(Class(cardClass),
					g.If(tier.Featured, Span(Class("badge"), g.Text("Most popular"))),
					H3(g.Text(tier.Name)),
					P(Class("price"),
						g.Text(tier.Price),
						g.If(tier.Period != "", Span(Class("period"), g.Text(" / "+tier.Period))),
					),
					g.If(tier.Description != "", P(g.Text(tier.Description))),
					CheckList(tier.Features),
					LinkButton(tier.CTA, tier.Featured),
				)
			}),
		),
	)
}

func Testimonials(section content.Section, block *content.TestimonialsBlock) g.Node {
	if len(block.Items) == 0 {
		return nil
	}
	return SectionShell("testimonials", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid"),
			g.Map(block.Items, func(t content.Testimonial) g.Node {
				return Figure(Class("card testimonial"),
					BlockQuote(P(g.Text(t.Quote))),
					g.El("figcaption",
						Strong(g.Text(t.Author)),
						g.If(t.Role != "" || t.Company != "", Span(g.Text(" "+attribution(t)))),
					),
				)
			}),
		),
	)
}

func attribution(t content.Testimonial) string {
	switch {
	case t.Role != "" && t.Company != "":
		return t.Role + ", " + t.Company
	case t.Role != "":
		return t.Role
	default:
		return t.Company
	}
}

func TextSection(section content.Section, block *content.TextBlock) g.Node {
	return SectionShell("text", section.Subheading, section.Heading, section.Lead,
		Div(Class("prose"),
			g.Map(block.Paragraphs, func(p string) g.Node { return P(g.Text(p)) }),
		),
	)
}

func RelatedLinks(section content.Section, block *content.RelatedBlock) g.Node {
	if len(block.Items) == 0 {
		return nil
	}
	return SectionShell("related", section.Subheading, section.Heading, section.Lead,
		Div(Class("grid"),
			g.Map(block.Items, func(item content.RelatedLink) g.Node {
				return A(Class("card"), Href(item.Href),
					H3(g.Text(item.Title)),
					g.If(item.Description != "", P(g.Text(item.Description))),
				)
			}),
		),
	)
}

func CTA(section content.Section, block *content.CTABlock) g.Node {
	class := "cta"
	if block.Accent {
		class = "cta cta-accent"
	}
	return SectionShell(class, section.Subheading, section.Heading, section.Lead,
		Div(Class("actions"),
			LinkButton(block.Primary, true),
			LinkButton(block.Secondary, false),
		),
		g.If(block.Note != "", P(Class("note"), g.Text(block.Note))),
	)
}

// PostList renders post teasers, newest first as given.
func PostList(posts []*content.Page) g.Node {
	if len(posts) == 0 {
		return P(g.Text("No posts yet."))
	}
	return Div(Class("grid posts"),
		g.Map(posts, func(post *content.Page) g.Node {
			return Article(Class("card"),
				g.Iff(post.Post != nil && post.Post.Category != "", func() g.Node {
					return Span(Class("badge"), g.Text(post.Post.Category))
				}),
				H3(A(Href(post.Route), g.Text(post.Heading))),
				P(g.Text(post.Description)),
				g.Iff(post.Post != nil, func() g.Node { return PostByline(post.Post) }),
			)
		}),
	)
}

// PostByline shows author, date and read time.
func PostByline(post *content.Post) g.Node {
	return P(Class("byline"),
		g.If(post.Author.Name != "", g.Text(post.Author.Name+" · ")),
		g.El("time", g.Attr("datetime", post.Published.Format("2006-01-02")), g.Text(post.Published.Format("January 2, 2006"))),
		g.If(post.ReadTime != "", g.Text(" · "+post.ReadTime)),
	)
}
