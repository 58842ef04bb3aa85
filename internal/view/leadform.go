package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/service"
)

// LeadFormPath receives lead submissions.
const LeadFormPath = "/api/leads"

// Lead form variants.
const (
	LeadFormCompact = "compact"
	LeadFormFull    = "full"
)

// ServiceInterests are the options of the service select.
var ServiceInterests = []string{"AEO", "SEO", "Content Marketing", "Web Development", "n8n Automation", "Not sure yet"}

// MonthlyBudgets are the options of the budget select.
var MonthlyBudgets = []string{"Under $2,500", "$2,500 - $5,000", "$5,000 - $10,000", "$10,000+"}

// LeadFormState is everything the form needs to re-render itself after a
// submission attempt.
type LeadFormState struct {
	SourcePage string
	Variant    string
	SubmitText string
	Values     service.LeadInput
	Error      string
	Success    bool
}

// LeadFormPanel renders the benefits column next to the form.
func LeadFormPanel(block *content.LeadFormBlock, state LeadFormState) g.Node {
	state.Variant = block.Variant
	state.SubmitText = block.SubmitText
	return Div(Class("grid lead-panel"),
		g.If(len(block.Benefits) > 0, Div(Class("benefits"), CheckList(block.Benefits))),
		LeadForm(state),
	)
}

// LeadForm renders the HTMX form. The server answers a post with this same
// fragment, carrying the error message or the thank-you note.
func LeadForm(state LeadFormState) g.Node {
	if state.Success {
		return Div(ID("lead-form"), Class("lead-form form-success"), g.Attr("role", "status"),
			H3(g.Text("Thanks! We'll be in touch within one business day.")),
			P(g.Text("A strategist will review your site before the call.")),
		)
	}

	variant := state.Variant
	if variant == "" {
		variant = LeadFormFull
	}
	submit := state.SubmitText
	if submit == "" {
		submit = "Get my free proposal"
	}
	v := state.Values

	return g.El("form", ID("lead-form"), Class("lead-form"),
		g.Attr("method", "post"),
		g.Attr("action", LeadFormPath),
		g.Attr("hx-post", LeadFormPath),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		g.If(state.Error != "", P(Class("form-error"), g.Attr("role", "alert"), g.Text(state.Error))),
		Div(Class("grid form-row"),
			textField("firstName", "First name", "text", v.FirstName, true),
			textField("lastName", "Last name", "text", v.LastName, true),
		),
		textField("email", "Work email", "email", v.Email, true),
		g.If(variant == LeadFormFull, g.Group{
			Div(Class("grid form-row"),
				textField("company", "Company", "text", v.Company, false),
				textField("phone", "Phone", "tel", v.Phone, false),
			),
			textField("websiteUrl", "Website", "url", v.WebsiteURL, false),
			Div(Class("grid form-row"),
				selectField("serviceInterest", "Service interest", ServiceInterests, v.ServiceInterest),
				selectField("monthlyBudget", "Monthly budget", MonthlyBudgets, v.MonthlyBudget),
			),
		}),
		g.El("label", g.Text("How can we help?"),
			Textarea(Name("message"), g.Attr("rows", "4"), g.Text(v.Message)),
		),
		Input(Type("hidden"), Name("sourcePage"), Value(state.SourcePage)),
		Input(Type("hidden"), Name("formVariant"), Value(variant)),
		Input(Type("hidden"), Name("sourceUrl"), Value(v.SourceURL), g.Attr("data-attribution", "url")),
		Input(Type("hidden"), Name("referrer"), Value(v.Referrer), g.Attr("data-attribution", "referrer")),
		Input(Type("hidden"), Name("utmSource"), Value(v.UTMSource), g.Attr("data-attribution", "utm_source")),
		Input(Type("hidden"), Name("utmMedium"), Value(v.UTMMedium), g.Attr("data-attribution", "utm_medium")),
		Input(Type("hidden"), Name("utmCampaign"), Value(v.UTMCampaign), g.Attr("data-attribution", "utm_campaign")),
		Input(Type("hidden"), Name("utmTerm"), Value(v.UTMTerm), g.Attr("data-attribution", "utm_term")),
		Input(Type("hidden"), Name("utmContent"), Value(v.UTMContent), g.Attr("data-attribution", "utm_content")),
		Button(Type("submit"), Class("btn btn-primary"), g.Text(submit)),
	)
}

func textField(name, label, inputType, value string, required bool) g.Node {
	return g.El("label",
		g.Text(label),
		Input(Type(inputType), Name(name), Value(value), g.If(required, g.Attr("required"))),
	)
}

func selectField(name, label string, options []string, selected string) g.Node {
	return g.El("label",
		g.Text(label),
		Select(Name(name),
			Option(Value(""), g.Text("Select…")),
			g.Map(options, func(opt string) g.Node {
				return Option(Value(opt), g.If(opt == selected, g.Attr("selected")), g.Text(opt))
			}),
		),
	)
}
