package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/theprojectseo/internal/db"
)

const (
	notSpecified        = "Not specified"
	resendEndpoint      = "https://api.resend.com/emails"
	notificationTimeout = 10 * time.Second
)

// Notifier delivers a freshly stored lead to an outside channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, lead db.Lead) error
}

// NotifierConfig selects which notifiers are active. Empty values disable a channel.
type NotifierConfig struct {
	SlackWebhookURL string
	ResendAPIKey    string
	ResendEndpoint  string
	From            string
	To              string
}

// NewNotifiers builds the notifiers enabled by cfg, sharing one HTTP client.
func NewNotifiers(cfg NotifierConfig, client *resty.Client) []Notifier {
	if client == nil {
		client = resty.New().SetTimeout(notificationTimeout)
	}

	var out []Notifier
	if webhook := strings.TrimSpace(cfg.SlackWebhookURL); webhook != "" {
		out = append(out, NewSlackNotifier(client, webhook))
	}
	if key := strings.TrimSpace(cfg.ResendAPIKey); key != "" && strings.TrimSpace(cfg.To) != "" {
		out = append(out, NewResendNotifier(client, key, cfg.From, cfg.To).WithEndpoint(cfg.ResendEndpoint))
	}
	return out
}

// SlackNotifier posts a Block Kit message to an incoming webhook.
type SlackNotifier struct {
	client     *resty.Client
	webhookURL string
}

func NewSlackNotifier(client *resty.Client, webhookURL string) *SlackNotifier {
	return &SlackNotifier{client: client, webhookURL: webhookURL}
}

func (n *SlackNotifier) Name() string { return "slack" }

func (n *SlackNotifier) Notify(ctx context.Context, lead db.Lead) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(SlackPayload(lead)).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("slack webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("slack webhook: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

// SlackMessage is the webhook body.
type SlackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

func mrkdwn(label, value string) slackText {
	return slackText{Type: "mrkdwn", Text: fmt.Sprintf("*%s:*\n%s", label, value)}
}

// SlackPayload renders the lead as header, contact fields, interest fields,
// then the message and UTM context when present.
func SlackPayload(lead db.Lead) SlackMessage {
	blocks := []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: "New Lead from TheProjectSEO"}},
		{Type: "section", Fields: []slackText{
			mrkdwn("Name", lead.FullName()),
			mrkdwn("Email", lead.Email),
			mrkdwn("Company", orDash(lead.Company)),
			mrkdwn("Phone", orDash(lead.Phone)),
			mrkdwn("Website", orDash(lead.WebsiteURL)),
			mrkdwn("Budget", orDefault(lead.MonthlyBudget, notSpecified)),
		}},
		{Type: "section", Fields: []slackText{
			mrkdwn("Service Interest", orDefault(lead.ServiceInterest, notSpecified)),
			mrkdwn("Source Page", orDefault(lead.SourcePage, "Unknown")),
		}},
	}
	if lead.Message != "" {
		text := mrkdwn("Message", lead.Message)
		blocks = append(blocks, slackBlock{Type: "section", Text: &text})
	}
	if lead.UTMSource != "" {
		blocks = append(blocks, slackBlock{Type: "context", Elements: []slackText{{
			Type: "mrkdwn",
			Text: fmt.Sprintf("UTM: source=%s | medium=%s | campaign=%s | term=%s",
				orDash(lead.UTMSource), orDash(lead.UTMMedium), orDash(lead.UTMCampaign), orDash(lead.UTMTerm)),
		}}})
	}
	return SlackMessage{Blocks: blocks}
}

// ResendNotifier sends an HTML summary through the Resend email API.
type ResendNotifier struct {
	client   *resty.Client
	apiKey   string
	from     string
	to       string
	endpoint string
}

func NewResendNotifier(client *resty.Client, apiKey, from, to string) *ResendNotifier {
	if strings.TrimSpace(from) == "" {
		from = "TheProjectSEO Leads <leads@theprojectseo.com>"
	}
	return &ResendNotifier{client: client, apiKey: apiKey, from: from, to: to, endpoint: resendEndpoint}
}

// WithEndpoint overrides the API URL; empty keeps the default.
func (n *ResendNotifier) WithEndpoint(endpoint string) *ResendNotifier {
	if strings.TrimSpace(endpoint) != "" {
		n.endpoint = endpoint
	}
	return n
}

func (n *ResendNotifier) Name() string { return "resend" }

// ResendEmail is the Resend API request body.
type ResendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *ResendNotifier) Notify(ctx context.Context, lead db.Lead) error {
	var failure map[string]any
	resp, err := n.client.R().
		SetContext(ctx).
		SetAuthToken(n.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(ResendEmail{
			From:    n.from,
			To:      []string{n.to},
			Subject: LeadEmailSubject(lead),
			HTML:    LeadEmailHTML(lead),
		}).
		SetError(&failure).
		Post(n.endpoint)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend: status %d: %v", resp.StatusCode(), failure["message"])
	}
	return nil
}

// LeadEmailSubject names the lead and the page it came from.
func LeadEmailSubject(lead db.Lead) string {
	return fmt.Sprintf("New Lead: %s - %s", lead.FullName(), lead.SourcePage)
}

// LeadEmailHTML renders the lead as an escaped HTML table.
func LeadEmailHTML(lead db.Lead) string {
	const (
		labelStyle = "padding:8px;border-bottom:1px solid #eee;font-weight:bold;"
		valueStyle = "padding:8px;border-bottom:1px solid #eee;"
	)
	var b strings.Builder
	row := func(label, value string, raw bool) {
		if !raw {
			value = html.EscapeString(value)
		}
		fmt.Fprintf(&b, `<tr><td style="%s">%s</td><td style="%s">%s</td></tr>`, labelStyle, label, valueStyle, value)
	}

	email := html.EscapeString(lead.Email)
	b.WriteString(`<h2>New Lead from TheProjectSEO</h2>`)
	b.WriteString(`<table style="border-collapse:collapse;width:100%;max-width:600px;">`)
	row("Name", lead.FullName(), false)
	row("Email", fmt.Sprintf(`<a href="mailto:%s">%s</a>`, email, email), true)
	row("Company", orDash(lead.Company), false)
	row("Phone", orDash(lead.Phone), false)
	row("Website", orDash(lead.WebsiteURL), false)
	row("Budget", orDefault(lead.MonthlyBudget, notSpecified), false)
	row("Service", orDefault(lead.ServiceInterest, notSpecified), false)
	row("Source Page", lead.SourcePage, false)
	if lead.UTMSource != "" {
		row("UTM Source", lead.UTMSource, false)
	}
	if lead.UTMCampaign != "" {
		row("UTM Campaign", lead.UTMCampaign, false)
	}
	if lead.Message != "" {
		row("Message", lead.Message, false)
	}
	b.WriteString(`</table>`)
	fmt.Fprintf(&b, `<p style="margin-top:16px;color:#666;font-size:12px;">This lead was submitted from <strong>%s</strong> on theprojectseo.com</p>`,
		html.EscapeString(lead.SourcePage))
	return b.String()
}

func orDash(v string) string {
	return orDefault(v, "-")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
