package content

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/theprojectseo/internal/widget"
	"gopkg.in/yaml.v3"
)

// SectionType names a composite section component.
type SectionType string

const (
	SectionStats        SectionType = "stats"
	SectionServices     SectionType = "services"
	SectionFeatureCards SectionType = "feature_cards"
	SectionProcess      SectionType = "process"
	SectionCaseStudy    SectionType = "case_study"
	SectionPricing      SectionType = "pricing"
	SectionTestimonials SectionType = "testimonials"
	SectionFAQ          SectionType = "faq"
	SectionText         SectionType = "text"
	SectionRelated      SectionType = "related"
	SectionCTA          SectionType = "cta"
	SectionLeadForm     SectionType = "lead_form"
	SectionWorkflow     SectionType = "workflow"
	SectionMarkdown     SectionType = "markdown"
	SectionPosts        SectionType = "posts"
)

// Block is the type-specific payload of a section.
type Block interface {
	validate() error
}

// Section is one composite block of a page. Subheading/Heading/Lead are shared
// by every section type; Block carries the rest.
type Section struct {
	Type       SectionType
	Subheading string
	Heading    string
	Lead       string
	Block      Block
}

type sectionHeader struct {
	Type       SectionType `yaml:"type"`
	Subheading string      `yaml:"subheading"`
	Heading    string      `yaml:"heading"`
	Lead       string      `yaml:"lead"`
}

// UnmarshalYAML decodes the shared header, then the payload for the declared type.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var header sectionHeader
	if err := node.Decode(&header); err != nil {
		return err
	}

	block, err := newBlock(header.Type)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if err := node.Decode(block); err != nil {
		return fmt.Errorf("line %d: decode %s section: %w", node.Line, header.Type, err)
	}

	s.Type = header.Type
	s.Subheading = header.Subheading
	s.Heading = header.Heading
	s.Lead = header.Lead
	s.Block = block
	return nil
}

func newBlock(t SectionType) (Block, error) {
	switch t {
	case SectionStats:
		return &StatsBlock{}, nil
	case SectionServices:
		return &ServicesBlock{}, nil
	case SectionFeatureCards:
		return &FeatureCardsBlock{}, nil
	case SectionProcess:
		return &ProcessBlock{}, nil
	case SectionCaseStudy:
		return &CaseStudyBlock{}, nil
	case SectionPricing:
		return &PricingBlock{}, nil
	case SectionTestimonials:
		return &TestimonialsBlock{}, nil
	case SectionFAQ:
		return &FAQBlock{}, nil
	case SectionText:
		return &TextBlock{}, nil
	case SectionRelated:
		return &RelatedBlock{}, nil
	case SectionCTA:
		return &CTABlock{}, nil
	case SectionLeadForm:
		return &LeadFormBlock{}, nil
	case SectionWorkflow:
		return &WorkflowBlock{}, nil
	case SectionMarkdown:
		return &MarkdownBlock{}, nil
	case SectionPosts:
		return &PostsBlock{}, nil
	case "":
		return nil, errors.New("section type is required")
	default:
		return nil, fmt.Errorf("unknown section type %q", t)
	}
}

// Stat is one figure of a stats bar.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type StatsBlock struct {
	Stats []Stat `yaml:"stats"`
}

func (b *StatsBlock) validate() error {
	if len(b.Stats) == 0 {
		return errors.New("stats section needs at least one stat")
	}
	for i, stat := range b.Stats {
		if stat.Value == "" || stat.Label == "" {
			return fmt.Errorf("stat %d needs value and label", i)
		}
	}
	return nil
}

// ServiceItem is a card of a services grid.
type ServiceItem struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Features    []string `yaml:"features"`
}

type ServicesBlock struct {
	Items []ServiceItem `yaml:"items"`
}

func (b *ServicesBlock) validate() error {
	if len(b.Items) == 0 {
		return errors.New("services section needs at least one item")
	}
	for i, item := range b.Items {
		if item.Title == "" || item.Description == "" {
			return fmt.Errorf("service item %d needs title and description", i)
		}
	}
	return nil
}

// FeatureCard is a titled bullet list.
type FeatureCard struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

type FeatureCardsBlock struct {
	Cards []FeatureCard `yaml:"cards"`
}

func (b *FeatureCardsBlock) validate() error {
	if len(b.Cards) == 0 {
		return errors.New("feature_cards section needs at least one card")
	}
	return nil
}

// ProcessStep is one numbered step of a process section.
type ProcessStep struct {
	Number      string `yaml:"number"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type ProcessBlock struct {
	Visual widget.VisualVariant `yaml:"visual"`
	Steps  []ProcessStep        `yaml:"steps"`
}

func (b *ProcessBlock) validate() error {
	if len(b.Steps) == 0 {
		return errors.New("process section needs at least one step")
	}
	if b.Visual != "" && !b.Visual.Valid() {
		return fmt.Errorf("unknown process visual %q (want one of %s)", b.Visual, joinVariants())
	}
	for i, step := range b.Steps {
		if step.Title == "" {
			return fmt.Errorf("process step %d needs a title", i)
		}
	}
	return nil
}

func joinVariants() string {
	names := make([]string, 0, len(widget.Variants()))
	for _, v := range widget.Variants() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}

// CaseStudyResult is one measured outcome of a case study.
type CaseStudyResult struct {
	Metric      string `yaml:"metric"`
	Improvement string `yaml:"improvement"`
	Timeframe   string `yaml:"timeframe"`
}

type CaseStudyBlock struct {
	Challenge string            `yaml:"challenge"`
	Solution  string            `yaml:"solution"`
	Results   []CaseStudyResult `yaml:"results"`
}

func (b *CaseStudyBlock) validate() error {
	if b.Challenge == "" || b.Solution == "" {
		return errors.New("case_study section needs challenge and solution")
	}
	return nil
}

// PricingTier is one column of a pricing table.
type PricingTier struct {
	Name        string   `yaml:"name"`
	Price       string   `yaml:"price"`
	Period      string   `yaml:"period"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Featured    bool     `yaml:"featured"`
	CTA         Link     `yaml:"cta"`
}

type PricingBlock struct {
	Tiers []PricingTier `yaml:"tiers"`
}

func (b *PricingBlock) validate() error {
	if len(b.Tiers) == 0 {
		return errors.New("pricing section needs at least one tier")
	}
	for i, tier := range b.Tiers {
		if tier.Name == "" || tier.Price == "" {
			return fmt.Errorf("pricing tier %d needs name and price", i)
		}
	}
	return nil
}

// Testimonial is a client quote.
type Testimonial struct {
	Quote   string `yaml:"quote"`
	Author  string `yaml:"author"`
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
}

type TestimonialsBlock struct {
	Items []Testimonial `yaml:"items"`
}

func (b *TestimonialsBlock) validate() error {
	for i, item := range b.Items {
		if item.Quote == "" || item.Author == "" {
			return fmt.Errorf("testimonial %d needs quote and author", i)
		}
	}
	return nil
}

// FAQItem is a question/answer pair.
type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type FAQBlock struct {
	Items []FAQItem `yaml:"items"`
}

func (b *FAQBlock) validate() error {
	if len(b.Items) == 0 {
		return errors.New("faq section needs at least one item")
	}
	for i, item := range b.Items {
		if item.Question == "" || item.Answer == "" {
			return fmt.Errorf("faq item %d needs question and answer", i)
		}
	}
	return nil
}

type TextBlock struct {
	Paragraphs []string `yaml:"paragraphs"`
}

func (b *TextBlock) validate() error {
	if len(b.Paragraphs) == 0 {
		return errors.New("text section needs paragraphs")
	}
	return nil
}

// RelatedLink points at another page with a teaser.
type RelatedLink struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Href        string `yaml:"href"`
}

type RelatedBlock struct {
	Items []RelatedLink `yaml:"items"`
}

func (b *RelatedBlock) validate() error {
	for i, item := range b.Items {
		if item.Title == "" || item.Href == "" {
			return fmt.Errorf("related item %d needs title and href", i)
		}
	}
	return nil
}

type CTABlock struct {
	Primary   Link   `yaml:"primary"`
	Secondary Link   `yaml:"secondary"`
	Note      string `yaml:"note"`
	Accent    bool   `yaml:"accent"`
}

func (b *CTABlock) validate() error {
	if b.Primary.IsZero() {
		return errors.New("cta section needs a primary link")
	}
	return nil
}

type LeadFormBlock struct {
	Benefits   []string `yaml:"benefits"`
	SubmitText string   `yaml:"submit_text"`
	Variant    string   `yaml:"variant"`
}

func (b *LeadFormBlock) validate() error {
	switch b.Variant {
	case "", "compact", "full":
		return nil
	default:
		return fmt.Errorf("unknown lead form variant %q", b.Variant)
	}
}

// WorkflowBlock embeds the interactive workflow stepper.
type WorkflowBlock struct{}

func (b *WorkflowBlock) validate() error { return nil }

// MarkdownBlock is free-form Markdown rendered at load time.
type MarkdownBlock struct {
	Source string        `yaml:"body"`
	HTML   template.HTML `yaml:"-"`
}

func (b *MarkdownBlock) validate() error {
	if strings.TrimSpace(b.Source) == "" {
		return errors.New("markdown section needs a body")
	}
	return nil
}

// PostsBlock lists blog posts, newest first. Limit 0 lists every post.
type PostsBlock struct {
	Limit int `yaml:"limit"`
}

func (b *PostsBlock) validate() error {
	if b.Limit < 0 {
		return errors.New("posts section limit must not be negative")
	}
	return nil
}
