package widget

// VisualVariant selects one of the fixed decorative process layouts.
type VisualVariant string

const (
	VisualAudit          VisualVariant = "audit"
	VisualStrategy       VisualVariant = "strategy"
	VisualImplementation VisualVariant = "implementation"
	VisualReporting      VisualVariant = "reporting"
	VisualOptimization   VisualVariant = "optimization"
)

// Stage is one card of a process visual.
type Stage struct {
	Label   string
	Title   string
	Caption string
	Icon    string
}

var variantStages = map[VisualVariant][3]Stage{
	VisualAudit: {
		{Label: "Discover", Title: "Technical Audit", Caption: "Crawl & analyze site", Icon: "search"},
		{Label: "Analyze", Title: "Gather Data", Caption: "Metrics & insights", Icon: "chart"},
		{Label: "Report", Title: "Findings", Caption: "Issues & recommendations", Icon: "clipboard"},
	},
	VisualStrategy: {
		{Label: "Research", Title: "Keyword Analysis", Caption: "Competitor study", Icon: "search"},
		{Label: "Plan", Title: "Content Strategy", Caption: "Topic clusters", Icon: "layers"},
		{Label: "Execute", Title: "Roadmap", Caption: "Timeline & milestones", Icon: "map"},
	},
	VisualImplementation: {
		{Label: "Build", Title: "Technical Implementation", Caption: "Code changes", Icon: "code"},
		{Label: "Create", Title: "Content Production", Caption: "Write & optimize", Icon: "pencil"},
		{Label: "Launch", Title: "Deploy", Caption: "Go live", Icon: "rocket"},
	},
	VisualReporting: {
		{Label: "Collect", Title: "Track Metrics", Caption: "GA4, GSC, rankings", Icon: "chart"},
		{Label: "Analyze", Title: "Performance Review", Caption: "Trend analysis", Icon: "trend"},
		{Label: "Report", Title: "Dashboard", Caption: "Visual insights", Icon: "clipboard"},
	},
	VisualOptimization: {
		{Label: "Test", Title: "A/B Testing", Caption: "Experiment & iterate", Icon: "beaker"},
		{Label: "Refine", Title: "Continuous Improvement", Caption: "Apply learnings", Icon: "cog"},
		{Label: "Scale", Title: "Growth", Caption: "Expand & multiply", Icon: "trend"},
	},
}

// Variants lists the accepted variants in display order.
func Variants() []VisualVariant {
	return []VisualVariant{
		VisualAudit,
		VisualStrategy,
		VisualImplementation,
		VisualReporting,
		VisualOptimization,
	}
}

// Valid reports whether v is one of the five known variants.
func (v VisualVariant) Valid() bool {
	_, ok := variantStages[v]
	return ok
}

// Stages returns the three cards of the variant, or nil for an unknown variant.
func (v VisualVariant) Stages() []Stage {
	stages, ok := variantStages[v]
	if !ok {
		return nil
	}
	out := make([]Stage, len(stages))
	copy(out, stages[:])
	return out
}
