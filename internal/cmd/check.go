package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/seo"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content catalog and its structured data",
	Long: `Load every page from the content directory and validate each JSON-LD
document against its schema. Exits non-zero when anything fails.

Examples:
  theprojectseo check
  CONTENT_DIR=./web/content theprojectseo check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		catalog, err := loadCatalog(cfg.ContentDir)
		if err != nil {
			fmt.Fprintln(out, failStyle.Render("content failed to load"))
			return err
		}
		if failures := checkCatalog(out, catalog, siteFromConfig(cfg)); failures > 0 {
			return fmt.Errorf("%d page(s) have invalid structured data", failures)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCatalog prints one line per page and returns how many failed.
func checkCatalog(w io.Writer, catalog *content.Catalog, site seo.Site) int {
	pages := catalog.Pages()
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Checking %d pages", len(pages))))

	failures := 0
	for _, page := range pages {
		var posts []*content.Page
		if page.Kind == content.KindBlog {
			posts = catalog.Posts(0)
		}
		docs := seo.ForPage(site, page, catalog.Breadcrumbs(page.Route), posts)
		if err := seo.ValidateAll(docs); err != nil {
			failures++
			fmt.Fprintf(w, "%s %s\n    %s\n", failStyle.Render("FAIL"), page.Route, err)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", okStyle.Render(" ok "), page.Route,
			mutedStyle.Render(fmt.Sprintf("(%s, %d documents)", page.Kind, len(docs))))
	}

	summary := okStyle.Render("all pages valid")
	if failures > 0 {
		summary = failStyle.Render(fmt.Sprintf("%d of %d pages failed", failures, len(pages)))
	}
	fmt.Fprintln(w, summary)
	return failures
}
