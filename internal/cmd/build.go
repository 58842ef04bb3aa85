package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/config"
	"github.com/theprojectseo/internal/export"
	"github.com/theprojectseo/internal/view"
	"github.com/theprojectseo/web"
)

// buildDSN keeps the export away from the production database.
const buildDSN = "file:theprojectseo-build?mode=memory&cache=shared"

var buildFlags struct {
	out      string
	noStatic bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the public site as static files",
	Long: `Render every catalog page, its share image, the widget fragments, the
sitemap and robots.txt into a directory that any static host can serve.

Examples:
  theprojectseo build --out dist`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := buildSite(cmd.Context(), cfg, logger, buildFlags.out, !buildFlags.noStatic)
		if err != nil {
			return err
		}
		printBuildReport(cmd.OutOrStdout(), buildFlags.out, report)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildFlags.out, "out", "o", "dist", "output directory")
	buildCmd.Flags().BoolVar(&buildFlags.noStatic, "no-static", false, "skip copying css and js assets")
	rootCmd.AddCommand(buildCmd)
}

func buildSite(ctx context.Context, c config.AppConfig, log *zap.Logger, out string, withStatic bool) (export.Report, error) {
	app, err := newApplication(c, log, buildDSN, nil)
	if err != nil {
		return export.Report{}, err
	}
	defer func() { _ = app.Close() }()

	opts := export.Options{
		OutDir:    out,
		Routes:    app.api.Catalog().Routes(),
		Fragments: view.WidgetPaths(),
		Logger:    log,
	}
	if withStatic {
		opts.Static = web.Static()
	}
	return export.Build(ctx, app.engine, opts)
}

func printBuildReport(w io.Writer, out string, report export.Report) {
	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	fmt.Fprintf(w, "%s %d pages, %d fragments, %d assets, %d files written to %s\n",
		okStyle.Render("built"), report.Pages, report.Fragments, report.Assets, len(report.Files), abs)
}
