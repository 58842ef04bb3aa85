package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/internal/service"
	"github.com/theprojectseo/internal/view"
)

var seedFlags struct {
	leads    int
	sessions int
	days     int
	seed     uint64
	force    bool
	dbPath   string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo leads and analytics",
	Long: `Generate demo leads, tracking sessions and page views so the admin
dashboard has something to show in development.

Examples:
  theprojectseo seed --db dev.db
  theprojectseo seed --leads 50 --sessions 500 --days 60 --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfg.DatabasePath
		if seedFlags.dbPath != "" {
			path = seedFlags.dbPath
		}
		conn, err := db.Open(path, gormlogger.Silent)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(conn) }()

		catalog, err := loadCatalog(cfg.ContentDir)
		if err != nil {
			return err
		}

		result, err := seedDemoData(conn, catalog.Routes(), seedOptions{
			Leads:    seedFlags.leads,
			Sessions: seedFlags.sessions,
			Days:     seedFlags.days,
			Seed:     seedFlags.seed,
			Force:    seedFlags.force,
		}, time.Now().UTC())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Skipped {
			fmt.Fprintln(out, mutedStyle.Render("database already has leads, skipping (use --force to add more)"))
			return nil
		}
		fmt.Fprintf(out, "%s %d leads, %d sessions, %d page views\n",
			okStyle.Render("seeded"), result.Leads, result.Sessions, result.PageViews)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedFlags.leads, "leads", 25, "number of leads")
	seedCmd.Flags().IntVar(&seedFlags.sessions, "sessions", 200, "number of tracking sessions")
	seedCmd.Flags().IntVar(&seedFlags.days, "days", 30, "spread records over this many days")
	seedCmd.Flags().Uint64Var(&seedFlags.seed, "seed", 1, "random seed")
	seedCmd.Flags().BoolVar(&seedFlags.force, "force", false, "seed even when leads already exist")
	seedCmd.Flags().StringVar(&seedFlags.dbPath, "db", "", "sqlite database path (default from DATABASE_PATH)")
	rootCmd.AddCommand(seedCmd)
}

type seedOptions struct {
	Leads    int
	Sessions int
	Days     int
	Seed     uint64
	Force    bool
}

type seedResult struct {
	Skipped   bool
	Leads     int
	Sessions  int
	PageViews int
}

var (
	demoFirstNames = []string{"Ana", "Ben", "Chloe", "Dev", "Elena", "Farid", "Grace", "Hugo", "Iris", "Jonas"}
	demoLastNames  = []string{"Alvarez", "Brooks", "Chen", "Dubois", "Evans", "Fischer", "Garcia", "Hall"}
	demoCompanies  = []string{"Northwind", "Acme Dental", "Bluebird Legal", "Summit Roofing", "Copperleaf", ""}
	demoReferrers  = []string{
		"https://www.google.com/search?q=seo+agency",
		"https://www.google.com/search?q=answer+engine+optimization",
		"https://www.bing.com/search?q=local+seo+services",
		"https://duckduckgo.com/?q=technical+seo+audit",
		"https://chatgpt.com/",
		"https://www.linkedin.com/feed/",
		"https://news.ycombinator.com/",
		"",
		"",
	}
	demoWidths = []int{1440, 1920, 1280, 390, 412, 820}
)

// seedDemoData writes demo leads and traffic. It is skipped when leads
// already exist unless Force is set.
func seedDemoData(conn *gorm.DB, routes []string, opts seedOptions, now time.Time) (seedResult, error) {
	if len(routes) == 0 {
		return seedResult{}, errors.New("no routes to seed page views for")
	}
	if opts.Days <= 0 {
		opts.Days = 1
	}

	var existing int64
	if err := conn.Model(&db.Lead{}).Count(&existing).Error; err != nil {
		return seedResult{}, err
	}
	if existing > 0 && !opts.Force {
		return seedResult{Skipped: true}, nil
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5eed))
	pick := func(items []string) string { return items[rng.IntN(len(items))] }
	at := func() time.Time {
		return now.Add(-time.Duration(rng.Int64N(int64(opts.Days) * int64(24*time.Hour))))
	}

	leads := make([]db.Lead, 0, opts.Leads)
	statuses := db.LeadStatuses()
	for i := 0; i < opts.Leads; i++ {
		first, last := pick(demoFirstNames), pick(demoLastNames)
		ref := pick(demoReferrers)
		lead := db.Lead{
			FirstName:       first,
			LastName:        last,
			Email:           fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Company:         pick(demoCompanies),
			ServiceInterest: pick(view.ServiceInterests),
			MonthlyBudget:   pick(view.MonthlyBudgets),
			Message:         "Interested in a proposal for next quarter.",
			SourcePage:      pick(routes),
			Referrer:        ref,
			Status:          statuses[rng.IntN(len(statuses))],
			CreatedAt:       at(),
		}
		if service.ParseReferrer(ref).Source == service.SourceGoogle {
			lead.UTMSource, lead.UTMMedium = "google", "organic"
		}
		leads = append(leads, lead)
	}

	sessions := make([]db.TrackingSession, 0, opts.Sessions)
	var views []db.PageView
	for i := 0; i < opts.Sessions; i++ {
		ref := pick(demoReferrers)
		info := service.ParseReferrer(ref)
		width := demoWidths[rng.IntN(len(demoWidths))]
		started := at()
		session := db.TrackingSession{
			SessionID:      uuid.NewString(),
			LandingPage:    pick(routes),
			Referrer:       ref,
			ReferrerSource: info.Source,
			SearchQuery:    info.Query,
			DeviceType:     service.DeviceType(width),
			ScreenWidth:    width,
			CreatedAt:      started,
		}
		sessions = append(sessions, session)

		// 1 to 4 pages per session, the first one is the landing page
		for j, n := 0, 1+rng.IntN(4); j < n; j++ {
			path := session.LandingPage
			if j > 0 {
				path = pick(routes)
			}
			views = append(views, db.PageView{
				SessionID:    session.SessionID,
				PagePath:     path,
				PageType:     string(seo.PageType(path)),
				TimeOnPageMs: int64(5000 + rng.IntN(240000)),
				ScrollDepth:  []int{25, 50, 75, 100}[rng.IntN(4)],
				CreatedAt:    started.Add(time.Duration(j) * time.Minute),
			})
		}
	}

	err := conn.Transaction(func(tx *gorm.DB) error {
		if len(leads) > 0 {
			if err := tx.CreateInBatches(leads, 100).Error; err != nil {
				return err
			}
		}
		if len(sessions) > 0 {
			if err := tx.CreateInBatches(sessions, 100).Error; err != nil {
				return err
			}
		}
		if len(views) > 0 {
			return tx.CreateInBatches(views, 100).Error
		}
		return nil
	})
	if err != nil {
		return seedResult{}, err
	}
	return seedResult{Leads: len(leads), Sessions: len(sessions), PageViews: len(views)}, nil
}
