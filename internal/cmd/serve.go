package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/config"
	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	addr   string
	dbPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Serve the marketing pages, the lead and tracking APIs and the admin area.

Examples:
  theprojectseo serve
  theprojectseo serve --addr :9000 --db /var/lib/theprojectseo/site.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (default from LISTEN_ADDR or PORT)")
	serveCmd.Flags().StringVar(&serveFlags.dbPath, "db", "", "sqlite database path (default from DATABASE_PATH)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveFlags.addr != "" {
		cfg.ListenAddr = serveFlags.addr
	}
	if serveFlags.dbPath != "" {
		cfg.DatabasePath = serveFlags.dbPath
	}

	sentryEnabled := initSentry(cfg, logger)
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	notifiers := service.NewNotifiers(service.NotifierConfig{
		SlackWebhookURL: cfg.SlackWebhookURL,
		ResendAPIKey:    cfg.ResendAPIKey,
		From:            cfg.LeadNotifyFrom,
		To:              cfg.LeadNotifyTo,
	}, nil)
	logger.Info("lead notifiers configured", zap.Int("count", len(notifiers)))

	app, err := newApplication(cfg, logger, cfg.DatabasePath, notifiers)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close database", zap.Error(err))
		}
	}()

	// make sure the configured super admin exists
	if err := db.EnsureUser(app.conn, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.ListenAddr),
			zap.Int("pages", len(app.api.Catalog().Routes())),
		)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// initSentry reports whether error tracking was enabled.
func initSentry(c config.AppConfig, log *zap.Logger) bool {
	if c.SentryDSN == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.SentryDSN,
		Environment:      c.SentryEnvironment,
		TracesSampleRate: 0.2,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Warn("sentry initialization failed", zap.Error(err))
		return false
	}
	log.Info("sentry initialized", zap.String("environment", c.SentryEnvironment))
	return true
}
