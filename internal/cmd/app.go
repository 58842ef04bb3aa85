package cmd

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/theprojectseo/internal/config"
	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/handler"
	"github.com/theprojectseo/internal/middleware"
	"github.com/theprojectseo/internal/router"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/internal/service"
	"github.com/theprojectseo/web"
)

// application holds the database, handlers and engine for one run.
type application struct {
	conn   *gorm.DB
	api    *handler.API
	engine *gin.Engine
}

func siteFromConfig(c config.AppConfig) seo.Site {
	return seo.Site{
		Name:        c.SiteName,
		BaseURL:     c.SiteBaseURL,
		Description: c.SiteDescription,
	}
}

// loadCatalog reads pages from dir, or from the embedded content when dir is empty.
func loadCatalog(dir string) (*content.Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return content.Load(web.Content())
	}
	return content.Load(os.DirFS(dir))
}

func newApplication(c config.AppConfig, log *zap.Logger, databasePath string, notifiers []service.Notifier) (*application, error) {
	conn, err := db.Open(databasePath, gormlogger.Warn)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(c.ContentDir)
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}

	api, err := handler.NewAPI(handler.Options{
		DB:        conn,
		Catalog:   catalog,
		Site:      siteFromConfig(c),
		Logger:    log,
		Notifiers: notifiers,
	})
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}

	engine, err := router.SetupRouter(router.Options{
		API:            api,
		SessionSecret:  c.SessionSecret,
		Logger:         log,
		LeadLimit:      middleware.RateLimitConfig{PerMinute: c.LeadRatePerMinute, Burst: c.LeadRateBurst},
		TrackLimit:     middleware.RateLimitConfig{PerMinute: c.TrackRatePerMinute, Burst: c.TrackRateBurst},
		TrustedProxies: c.TrustedProxies,
	})
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}
	return &application{conn: conn, api: api, engine: engine}, nil
}

// Close waits for lead notifications still in flight, then closes the database.
func (a *application) Close() error {
	a.api.Leads().Wait()
	return db.Close(a.conn)
}
