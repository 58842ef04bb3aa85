package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	g "maragu.dev/gomponents"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/internal/service"
	"github.com/theprojectseo/internal/view"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	catalog   *content.Catalog
	site      seo.Site
	leads     *service.LeadService
	tracking  *service.TrackingService
	analytics analyticsProvider
	ogImages  *service.OGImageService
	logger    *zap.Logger
	now       func() time.Time
	builtAt   time.Time
}

// Options carries what NewAPI depends on.
type Options struct {
	DB        *gorm.DB
	Catalog   *content.Catalog
	Site      seo.Site
	Logger    *zap.Logger
	Notifiers []service.Notifier
}

// NewAPI constructs a handler set with shared services. Every JSON-LD document
// the catalog produces is validated here so a bad page fails startup instead
// of shipping broken structured data.
func NewAPI(opts Options) (*API, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Catalog == nil {
		return nil, errors.New("catalog is required")
	}

	ogImages, err := service.NewOGImageService(opts.Site.Name)
	if err != nil {
		return nil, fmt.Errorf("og images: %w", err)
	}

	api := &API{
		db:        opts.DB,
		catalog:   opts.Catalog,
		site:      opts.Site,
		leads:     service.NewLeadService(opts.DB, logger, opts.Notifiers...),
		tracking:  service.NewTrackingService(opts.DB, opts.Site.Host()),
		analytics: service.NewAnalyticsService(opts.DB),
		ogImages:  ogImages,
		logger:    logger,
		now:       time.Now,
		builtAt:   time.Now().UTC(),
	}

	for _, page := range opts.Catalog.Pages() {
		if err := seo.ValidateAll(api.structuredData(page)); err != nil {
			return nil, fmt.Errorf("%s: %w", page.Route, err)
		}
	}
	return api, nil
}

// Leads exposes the lead service so shutdown can wait for pending notifications.
func (a *API) Leads() *service.LeadService {
	return a.leads
}

// Catalog returns the content catalog the handlers serve.
func (a *API) Catalog() *content.Catalog {
	return a.catalog
}

func (a *API) structuredData(page *content.Page) []seo.Document {
	var posts []*content.Page
	if page.Kind == content.KindBlog {
		posts = a.catalog.Posts(0)
	}
	return seo.ForPage(a.site, page, a.catalog.Breadcrumbs(page.Route), posts)
}

func (a *API) layout(meta seo.Meta, docs []seo.Document) view.LayoutData {
	return view.LayoutData{
		Site:   a.site,
		Meta:   meta,
		JSONLD: docs,
		Nav:    a.catalog.Nav(),
		Now:    a.now().UTC(),
	}
}

// renderPage writes a gomponents tree as the response body.
func (a *API) renderPage(c *gin.Context, status int, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := view.Render(c.Writer, node); err != nil {
		_ = c.Error(err)
		a.logger.Error("render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

// renderHTML renders an admin html/template and injects the site identity.
func (a *API) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = a.site
	}
	c.HTML(status, name, payload)
}
