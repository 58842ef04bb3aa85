package handler

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/internal/service"
	"github.com/theprojectseo/web"
)

var (
	testDBSeq = int64(0)
	fixedNow  = time.Date(2025, time.March, 4, 15, 30, 0, 0, time.UTC)
	testSite  = seo.Site{
		Name:        "TheProjectSEO",
		BaseURL:     "https://theprojectseo.com",
		Description: "AEO and SEO agency",
	}
)

type stubHTMLRender struct {
	name string
	data gin.H
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.name = name
	r.data, _ = data.(gin.H)
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type analyticsStub struct {
	sessions   int64
	since      time.Time
	overviewAt time.Time
}

func (a *analyticsStub) Overview(now time.Time) (service.Overview, error) {
	a.overviewAt = now
	return service.Overview{TotalSessions: a.sessions}, nil
}

func (a *analyticsStub) SessionsSince(since time.Time) (int64, error) {
	a.since = since
	return a.sessions, nil
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := db.Open(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newTestAPI(t *testing.T) *API {
	t.Helper()

	catalog, err := content.Load(web.Content())
	if err != nil {
		t.Fatalf("failed to load content: %v", err)
	}
	api, err := NewAPI(Options{DB: setupHandlerTestDB(t), Catalog: catalog, Site: testSite})
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}
	api.now = func() time.Time { return fixedNow }
	return api
}

func newTestRouter(api *API) (*gin.Engine, *stubHTMLRender) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.RedirectTrailingSlash = false
	stub := &stubHTMLRender{}
	router.HTMLRender = stub
	router.Use(sessions.Sessions("tps_admin", cookie.NewStore([]byte("test-secret"))))

	for _, route := range api.Catalog().Routes() {
		router.GET(route, api.ShowPage)
	}
	router.GET("/sitemap.xml", api.ShowSitemap)
	router.GET("/robots.txt", api.ShowRobots)
	router.GET("/og/*path", api.ShowOGImage)
	router.GET("/healthz", api.Healthz)
	router.GET("/widgets/workflow", api.ShowWorkflow)
	router.GET("/widgets/workflow/node/:step", api.ShowWorkflowNode)
	router.GET("/widgets/workflow/through/:step", api.ShowWorkflowThrough)
	router.GET("/widgets/process/:variant", api.ShowProcessVisual)
	router.POST("/api/leads", api.SubmitLead)
	router.POST("/api/track/session", api.TrackSession)
	router.POST("/api/track/pageview", api.TrackPageView)
	router.GET("/admin/login", api.ShowLoginPage)
	router.POST("/admin/login", api.Login)
	router.GET("/admin/dashboard", api.ShowDashboard)
	router.GET("/admin/analytics", api.ShowAnalytics)
	router.GET("/admin/leads", api.ShowLeads)
	router.PUT("/admin/api/leads/:id/status", api.UpdateLeadStatus)
	router.NoRoute(api.NotFound)
	return router, stub
}
