package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/db"
	"github.com/theprojectseo/internal/handler"
	"github.com/theprojectseo/internal/middleware"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/web"
)

var routerDBSeq int64

func setupRouterTest(t *testing.T, leadLimit middleware.RateLimitConfig, trustedProxies ...string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", atomic.AddInt64(&routerDBSeq, 1))
	gdb, err := db.Open(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	catalog, err := content.Load(web.Content())
	if err != nil {
		t.Fatalf("failed to load content: %v", err)
	}
	api, err := handler.NewAPI(handler.Options{
		DB:      gdb,
		Catalog: catalog,
		Site:    seo.Site{Name: "TheProjectSEO", BaseURL: "https://theprojectseo.com"},
	})
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}

	r, err := SetupRouter(Options{API: api, SessionSecret: "test-secret", LeadLimit: leadLimit, TrustedProxies: trustedProxies})
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}
	return r, gdb
}

func TestSetupRouterServesSiteAndAssets(t *testing.T) {
	r, _ := setupRouterTest(t, middleware.RateLimitConfig{})

	cases := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "<!doctype html>"},
		{"/services/seo/", http.StatusMovedPermanently, "/services/seo"},
		{"/static/css/site.css", http.StatusOK, ".hero"},
		{"/static/js/beacon.js", http.StatusOK, "/api/track/session"},
		{"/sitemap.xml", http.StatusOK, "<urlset"},
		{"/robots.txt", http.StatusOK, "Sitemap:"},
		{"/widgets/workflow", http.StatusOK, "workflow-widget"},
		{"/widgets/workflow/node/2", http.StatusOK, "/widgets/workflow/through/2"},
		{"/widgets/workflow/through/3", http.StatusOK, "workflow-widget"},
		{"/nowhere", http.StatusNotFound, "Page not found"},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.path, tc.status, rr.Code)
		}
		if tc.want != "" && !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s: expected body to contain %q", tc.path, tc.want)
		}
		if rr.Header().Get(middleware.RequestIDHeader) == "" {
			t.Fatalf("%s: missing request id header", tc.path)
		}
	}
}

func TestAdminRequiresLoginAndRendersTemplates(t *testing.T) {
	r, gdb := setupRouterTest(t, middleware.RateLimitConfig{})
	if _, err := db.SetPassword(gdb, "admin", "s3cret-pass"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `name="password"`) {
		t.Fatalf("expected login form, got %d", rr.Code)
	}

	form := url.Values{"username": {"admin"}, "password": {"s3cret-pass"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	login := httptest.NewRecorder()
	r.ServeHTTP(login, req)
	if login.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", login.Code)
	}
	cookies := login.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie")
	}

	gdb.Create(&db.Lead{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", SourcePage: "/contact", Status: db.LeadStatusNew})
	gdb.Create(&db.TrackingSession{SessionID: "6f1c2b0e-7a55-4a8e-9d61-3a3f4c8e2b10", LandingPage: "/", ReferrerSource: "google", DeviceType: "desktop", CreatedAt: time.Now().UTC()})

	pages := map[string]string{
		"/admin/dashboard": "Sessions today",
		"/admin/analytics": "google",
		"/admin/leads":     "ada@example.com",
	}
	for path, want := range pages {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rr.Code, rr.Body.String())
		}
		if !strings.Contains(rr.Body.String(), want) {
			t.Fatalf("%s: expected %q in body", path, want)
		}
	}
}

func TestLeadEndpointIsRateLimited(t *testing.T) {
	r, _ := setupRouterTest(t, middleware.RateLimitConfig{PerMinute: 1, Burst: 1})

	post := func() int {
		form := url.Values{"firstName": {"Ada"}}
		req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "203.0.113.9:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := post(); code != http.StatusBadRequest {
		t.Fatalf("expected validation failure first, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func postLeadFrom(r http.Handler, remoteAddr, forwardedFor string) int {
	form := url.Values{"firstName": {"Ada"}}
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	r, _ := setupRouterTest(t, middleware.RateLimitConfig{PerMinute: 1, Burst: 1})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		codes = append(codes, postLeadFrom(r, "203.0.113.9:1234", fmt.Sprintf("198.51.100.%d", i+1)))
	}
	if codes[0] != http.StatusBadRequest {
		t.Fatalf("expected first request to reach the handler, got %v", codes)
	}
	for _, code := range codes[1:] {
		if code != http.StatusTooManyRequests {
			t.Fatalf("rotating X-Forwarded-For must not bypass the limit, got %v", codes)
		}
	}
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	r, _ := setupRouterTest(t, middleware.RateLimitConfig{PerMinute: 1, Burst: 1}, "10.0.0.1")

	if code := postLeadFrom(r, "10.0.0.1:443", "198.51.100.1"); code != http.StatusBadRequest {
		t.Fatalf("expected first client through, got %d", code)
	}
	if code := postLeadFrom(r, "10.0.0.1:443", "198.51.100.2"); code != http.StatusBadRequest {
		t.Fatalf("expected a second client behind the proxy to have its own bucket, got %d", code)
	}
	if code := postLeadFrom(r, "10.0.0.1:443", "198.51.100.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected the first client to be limited, got %d", code)
	}
}

func TestSetupRouterRejectsBadTrustedProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	catalog, err := content.Load(web.Content())
	if err != nil {
		t.Fatalf("failed to load content: %v", err)
	}
	api, err := handler.NewAPI(handler.Options{Catalog: catalog, Site: seo.Site{Name: "TheProjectSEO", BaseURL: "https://theprojectseo.com"}})
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}
	if _, err := SetupRouter(Options{API: api, SessionSecret: "x", TrustedProxies: []string{"not-an-ip"}}); err == nil {
		t.Fatalf("expected an invalid proxy to be rejected")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "zero", input: time.Time{}, expected: ""},
		{name: "seconds", input: now.Add(-30 * time.Second), expected: "just now"},
		{name: "minute", input: now.Add(-time.Minute), expected: "1 minute ago"},
		{name: "minutes", input: now.Add(-5 * time.Minute), expected: "5 minutes ago"},
		{name: "hours", input: now.Add(-2 * time.Hour), expected: "2 hours ago"},
		{name: "days", input: now.Add(-72 * time.Hour), expected: "3 days ago"},
		{name: "months", input: now.Add(-60 * 24 * time.Hour), expected: "2 months ago"},
		{name: "years", input: now.Add(-3 * 365 * 24 * time.Hour), expected: "3 years ago"},
		{name: "future", input: now.Add(2 * time.Minute), expected: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRelativeTime(now, tt.input)
			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
