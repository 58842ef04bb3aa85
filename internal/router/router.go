package router

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/handler"
	"github.com/theprojectseo/internal/middleware"
	"github.com/theprojectseo/internal/service"
	"github.com/theprojectseo/web"
)

const sessionName = "theprojectseo_session"

// Options 汇总 SetupRouter 需要的依赖。
type Options struct {
	API            *handler.API
	SessionSecret  string
	Logger         *zap.Logger
	LeadLimit      middleware.RateLimitConfig
	TrackLimit     middleware.RateLimitConfig
	// TrustedProxies 为可信代理的 IP 或 CIDR，仅这些来源的 X-Forwarded-For 会被采用；为空时始终使用对端地址。
	TrustedProxies []string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) (*gin.Engine, error) {
	api := opts.API
	if api == nil {
		return nil, errors.New("router: api is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	// 不信任任何代理，除非显式配置；限流按真实来源地址计数
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	// 尾部斜杠由 NotFound 处理，保证重定向也经过中间件
	r.RedirectTrailingSlash = false
	r.Use(middleware.RequestID(), middleware.Logger(logger))

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/admin", MaxAge: 7 * 24 * 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	// 加载后台模板并添加自定义函数
	tmpl, err := template.New("admin").Funcs(templateFuncs()).ParseFS(web.Templates(), "admin/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse admin templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/static", http.FS(web.Static()))

	// 公开页面：每个内容路由注册一次
	for _, route := range api.Catalog().Routes() {
		r.GET(route, api.ShowPage)
		r.HEAD(route, api.ShowPage)
	}
	r.GET("/sitemap.xml", api.ShowSitemap)
	r.GET("/robots.txt", api.ShowRobots)
	r.GET("/og/*path", api.ShowOGImage)
	r.GET("/healthz", api.Healthz)

	widgets := r.Group("/widgets")
	{
		widgets.GET("/workflow", api.ShowWorkflow)
		widgets.GET("/workflow/node/:step", api.ShowWorkflowNode)
		widgets.GET("/workflow/through/:step", api.ShowWorkflowThrough)
		widgets.GET("/process/:variant", api.ShowProcessVisual)
	}

	public := r.Group("/api")
	{
		public.POST("/leads", middleware.NewRateLimiter(opts.LeadLimit, logger).Handler(), api.SubmitLead)

		track := public.Group("/track", middleware.NewRateLimiter(opts.TrackLimit, logger).Handler())
		track.POST("/session", api.TrackSession)
		track.POST("/pageview", api.TrackPageView)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/analytics", api.ShowAnalytics)
			auth.GET("/leads", api.ShowLeads)

			// API路由
			adminAPI := auth.Group("/api")
			{
				adminAPI.PUT("/leads/:id/status", api.UpdateLeadStatus)
			}
		}
	}

	r.NoRoute(api.NotFound)
	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"formatDuration": service.FormatDuration,
		"percent":        service.Percent,
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006-01-02 15:04 UTC")
		},
		"timeAgo": func(t time.Time) string {
			return formatRelativeTime(time.Now(), t)
		},
	}
}

// formatRelativeTime 将时间格式化为相对描述，例如 "5 minutes ago"。
func formatRelativeTime(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	if diff < time.Minute {
		return "just now"
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	switch {
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	case diff < 365*24*time.Hour:
		return plural(int(diff/(30*24*time.Hour)), "month")
	default:
		return plural(int(diff/(365*24*time.Hour)), "year")
	}
}
