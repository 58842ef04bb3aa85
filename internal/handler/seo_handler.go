package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/theprojectseo/internal/seo"
)

// ShowSitemap serves sitemap.xml for every indexable catalog page.
func (a *API) ShowSitemap(c *gin.Context) {
	body, err := seo.Sitemap(a.site, a.catalog.Pages(), a.builtAt)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// ShowRobots serves robots.txt.
func (a *API) ShowRobots(c *gin.Context) {
	c.String(http.StatusOK, seo.Robots(a.site))
}

// ShowOGImage renders the share image of a catalog page. /og/index.png is
// the home page; /og/services/seo.png is /services/seo.
func (a *API) ShowOGImage(c *gin.Context) {
	raw := strings.TrimSuffix(c.Param("path"), ".png")
	route := raw
	if route == "/index" {
		route = "/"
	}

	page, err := a.catalog.Page(route)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	label := ""
	if crumbs := a.catalog.Breadcrumbs(page.Route); len(crumbs) > 2 {
		label = crumbs[len(crumbs)-2].Name
	}
	img, err := a.ogImages.Render(page.Heading, label)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", img)
}

// Healthz reports liveness and database reachability.
func (a *API) Healthz(c *gin.Context) {
	status := gin.H{"status": "ok", "pages": len(a.catalog.Routes())}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}
	c.JSON(http.StatusOK, status)
}
