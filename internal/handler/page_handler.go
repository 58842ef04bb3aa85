package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/content"
	"github.com/theprojectseo/internal/seo"
	"github.com/theprojectseo/internal/view"
)

// ShowPage renders the catalog page registered for the matched route.
func (a *API) ShowPage(c *gin.Context) {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}

	page, err := a.catalog.Page(route)
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			a.NotFound(c)
			return
		}
		a.renderError(c, err)
		return
	}

	a.renderPage(c, http.StatusOK, view.Page(a.pageData(page)))
}

func (a *API) pageData(page *content.Page) view.PageData {
	crumbs := a.catalog.Breadcrumbs(page.Route)
	posts := a.catalog.Posts(0)

	var docPosts []*content.Page
	if page.Kind == content.KindBlog {
		docPosts = posts
	}
	now := a.now().UTC()

	return view.PageData{
		Layout:  a.layout(seo.PageMeta(a.site, page), seo.ForPage(a.site, page, crumbs, docPosts)),
		Page:    page,
		Crumbs:  crumbs,
		Posts:   posts,
		Related: a.catalog.RelatedPosts(page),
		Now:     now,
	}
}

// NotFound redirects non-canonical spellings of a catalog route (trailing
// slash, duplicate separators) and renders the shared 404 page otherwise.
func (a *API) NotFound(c *gin.Context) {
	if target, ok := a.canonicalRedirect(c.Request); ok {
		c.Redirect(http.StatusMovedPermanently, target)
		return
	}
	if wantsJSON(c) {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	a.renderPage(c, http.StatusNotFound, view.NotFound(a.layout(seo.NotFoundMeta(a.site), nil)))
}

func (a *API) canonicalRedirect(req *http.Request) (string, bool) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return "", false
	}
	route := content.NormalizeRoute(req.URL.Path)
	if route == req.URL.Path {
		return "", false
	}
	if _, err := a.catalog.Page(route); err != nil {
		return "", false
	}
	if req.URL.RawQuery != "" {
		route += "?" + req.URL.RawQuery
	}
	return route, true
}

func (a *API) renderError(c *gin.Context, err error) {
	_ = c.Error(err)
	a.logger.Error("render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	meta := seo.NotFoundMeta(a.site)
	meta.Title = "Something went wrong | " + a.site.Name
	a.renderPage(c, http.StatusInternalServerError,
		view.ErrorPage(a.layout(meta, nil), "Something went wrong", "Please try again in a moment."))
}
