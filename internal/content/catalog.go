package content

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// ErrPageNotFound is returned when a route has no page.
var ErrPageNotFound = errors.New("page not found")

// Catalog is the read-only set of pages loaded at startup.
type Catalog struct {
	pages  map[string]*Page
	routes []string
	posts  []*Page
	bySlug map[string]*Page
}

func newCatalog(pages []*Page) (*Catalog, error) {
	c := &Catalog{
		pages:  make(map[string]*Page, len(pages)),
		bySlug: make(map[string]*Page),
	}

	var errs []error
	for _, page := range pages {
		if prev, ok := c.pages[page.Route]; ok {
			errs = append(errs, fmt.Errorf("route %s defined by both %s and %s", page.Route, prev.Source, page.Source))
			continue
		}
		c.pages[page.Route] = page
		c.routes = append(c.routes, page.Route)
		if page.Post != nil {
			if prev, ok := c.bySlug[page.Post.Slug]; ok {
				errs = append(errs, fmt.Errorf("post slug %s defined by both %s and %s", page.Post.Slug, prev.Source, page.Source))
				continue
			}
			c.bySlug[page.Post.Slug] = page
			c.posts = append(c.posts, page)
		}
	}

	for _, post := range c.posts {
		for _, slug := range post.Post.Related {
			if _, ok := c.bySlug[slug]; !ok {
				errs = append(errs, fmt.Errorf("%s: related post %q does not exist", post.Source, slug))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Strings(c.routes)
	sort.SliceStable(c.posts, func(i, j int) bool {
		a, b := c.posts[i].Post, c.posts[j].Post
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		return a.Slug < b.Slug
	})
	return c, nil
}

// NormalizeRoute maps a request path onto the catalog's route form:
// leading slash, no trailing slash, no duplicate separators.
func NormalizeRoute(raw string) string {
	if raw == "" {
		return "/"
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	cleaned := path.Clean(raw)
	if cleaned == "." {
		return "/"
	}
	return cleaned
}

// Page looks up the page for route.
func (c *Catalog) Page(route string) (*Page, error) {
	page, ok := c.pages[NormalizeRoute(route)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, route)
	}
	return page, nil
}

// Routes returns every route in lexical order.
func (c *Catalog) Routes() []string {
	out := make([]string, len(c.routes))
	copy(out, c.routes)
	return out
}

// Pages returns every page in route order.
func (c *Catalog) Pages() []*Page {
	out := make([]*Page, 0, len(c.routes))
	for _, route := range c.routes {
		out = append(out, c.pages[route])
	}
	return out
}

// PagesOfKind returns the pages of one kind, ordered by Order then label.
func (c *Catalog) PagesOfKind(kind Kind) []*Page {
	var out []*Page
	for _, route := range c.routes {
		if page := c.pages[route]; page.Kind == kind {
			out = append(out, page)
		}
	}
	sortByOrder(out)
	return out
}

// Posts returns blog posts newest first. limit <= 0 returns all of them.
func (c *Catalog) Posts(limit int) []*Page {
	n := len(c.posts)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Page, n)
	copy(out, c.posts[:n])
	return out
}

// Post looks up a blog post by slug.
func (c *Catalog) Post(slug string) (*Page, error) {
	page, ok := c.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: post %s", ErrPageNotFound, slug)
	}
	return page, nil
}

// RelatedPosts resolves the related slugs of a post page.
func (c *Catalog) RelatedPosts(page *Page) []*Page {
	if page == nil || page.Post == nil {
		return nil
	}
	out := make([]*Page, 0, len(page.Post.Related))
	for _, slug := range page.Post.Related {
		if related, ok := c.bySlug[slug]; ok {
			out = append(out, related)
		}
	}
	return out
}

// Breadcrumbs returns Home followed by every existing ancestor of route and
// the route itself. Ancestors with no page of their own are skipped.
func (c *Catalog) Breadcrumbs(route string) []Crumb {
	route = NormalizeRoute(route)
	crumbs := []Crumb{{Name: "Home", Route: "/"}}
	if route == "/" {
		return crumbs
	}

	segments := strings.Split(strings.Trim(route, "/"), "/")
	prefix := ""
	for _, segment := range segments {
		prefix += "/" + segment
		page, ok := c.pages[prefix]
		if !ok {
			continue
		}
		crumbs = append(crumbs, Crumb{Name: page.Label(), Route: prefix})
	}
	return crumbs
}

// Nav builds the header dropdowns from the catalog.
func (c *Catalog) Nav() []NavGroup {
	groups := []NavGroup{
		{Label: "Services", Links: c.childLinks("/services", KindService)},
		{Label: "Industries", Links: c.childLinks("/industries", KindIndustry)},
		{Label: "Locations", Links: c.childLinks("/locations", KindLocation)},
	}

	var company []*Page
	for _, kind := range []Kind{KindPricing, KindCompany, KindBlog, KindContact} {
		company = append(company, c.PagesOfKind(kind)...)
	}
	links := make([]Link, 0, len(company))
	for _, page := range company {
		links = append(links, Link{Label: page.Label(), Href: page.Route})
	}
	groups = append(groups, NavGroup{Label: "Company", Links: links})

	out := groups[:0]
	for _, group := range groups {
		if len(group.Links) > 0 {
			out = append(out, group)
		}
	}
	return out
}

// childLinks lists pages of kind that sit directly below parent.
func (c *Catalog) childLinks(parent string, kind Kind) []Link {
	var children []*Page
	for _, page := range c.PagesOfKind(kind) {
		if path.Dir(page.Route) == parent {
			children = append(children, page)
		}
	}
	sortByOrder(children)
	links := make([]Link, 0, len(children))
	for _, page := range children {
		links = append(links, Link{Label: page.Label(), Href: page.Route})
	}
	return links
}

func sortByOrder(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].Label() < pages[j].Label()
	})
}
