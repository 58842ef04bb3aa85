package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoute(t *testing.T) {
	cases := map[string]string{
		"":                 "/",
		"/":                "/",
		"services/seo":     "/services/seo",
		"/services/seo/":   "/services/seo",
		"//services//seo":  "/services/seo",
		"/blog/../pricing": "/pricing",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeRoute(in), "input %q", in)
	}
}

func TestCatalogPageNotFound(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	_, err = catalog.Page("/nope")
	assert.True(t, errors.Is(err, ErrPageNotFound))

	page, err := catalog.Page("/services/seo/")
	require.NoError(t, err)
	assert.Equal(t, "/services/seo", page.Route)

	_, err = catalog.Post("missing")
	assert.True(t, errors.Is(err, ErrPageNotFound))
}

func TestBreadcrumbs(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	assert.Equal(t, []Crumb{
		{Name: "Home", Route: "/"},
		{Name: "Our services", Route: "/services"},
		{Name: "SEO", Route: "/services/seo"},
	}, catalog.Breadcrumbs("/services/seo"))

	// /blog has no page in the test catalog, so it is skipped.
	assert.Equal(t, []Crumb{
		{Name: "Home", Route: "/"},
		{Name: "My First Post", Route: "/blog/first-post"},
	}, catalog.Breadcrumbs("/blog/first-post"))

	assert.Equal(t, []Crumb{{Name: "Home", Route: "/"}}, catalog.Breadcrumbs("/"))
}

func TestNavOrdersChildren(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	nav := catalog.Nav()
	require.Len(t, nav, 1, "empty groups are dropped")
	assert.Equal(t, "Services", nav[0].Label)
	assert.Equal(t, []Link{
		{Label: "AEO", Href: "/services/aeo"},
		{Label: "SEO", Href: "/services/seo"},
	}, nav[0].Links)
}

func TestServiceItems(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	page, err := catalog.Page("/services/seo")
	require.NoError(t, err)
	items := page.ServiceItems()
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Core Web Vitals", "Schema"}, items[0].Features)
}
