package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homeYAML = `
route: /
kind: home
title: SEO Agency | Home
description: Search growth for ambitious teams.
heading: Grow organic traffic
hero:
  eyebrow: AEO & SEO
  title: Get found
  accent: everywhere
  primary: {label: Get a proposal, href: /contact}
sections:
  - type: stats
    stats:
      - {value: "340%", label: Avg. traffic growth}
  - type: faq
    heading: Questions
    items:
      - question: How long does SEO take?
        answer: Three to six months.
      - question: Do you do AEO?
        answer: "Yes."
  - type: process
    visual: audit
    steps:
      - {number: "01", title: Audit, description: Crawl the site.}
`

const servicesYAML = `
route: /services
kind: service
title: Services
description: Everything we do.
heading: Our services
sitemap: {priority: 0.9}
`

const seoServiceYAML = `
route: /services/seo
kind: service
title: SEO Services
description: Technical and on-page SEO.
heading: SEO that compounds
nav_label: SEO
order: 2
sections:
  - type: services
    items:
      - title: Technical SEO
        description: Crawlability and speed.
        features: [Core Web Vitals, Schema]
`

const aeoServiceYAML = `
route: /services/aeo
kind: service
title: AEO Services
description: Answer engine optimization.
heading: Be the answer
nav_label: AEO
order: 1
`

const postMD = `---
slug: first-post
heading: My First Post
title: First post | Blog
published: 2025-01-10
category: SEO
author: {name: Ana, role: Strategist}
related: [second-post]
faq:
  - question: "Is this a test?"
    answer: It is.
---
# Intro

Some **bold** text.
`

const secondPostMD = `---
slug: second-post
heading: Second Post
title: Second post | Blog
description: The second one.
published: 2025-02-01
---
Body.
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"pages/home.yaml":          {Data: []byte(homeYAML)},
		"pages/services/index.yml": {Data: []byte(servicesYAML)},
		"pages/services/seo.yaml":  {Data: []byte(seoServiceYAML)},
		"pages/services/aeo.yaml":  {Data: []byte(aeoServiceYAML)},
		"blog/first-post.md":       {Data: []byte(postMD)},
		"blog/second-post.md":      {Data: []byte(secondPostMD)},
		"README.txt":               {Data: []byte("ignored")},
	}
}

func TestLoadBuildsCatalog(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "/blog/first-post", "/blog/second-post", "/services", "/services/aeo", "/services/seo"}, catalog.Routes())

	home, err := catalog.Page("/")
	require.NoError(t, err)
	assert.Equal(t, KindHome, home.Kind)
	assert.Equal(t, "Grow organic traffic", home.Heading)
	require.Len(t, home.Sections, 3)
	assert.Equal(t, SectionStats, home.Sections[0].Type)
	require.NotNil(t, home.Hero)
	assert.Equal(t, "/contact", home.Hero.Primary.Href)

	faqs := home.FAQItems()
	require.Len(t, faqs, 2)
	assert.Equal(t, "How long does SEO take?", faqs[0].Question)
	assert.Equal(t, "Do you do AEO?", faqs[1].Question)
}

func TestLoadMarkdownPost(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	page, err := catalog.Post("first-post")
	require.NoError(t, err)
	assert.Equal(t, "/blog/first-post", page.Route)
	assert.Equal(t, KindBlogPost, page.Kind)
	assert.Equal(t, "My First Post", page.Post.Title)
	assert.Contains(t, string(page.Body), "<strong>bold</strong>")
	assert.Equal(t, "Intro Some bold text.", page.Description, "description falls back to a body summary")
	assert.Len(t, page.FAQItems(), 1)

	related := catalog.RelatedPosts(page)
	require.Len(t, related, 1)
	assert.Equal(t, "second-post", related[0].Post.Slug)
}

func TestPostsNewestFirst(t *testing.T) {
	catalog, err := Load(testFS())
	require.NoError(t, err)

	posts := catalog.Posts(0)
	require.Len(t, posts, 2)
	assert.Equal(t, "second-post", posts[0].Post.Slug)
	assert.Equal(t, "first-post", posts[1].Post.Slug)
	assert.Len(t, catalog.Posts(1), 1)
}

func TestLoadRejectsUnknownVisual(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte(strings.Replace(homeYAML, "visual: audit", "visual: timeline", 1))},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown process visual "timeline"`)
}

func TestLoadRejectsUnknownSectionType(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte(`
route: /x
kind: other
title: X
description: X
heading: X
sections:
  - type: carousel
`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section type "carousel"`)
}

func TestLoadJoinsErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("route: /a\nkind: other\ntitle: A\ndescription: A\nheading: A\n")},
		"b.yaml": {Data: []byte("route: /a\nkind: other\ntitle: B\ndescription: B\nheading: B\n")},
		"c.yaml": {Data: []byte("route: c/\nkind: nope\n")},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "route /a defined by both a.yaml and b.yaml")
	assert.Contains(t, msg, "c.yaml")
	assert.Contains(t, msg, `unknown kind "nope"`)
	assert.Contains(t, msg, "title is required")
}

func TestLoadRejectsMissingRelatedPost(t *testing.T) {
	fsys := fstest.MapFS{"blog/first-post.md": {Data: []byte(postMD)}}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `related post "second-post" does not exist`)
}

func TestSplitFrontMatter(t *testing.T) {
	fm, body, err := splitFrontMatter([]byte("---\r\ntitle: x\r\n---\r\nhello\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "title: x", string(fm))
	assert.Equal(t, "hello\n", body)

	_, _, err = splitFrontMatter([]byte("no front matter"))
	assert.Error(t, err)
	_, _, err = splitFrontMatter([]byte("---\ntitle: x\n"))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "Title text here", Summarize("# Title\n\n*text* `here`", 0))
	assert.Equal(t, "abcde…", Summarize("abcdefgh", 5))
	assert.Equal(t, "", Summarize("  ", 10))
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out, err := RenderMarkdown("hello <script>alert(1)</script>\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "<table>")
}
