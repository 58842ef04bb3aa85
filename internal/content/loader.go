package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ContentPattern matches every content file below the content root.
const ContentPattern = "**/*.{yaml,yml,md}"

const publishedLayout = "2006-01-02"

// pageFile is the on-disk shape shared by YAML pages and Markdown front matter.
type pageFile struct {
	Route       string       `yaml:"route"`
	Kind        Kind         `yaml:"kind"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Heading     string       `yaml:"heading"`
	NavLabel    string       `yaml:"nav_label"`
	Order       int          `yaml:"order"`
	Hero        *Hero        `yaml:"hero"`
	Sections    []Section    `yaml:"sections"`
	Schema      SchemaHints  `yaml:"schema"`
	Sitemap     SitemapHints `yaml:"sitemap"`

	// blog posts
	Slug      string    `yaml:"slug"`
	Category  string    `yaml:"category"`
	ReadTime  string    `yaml:"read_time"`
	Lead      string    `yaml:"lead"`
	Published string    `yaml:"published"`
	Author    Author    `yaml:"author"`
	Related   []string  `yaml:"related"`
	FAQ       []FAQItem `yaml:"faq"`
}

// Load reads every content file in fsys and builds a validated catalog.
// All problems found are reported together.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := doublestar.Glob(fsys, ContentPattern)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	sort.Strings(paths)

	var (
		errs  []error
		pages = make([]*Page, 0, len(paths))
	)
	for _, p := range paths {
		page, err := loadFile(fsys, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		pages = append(pages, page)
	}

	catalog, err := newCatalog(pages)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return catalog, nil
}

func loadFile(fsys fs.FS, name string) (*Page, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	var (
		file pageFile
		body string
	)
	if path.Ext(name) == ".md" {
		frontMatter, rest, err := splitFrontMatter(raw)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(frontMatter, &file); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		body = rest
	} else if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	page, err := buildPage(file, body)
	if err != nil {
		return nil, err
	}
	page.Source = name
	return page, nil
}

func splitFrontMatter(raw []byte) ([]byte, string, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return nil, "", errors.New("markdown file must start with --- front matter")
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n---") {
			return []byte(strings.TrimSuffix(rest, "\n---")), "", nil
		}
		return nil, "", errors.New("unterminated front matter")
	}
	return []byte(rest[:end]), rest[end+len("\n---\n"):], nil
}

func buildPage(file pageFile, body string) (*Page, error) {
	page := &Page{
		Route:       file.Route,
		Kind:        file.Kind,
		Title:       strings.TrimSpace(file.Title),
		Description: strings.TrimSpace(file.Description),
		Heading:     strings.TrimSpace(file.Heading),
		NavLabel:    strings.TrimSpace(file.NavLabel),
		Order:       file.Order,
		Hero:        file.Hero,
		Sections:    file.Sections,
		Schema:      file.Schema,
		Sitemap:     file.Sitemap,
	}

	if file.Slug != "" {
		published, err := time.Parse(publishedLayout, strings.TrimSpace(file.Published))
		if err != nil {
			return nil, fmt.Errorf("published date %q: want YYYY-MM-DD", file.Published)
		}
		if page.Route == "" {
			page.Route = "/blog/" + file.Slug
		}
		if page.Kind == "" {
			page.Kind = KindBlogPost
		}
		page.Post = &Post{
			Slug:      file.Slug,
			Title:     page.Heading,
			Category:  file.Category,
			ReadTime:  file.ReadTime,
			Lead:      strings.TrimSpace(file.Lead),
			Author:    file.Author,
			Published: published,
			Related:   file.Related,
			FAQ:       file.FAQ,
		}
	}

	if page.Description == "" && strings.TrimSpace(body) != "" {
		page.Description = Summarize(body, 160)
	}

	if strings.TrimSpace(body) != "" {
		rendered, err := RenderMarkdown(body)
		if err != nil {
			return nil, fmt.Errorf("render body: %w", err)
		}
		page.Body = rendered
	}

	for i := range page.Sections {
		if block, ok := page.Sections[i].Block.(*MarkdownBlock); ok && strings.TrimSpace(block.Source) != "" {
			rendered, err := RenderMarkdown(block.Source)
			if err != nil {
				return nil, fmt.Errorf("section %d: render markdown: %w", i, err)
			}
			block.HTML = rendered
		}
	}

	if err := validatePage(page); err != nil {
		return nil, err
	}
	return page, nil
}

func validatePage(page *Page) error {
	var errs []error

	if page.Route == "" || !strings.HasPrefix(page.Route, "/") {
		errs = append(errs, fmt.Errorf("route %q must start with /", page.Route))
	} else if page.Route != "/" && strings.HasSuffix(page.Route, "/") {
		errs = append(errs, fmt.Errorf("route %q must not end with /", page.Route))
	}
	if _, ok := knownKinds[page.Kind]; !ok {
		errs = append(errs, fmt.Errorf("unknown kind %q", page.Kind))
	}
	if page.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if page.Description == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if page.Heading == "" {
		errs = append(errs, errors.New("heading is required"))
	}
	if page.Kind == KindBlogPost && page.Post == nil {
		errs = append(errs, errors.New("blog-post pages need a slug"))
	}
	if page.Post != nil {
		for i, item := range page.Post.FAQ {
			if item.Question == "" || item.Answer == "" {
				errs = append(errs, fmt.Errorf("faq item %d needs question and answer", i))
			}
		}
	}
	for i, section := range page.Sections {
		if section.Block == nil {
			errs = append(errs, fmt.Errorf("section %d: empty", i))
			continue
		}
		if err := section.Block.validate(); err != nil {
			errs = append(errs, fmt.Errorf("section %d (%s): %w", i, section.Type, err))
		}
	}
	if page.Sitemap.Priority < 0 || page.Sitemap.Priority > 1 {
		errs = append(errs, fmt.Errorf("sitemap priority %.1f out of range", page.Sitemap.Priority))
	}

	return errors.Join(errs...)
}
