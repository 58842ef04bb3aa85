// Package export renders the whole site to static files by replaying GET
// requests against the live gin engine.
package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/theprojectseo/internal/seo"
)

// Options controls one export run.
type Options struct {
	OutDir string
	Routes []string
	// Fragments are partial responses fetched by the pages, written like routes.
	Fragments []string
	// Static is copied to OutDir/static when set.
	Static fs.FS
	Logger *zap.Logger
}

// Report lists what was written.
type Report struct {
	Pages     int
	Fragments int
	Assets    int
	Files     []string
}

// Build writes every route as <route>/index.html with its share image, then
// the fragments, the sitemap, robots.txt, a 404.html and the static assets.
func Build(ctx context.Context, handler http.Handler, opts Options) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return Report{}, errors.New("export: output directory is required")
	}

	var report Report
	write := func(urlPath, file string, wantStatus int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		body, err := fetch(handler, urlPath, wantStatus)
		if err != nil {
			return err
		}
		dest := filepath.Join(opts.OutDir, filepath.FromSlash(file))
		if err := writeFile(dest, body); err != nil {
			return err
		}
		report.Files = append(report.Files, file)
		logger.Debug("exported", zap.String("path", urlPath), zap.String("file", file))
		return nil
	}

	for _, route := range opts.Routes {
		if err := write(route, PageFile(route), http.StatusOK); err != nil {
			return report, err
		}
		og := seo.OGImagePath(route)
		if err := write(og, strings.TrimPrefix(og, "/"), http.StatusOK); err != nil {
			return report, err
		}
		report.Pages++
	}
	for _, fragment := range opts.Fragments {
		if err := write(fragment, PageFile(fragment), http.StatusOK); err != nil {
			return report, err
		}
		report.Fragments++
	}
	for _, extra := range []struct {
		path, file string
		status     int
	}{
		{"/sitemap.xml", "sitemap.xml", http.StatusOK},
		{"/robots.txt", "robots.txt", http.StatusOK},
		{"/404", "404.html", http.StatusNotFound},
	} {
		if err := write(extra.path, extra.file, extra.status); err != nil {
			return report, err
		}
	}

	if opts.Static != nil {
		n, err := copyTree(opts.Static, filepath.Join(opts.OutDir, "static"))
		if err != nil {
			return report, fmt.Errorf("copy static assets: %w", err)
		}
		report.Assets = n
	}
	return report, nil
}

// PageFile maps a route to its file below the output directory.
func PageFile(route string) string {
	trimmed := strings.Trim(path.Clean("/"+route), "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}

func fetch(handler http.Handler, urlPath string, wantStatus int) ([]byte, error) {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, urlPath, nil))
	if rec.Code != wantStatus {
		return nil, fmt.Errorf("GET %s: status %d, want %d", urlPath, rec.Code, wantStatus)
	}
	return rec.Body.Bytes(), nil
}

func writeFile(dest string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, body, 0o644)
}

func copyTree(src fs.FS, dest string) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		count++
		return writeFile(filepath.Join(dest, filepath.FromSlash(p)), data)
	})
	return count, err
}
