// Package web embeds the site content, admin templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed content
var contentFiles embed.FS

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Content returns the page and blog sources rooted at content/.
func Content() fs.FS {
	return mustSub(contentFiles, "content")
}

// Templates returns the admin html/template files rooted at templates/.
func Templates() fs.FS {
	return mustSub(templateFiles, "templates")
}

// Static returns css, js and images rooted at static/.
func Static() fs.FS {
	return mustSub(staticFiles, "static")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
