package extensions

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/dmitrymomot/corex"
)

// Static returns an extension that serves files from fsys under prefix.
// Directory listings are disabled. Files get a one hour public cache header.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	sub, _ := fs.Sub(assets, "public")
//	extensions.Static("/assets", sub)
func Static(prefix string, fsys fs.FS) corex.Extension {
	prefix = "/" + strings.Trim(prefix, "/")
	fileServer := http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServerFS(fsys))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		fileServer.ServeHTTP(w, r)
	})

	return corex.NewExtension("static", func(r corex.Router) {
		r.Handle(strings.TrimSuffix(prefix, "/")+"/*", handler)
	})
}
