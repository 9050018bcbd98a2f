// Package web serves the browser client: a single HTML shell and its script.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/brizzai/profile-viewer/internal/logger"
	"go.uber.org/zap"
)

//go:embed static/index.html static/app.js
var content embed.FS

const indexFile = "index.html"

// Assets serves the embedded files and falls back to the HTML shell for any
// path that is not a known asset.
type Assets struct {
	files fs.FS
	index []byte
}

func NewAssets() (*Assets, error) {
	files, err := fs.Sub(content, "static")
	if err != nil {
		return nil, err
	}
	index, err := fs.ReadFile(files, indexFile)
	if err != nil {
		return nil, err
	}
	return &Assets{files: files, index: index}, nil
}

func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/")
	if name != "" && name != indexFile {
		if _, err := fs.Stat(a.files, name); err == nil {
			http.ServeFileFS(w, r, a.files, name)
			return
		}
	}

	a.serveIndex(w)
}

func (a *Assets) serveIndex(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(a.index); err != nil {
		logger.Warn("Failed to write index page", zap.Error(err))
	}
}
