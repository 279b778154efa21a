package handlers

import (
	"log/slog"
	nethttp "net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the front-end: the index page at / and assets under /static/.
type StaticHandler struct {
	dir    string
	logger *slog.Logger
}

// NewStaticHandler serves files from dir.
func NewStaticHandler(dir string, logger *slog.Logger) *StaticHandler {
	return &StaticHandler{dir: dir, logger: logger}
}

// Index serves index.html from the static dir.
func (s *StaticHandler) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	path := filepath.Join(s.dir, "index.html")
	if _, err := os.Stat(path); err != nil {
		writeError(w, r, nethttp.StatusNotFound, "index not found", loggerFromContext(r, s.logger))
		return
	}
	nethttp.ServeFile(w, r, path)
}

// Assets returns a file server for the static dir, mounted under prefix.
func (s *StaticHandler) Assets(prefix string) nethttp.Handler {
	return nethttp.StripPrefix(prefix, nethttp.FileServer(nethttp.Dir(s.dir)))
}
