// Package static serves the pre-built HTML/CSS/JS assets of the site.
package static

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
)

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".html":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	default:
		return "application/octet-stream"
	}
}

func serveFile(log *slog.Logger, w http.ResponseWriter, fullPath string) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			response.Text(w, http.StatusNotFound, "404 Not Found")
			return
		}
		log.Error("failed to read asset", sl.Err(err))
		response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType(fullPath))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// New returns the catch-all asset handler. "/" serves index.html; anything
// resolving outside assetsDir is answered as not found.
func New(log *slog.Logger, assetsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.static.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		clean := path.Clean(urlPath)
		if !strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "/..") {
			response.Text(w, http.StatusNotFound, "404 Not Found")
			return
		}

		serveFile(log, w, filepath.Join(assetsDir, filepath.FromSlash(clean)))
	}
}

// Page returns a handler serving one named page from assetsDir. Used for
// the GET side of /signup and /login.
func Page(log *slog.Logger, assetsDir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.static.Page"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		serveFile(log, w, filepath.Join(assetsDir, name))
	}
}
