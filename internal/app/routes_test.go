package app_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVYESH-1211/campus-events/internal/app"
	jwtlib "github.com/DEVYESH-1211/campus-events/internal/lib/jwt"
	"github.com/DEVYESH-1211/campus-events/internal/lib/password"
	"github.com/DEVYESH-1211/campus-events/internal/storage"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func testRouter(t *testing.T) (chi.Router, string) {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"index.html", "signup.html", "login.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<html>"+name+"</html>"), 0o644))
	}

	log := slog.New(discardHandler{})
	r := chi.NewRouter()
	app.RegisterRoutes(r, log, &storage.Storage{},
		jwtlib.NewMaker("test-secret", time.Hour), password.Plain{}, time.Hour, dir)
	return r, dir
}

func TestRouting(t *testing.T) {
	r, _ := testRouter(t)

	t.Run("wrong verb on a known path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "Method Not Allowed", w.Body.String())
	})

	t.Run("unknown path falls through to static assets", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/no-such-page.html", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "404 Not Found", w.Body.String())
	})

	t.Run("root serves index page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<html>index.html</html>", w.Body.String())
	})

	t.Run("GET signup and login serve their pages", func(t *testing.T) {
		for target, want := range map[string]string{
			"/signup": "<html>signup.html</html>",
			"/login":  "<html>login.html</html>",
		} {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code, target)
			assert.Equal(t, want, w.Body.String(), target)
		}
	})

	t.Run("metrics endpoint is exposed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
