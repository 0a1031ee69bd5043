// Package app assembles the storage, middleware and handlers into a running
// HTTP server.
package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/addevent"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/eventsdata"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/login"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/registerevent"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/registrationsdata"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/signup"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/handlers/static"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/middlewarectx"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	jwtlib "github.com/DEVYESH-1211/campus-events/internal/lib/jwt"
	"github.com/DEVYESH-1211/campus-events/internal/lib/password"
	"github.com/DEVYESH-1211/campus-events/internal/storage"
)

// RegisterRoutes wires every route of the service onto r. Unmatched paths
// fall through to the static asset handler; wrong verbs on known paths
// answer 405.
func RegisterRoutes(r chi.Router, log *slog.Logger, db *storage.Storage,
	tokenMaker *jwtlib.MakerImpl, verifier password.Verifier,
	tokenTTL time.Duration, assetsDir string) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.Identity(log, tokenMaker))

	r.NotFound(static.New(log, assetsDir))
	r.MethodNotAllowed(response.MethodNotAllowed())

	r.Get("/signup", static.Page(log, assetsDir, "signup.html"))
	r.Post("/signup", signup.New(log, db, verifier))
	r.Get("/login", static.Page(log, assetsDir, "login.html"))
	r.Post("/login", login.New(log, db, verifier, tokenMaker, tokenTTL))

	r.Get("/events-data", eventsdata.New(log, db))
	r.Get("/registrations-data", registrationsdata.New(log, db))

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimit(log))
		r.Post("/add-event", addevent.New(log, db))
		r.Post("/register", registerevent.New(log, db))
	})

	r.Handle("/metrics", promhttp.Handler())
}
