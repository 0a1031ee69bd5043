// Package login handles credential verification and issues the session
// cookie.
package login

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/middlewarectx"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/formbody"
	"github.com/DEVYESH-1211/campus-events/internal/lib/password"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
	"github.com/DEVYESH-1211/campus-events/internal/models"
	"github.com/DEVYESH-1211/campus-events/internal/storage"
)

// UserProvider looks up an account by email.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenMaker issues the signed identity token placed in the session cookie.
type TokenMaker interface {
	GenerateToken(username, role string) (string, error)
}

// New returns the POST /login handler. A matching account gets a session
// cookie and a 302 to the admin or events page depending on role. Bad
// credentials answer 200 with an inline alert script, never a 401; that is
// the contract the login page's JavaScript relies on.
func New(log *slog.Logger, userProvider UserProvider, verifier password.Verifier,
	tokenMaker TokenMaker, tokenTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("failed to read request body", sl.Err(err))
			response.Text(w, http.StatusBadRequest, "Malformed form body")
			return
		}
		form, err := formbody.Parse(string(body))
		if err != nil {
			log.Error("failed to decode form body", sl.Err(err))
			response.Text(w, http.StatusBadRequest, "Malformed form body")
			return
		}
		email := form.Get("email")

		user, err := userProvider.GetUserByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Info("login rejected, unknown email", slog.String("email", email))
				response.HTML(w, http.StatusOK, response.LoginFailedAlert)
				return
			}
			log.Error("failed to look up user", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		if err := verifier.Compare(user.Password, form.Get("password")); err != nil {
			log.Info("login rejected, wrong password", slog.String("email", email))
			response.HTML(w, http.StatusOK, response.LoginFailedAlert)
			return
		}

		token, err := tokenMaker.GenerateToken(user.Name, user.Role)
		if err != nil {
			log.Error("could not generate token", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middlewarectx.SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(tokenTTL.Seconds()),
			HttpOnly: true,
		})

		target := "/events.html"
		if strings.EqualFold(user.Role, "admin") {
			target = "/admin.html"
		}
		log.Info("user logged in",
			slog.String("name", user.Name), slog.String("role", user.Role))
		http.Redirect(w, r, target, http.StatusFound)
	}
}
