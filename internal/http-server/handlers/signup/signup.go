// Package signup handles new account creation from the signup form.
package signup

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/formbody"
	"github.com/DEVYESH-1211/campus-events/internal/lib/password"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
	"github.com/DEVYESH-1211/campus-events/internal/models"
)

// Request is the decoded signup form. Every field must be present.
type Request struct {
	Name        string `validate:"required"`
	RollNo      string `validate:"required"`
	Email       string `validate:"required"`
	PhoneNumber string `validate:"required"`
	Department  string `validate:"required"`
	Year        string `validate:"required"`
	Password    string `validate:"required"`
}

// UserSaver persists a new user and returns its ID.
type UserSaver interface {
	SaveUser(ctx context.Context, user models.User) (int, error)
}

// New returns the POST /signup handler. On success the new user is stored
// with role "user" and the client is redirected to the login page.
func New(log *slog.Logger, userSaver UserSaver, verifier password.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.signup.New"

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

		req := Request{
			Name:        form.Get("name"),
			RollNo:      form.Get("roll_no"),
			Email:       form.Get("email"),
			PhoneNumber: form.Get("phone_number"),
			Department:  form.Get("department"),
			Year:        form.Get("year"),
			Password:    form.Get("password"),
		}
		if err := validator.New().Struct(req); err != nil {
			log.Error("missing required fields", sl.Err(err))
			response.Text(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		stored, err := verifier.Hash(req.Password)
		if err != nil {
			log.Error("failed to prepare password for storage", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		id, err := userSaver.SaveUser(r.Context(), models.User{
			Name:        req.Name,
			RollNo:      req.RollNo,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Department:  req.Department,
			Year:        req.Year,
			Password:    stored,
			Role:        "user",
		})
		if err != nil {
			log.Error("failed to save user", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		log.Info("created new user",
			slog.Int("id", id), slog.String("email", req.Email))
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}
