// Package registerevent handles a user registering for an event.
package registerevent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/middlewarectx"
	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/formbody"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
	"github.com/DEVYESH-1211/campus-events/internal/storage"
)

// Request is the decoded register form.
type Request struct {
	EventID string `validate:"required"`
}

// Registrar registers userName for an event in a single transaction and
// reports storage.ErrEventNotFound or storage.ErrAlreadyRegistered.
type Registrar interface {
	SaveRegistration(ctx context.Context, eventID int, userName string) (int, error)
}

// New returns the POST /register handler. The acting user comes from the
// session identity on the request context; anonymous requests register as
// "Guest".
func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registerevent.New"

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

		req := Request{EventID: form.Get("event_id")}
		if err := validator.New().Struct(req); err != nil {
			log.Error("missing event_id", sl.Err(err))
			response.Text(w, http.StatusBadRequest, "Missing event_id")
			return
		}

		eventID, err := strconv.Atoi(req.EventID)
		if err != nil {
			log.Error("failed to parse event_id", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}

		userName, ok := middlewarectx.Username(r.Context())
		if !ok {
			userName = "Guest"
		}

		id, err := registrar.SaveRegistration(r.Context(), eventID, userName)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.Int("event_id", eventID))
				response.Text(w, http.StatusNotFound, "Event not found")
			case errors.Is(err, storage.ErrAlreadyRegistered):
				log.Info("duplicate registration",
					slog.Int("event_id", eventID), slog.String("user_name", userName))
				response.Text(w, http.StatusConflict, "Already registered")
			default:
				log.Error("failed to save registration", sl.Err(err))
				response.Text(w, http.StatusInternalServerError, "Database error: "+err.Error())
			}
			return
		}

		log.Info("registered for event",
			slog.Int("id", id), slog.Int("event_id", eventID), slog.String("user_name", userName))
		response.Text(w, http.StatusOK, "Registered successfully!")
	}
}
