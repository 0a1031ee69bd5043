// Package addevent handles event creation from the admin form. Admin-only
// by convention; the route itself is not gated.
package addevent

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/formbody"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
	"github.com/DEVYESH-1211/campus-events/internal/models"
)

const dateLayout = "2006-01-02"

// Request is the decoded add-event form, still as submitted strings.
// Presence is checked before any parsing is attempted.
type Request struct {
	EventName            string `validate:"required"`
	EventDate            string `validate:"required"`
	Venue                string `validate:"required"`
	RegistrationFee      string `validate:"required"`
	RegistrationClosesOn string `validate:"required"`
	MaxParticipants      string `validate:"required"`
}

// EventSaver persists a new event and returns its ID.
type EventSaver interface {
	SaveEvent(ctx context.Context, event models.Event) (int, error)
}

// New returns the POST /add-event handler. Parse failures answer 500 with
// the parser's message: fail loud, no partial state — the insert is only
// issued once all six values parse.
func New(log *slog.Logger, eventSaver EventSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.addevent.New"

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
			EventName:            form.Get("event_name"),
			EventDate:            form.Get("event_date"),
			Venue:                form.Get("venue"),
			RegistrationFee:      form.Get("registration_fee"),
			RegistrationClosesOn: form.Get("registration_closes_on"),
			MaxParticipants:      form.Get("max_participants"),
		}
		if err := validator.New().Struct(req); err != nil {
			log.Error("missing required fields", sl.Err(err))
			response.Text(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		eventDate, err := time.Parse(dateLayout, req.EventDate)
		if err != nil {
			log.Error("failed to parse event_date", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}
		regFee, err := strconv.ParseFloat(req.RegistrationFee, 64)
		if err != nil {
			log.Error("failed to parse registration_fee", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}
		closesOn, err := time.Parse(dateLayout, req.RegistrationClosesOn)
		if err != nil {
			log.Error("failed to parse registration_closes_on", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}
		maxParticipants, err := strconv.Atoi(req.MaxParticipants)
		if err != nil {
			log.Error("failed to parse max_participants", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		id, err := eventSaver.SaveEvent(r.Context(), models.Event{
			Name:            req.EventName,
			Date:            &eventDate,
			Venue:           req.Venue,
			RegFee:          regFee,
			RegCloseDate:    &closesOn,
			MaxParticipants: maxParticipants,
		})
		if err != nil {
			log.Error("failed to save event", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		log.Info("created new event",
			slog.Int("id", id), slog.String("event_name", req.EventName))
		http.Redirect(w, r, "/admin.html?success=1", http.StatusFound)
	}
}
