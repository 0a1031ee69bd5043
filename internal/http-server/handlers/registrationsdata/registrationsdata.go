// Package registrationsdata serves the registrant list of one event as JSON
// for the admin page.
package registrationsdata

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
	"github.com/DEVYESH-1211/campus-events/internal/models"
)

const dateLayout = "2006-01-02"

// Registration is the wire shape of one registration row.
type Registration struct {
	ID        int    `json:"id"`
	EventID   int    `json:"event_id"`
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	UserName  string `json:"user_name"`
}

// RegistrationLister returns all registrations of one event, oldest first.
type RegistrationLister interface {
	ListRegistrationsByEvent(ctx context.Context, eventID int) ([]*models.Registration, error)
}

// New returns the GET /registrations-data handler. The event is selected
// with the event_id query parameter.
func New(log *slog.Logger, lister RegistrationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registrationsdata.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		raw := r.URL.Query().Get("event_id")
		if raw == "" {
			log.Error("missing event_id")
			response.Text(w, http.StatusBadRequest, "Missing event_id")
			return
		}
		eventID, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("failed to parse event_id", sl.Err(err))
			response.Text(w, http.StatusBadRequest, "Missing event_id")
			return
		}

		regs, err := lister.ListRegistrationsByEvent(r.Context(), eventID)
		if err != nil {
			log.Error("failed to list registrations", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		items := make([]Registration, 0, len(regs))
		for _, reg := range regs {
			item := Registration{
				ID:        reg.ID,
				EventID:   reg.EventID,
				EventName: reg.EventName,
				UserName:  reg.UserName,
			}
			if reg.EventDate != nil {
				item.EventDate = reg.EventDate.Format(dateLayout)
			}
			items = append(items, item)
		}

		log.Info("listed registrations",
			slog.Int("event_id", eventID), slog.Int("count", len(items)))
		render.JSON(w, r, items)
	}
}
