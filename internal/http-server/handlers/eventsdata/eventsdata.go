// Package eventsdata serves the event list as JSON for the events and admin
// pages.
package eventsdata

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/DEVYESH-1211/campus-events/internal/http-server/response"
	"github.com/DEVYESH-1211/campus-events/internal/lib/sl"
	"github.com/DEVYESH-1211/campus-events/internal/models"
)

const dateLayout = "2006-01-02"

// Event is the wire shape of one event. A NULL date renders as "".
type Event struct {
	ID              int     `json:"id"`
	EventName       string  `json:"event_name"`
	EventDate       string  `json:"event_date"`
	Venue           string  `json:"venue"`
	RegFee          float64 `json:"reg_fee"`
	RegCloseDate    string  `json:"reg_close_date"`
	MaxParticipants int     `json:"max_participants"`
}

// FromModel converts a stored event into its wire shape.
func FromModel(e *models.Event) Event {
	out := Event{
		ID:              e.ID,
		EventName:       e.Name,
		Venue:           e.Venue,
		RegFee:          e.RegFee,
		MaxParticipants: e.MaxParticipants,
	}
	if e.Date != nil {
		out.EventDate = e.Date.Format(dateLayout)
	}
	if e.RegCloseDate != nil {
		out.RegCloseDate = e.RegCloseDate.Format(dateLayout)
	}
	return out
}

// EventLister returns all events ordered by event date ascending.
type EventLister interface {
	ListEvents(ctx context.Context) ([]*models.Event, error)
}

// New returns the GET /events-data handler. An empty table renders as [].
// Persistence failure answers 500 with a plain-text body, not JSON; clients
// must treat any non-200 as non-JSON.
func New(log *slog.Logger, lister EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.eventsdata.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		events, err := lister.ListEvents(r.Context())
		if err != nil {
			log.Error("failed to list events", sl.Err(err))
			response.Text(w, http.StatusInternalServerError, "Error: "+err.Error())
			return
		}

		items := make([]Event, 0, len(events))
		for _, e := range events {
			items = append(items, FromModel(e))
		}

		log.Info("listed events", slog.Int("count", len(items)))
		render.JSON(w, r, items)
	}
}
