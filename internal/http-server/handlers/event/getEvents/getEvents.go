package getEvents

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/upstream"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/models"

	"github.com/go-chi/render"
)

// EventView is an event as shown in the admin list. Expired events cannot
// be opened for scanning.
type EventView struct {
	Event   models.Event `json:"event"`
	Expired bool         `json:"expired"`
	OnSale  bool         `json:"on_sale"`
}

type EventsResponse struct {
	response.Response
	Events []EventView `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventLister
type EventLister interface {
	ListEvents(ctx context.Context, all bool) ([]models.Event, error)
	Now() int64
}

// New serves the event list. ?all=true includes past events, ?q= filters by
// title, location or start date.
func New(log *slog.Logger, lister EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvents.New"

		log := log.With(slog.String("op", op))

		all := true
		if raw := r.URL.Query().Get("all"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				log.Error("invalid all flag", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid all flag"))
				return
			}
			all = parsed
		}

		events, err := lister.ListEvents(r.Context(), all)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		events = models.Filter(events, r.URL.Query().Get("q"), time.Local)

		log.Info("events retrieved successfully", slog.Int("count", len(events)))

		responseOK(w, r, events, lister.Now())
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event, nowMs int64) {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Event:   e,
			Expired: e.Expired(nowMs),
			OnSale:  e.OnSale(nowMs),
		})
	}

	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   views,
	})
}
