package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/upstream"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// EventRequest carries either point_reward or ticket_price with
// last_sale_date. Neither means a points event worth nothing.
type EventRequest struct {
	Title         string  `json:"title" validate:"required"`
	StartTime     int64   `json:"start_time" validate:"required,gt=0"`
	EndTime       int64   `json:"end_time" validate:"required,gtefield=StartTime"`
	HumanLocation string  `json:"human_location"`
	Latitude      float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Details       string  `json:"details"`
	Image         string  `json:"image" validate:"omitempty,url"`
	PointReward   *int64  `json:"point_reward" validate:"omitempty,gte=0,excluded_with=TicketPrice"`
	TicketPrice   *int64  `json:"ticket_price" validate:"omitempty,gte=0"`
	LastSaleDate  *int64  `json:"last_sale_date" validate:"required_with=TicketPrice"`
}

func (req EventRequest) Event() models.Event {
	event := models.Event{
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Title:         req.Title,
		HumanLocation: req.HumanLocation,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Details:       req.Details,
		Image:         req.Image,
	}

	switch {
	case req.TicketPrice != nil:
		event.Monetization = models.Priced{Price: *req.TicketPrice, SaleDeadline: *req.LastSaleDate}
	case req.PointReward != nil:
		event.Monetization = models.Points{Reward: *req.PointReward}
	default:
		event.Monetization = models.Points{}
	}

	return event
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, event models.Event) error
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if err = creator.CreateEvent(r.Context(), req.Event()); err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.String("title", req.Title))

		render.JSON(w, r, response.OK())
	}
}
