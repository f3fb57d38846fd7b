package issueTicket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/upstream"
	"maCentral/internal/lib/api/urlparam"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type TicketRequest struct {
	AttendeeID int64 `json:"attendee_id" validate:"required,gt=0"`
}

type TicketResponse struct {
	response.Response
	Ticket *models.Ticket `json:"ticket,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketIssuer
type TicketIssuer interface {
	IssueTicket(ctx context.Context, attendeeID, eventID int64) (models.Ticket, error)
}

func New(log *slog.Logger, issuer TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.issueTicket.New"

		log := log.With(slog.String("op", op))

		eventID, err := urlparam.Int64(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req TicketRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		ticket, err := issuer.IssueTicket(r.Context(), req.AttendeeID, eventID)
		if err != nil {
			log.Error("failed to issue ticket", sl.Err(err))

			// purchase failures are reported with their own wording
			status := upstream.Status(err)
			if code, ok := macsvc.StatusCode(err); ok {
				if _, known := macsvc.PurchaseMessages.ByStatus[code]; known {
					status = code
				}
			}

			render.Status(r, status)
			render.JSON(w, r, response.Error(macsvc.PurchaseMessages.For(err)))
			return
		}

		log.Info("ticket issued", slog.Int64("attendee_id", req.AttendeeID))

		responseOK(w, r, ticket)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, ticket models.Ticket) {
	resp := TicketResponse{Response: response.OK()}
	if ticket != (models.Ticket{}) {
		resp.Ticket = &ticket
	}

	render.JSON(w, r, resp)
}
