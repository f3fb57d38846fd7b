package submitScan

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"maCentral/internal/http-server/handlers/scan/scanerr"
	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/urlparam"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/redeem"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ScanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type ScanResponse struct {
	response.Response
	Scan *redeem.Snapshot `json:"scan,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ScanSubmitter
type ScanSubmitter interface {
	SubmitScan(ctx context.Context, eventID int64, payload string) (redeem.Snapshot, error)
}

// New accepts a scanned payload. The answer carries the scanner state right
// after submission; the verdict is read back with the scan state endpoint.
func New(log *slog.Logger, submitter ScanSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scan.submitScan.New"

		log := log.With(slog.String("op", op))

		eventID, err := urlparam.Int64(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req ScanRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		snap, err := submitter.SubmitScan(r.Context(), eventID, req.Payload)
		if err != nil {
			log.Error("failed to submit scan", sl.Err(err))

			status, msg := scanerr.Status(err, "failed to open scanner")
			render.Status(r, status)

			resp := ScanResponse{Response: response.Error(msg)}
			if errors.Is(err, redeem.ErrBusy) {
				resp.Scan = &snap
			}
			render.JSON(w, r, resp)
			return
		}

		log.Info("scan submitted", slog.String("payload", req.Payload))

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, ScanResponse{
			Response: response.OK(),
			Scan:     &snap,
		})
	}
}
