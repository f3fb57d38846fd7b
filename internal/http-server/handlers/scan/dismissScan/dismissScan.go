package dismissScan

import (
	"log/slog"
	"net/http"

	"maCentral/internal/http-server/handlers/scan/scanerr"
	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/urlparam"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/redeem"

	"github.com/go-chi/render"
)

type ScanResponse struct {
	response.Response
	Scan *redeem.Snapshot `json:"scan,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ScanDismisser
type ScanDismisser interface {
	DismissScan(eventID int64) (redeem.Snapshot, error)
}

func New(log *slog.Logger, dismisser ScanDismisser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scan.dismissScan.New"

		log := log.With(slog.String("op", op))

		eventID, err := urlparam.Int64(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		snap, err := dismisser.DismissScan(eventID)
		if err != nil {
			log.Error("failed to dismiss scan", sl.Err(err))

			status, msg := scanerr.Status(err, "failed to dismiss scan")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("scan dismissed")

		render.JSON(w, r, ScanResponse{
			Response: response.OK(),
			Scan:     &snap,
		})
	}
}
