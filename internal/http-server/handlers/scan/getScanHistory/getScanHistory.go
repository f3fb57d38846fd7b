package getScanHistory

import (
	"log/slog"
	"net/http"

	"maCentral/internal/http-server/handlers/scan/scanerr"
	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/urlparam"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/models"

	"github.com/go-chi/render"
)

const maxLimit = 500

type HistoryResponse struct {
	response.Response
	Scans []models.ScanRecord `json:"scans"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ScanHistoryGetter
type ScanHistoryGetter interface {
	ScanHistory(eventID int64, limit int) ([]models.ScanRecord, error)
}

func New(log *slog.Logger, getter ScanHistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scan.getScanHistory.New"

		log := log.With(slog.String("op", op))

		eventID, err := urlparam.Int64(r, "id")
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))
			return
		}

		limit, err := urlparam.QueryInt(r, "limit", 0)
		if err != nil || limit > maxLimit {
			log.Error("invalid limit", slog.String("limit", r.URL.Query().Get("limit")))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		scans, err := getter.ScanHistory(eventID, limit)
		if err != nil {
			log.Error("failed to get scan history", sl.Err(err))

			status, msg := scanerr.Status(err, "failed to get scan history")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("scan history retrieved", slog.Int("count", len(scans)))

		if scans == nil {
			scans = []models.ScanRecord{}
		}

		render.JSON(w, r, HistoryResponse{
			Response: response.OK(),
			Scans:    scans,
		})
	}
}
