package getLeaderboard

import (
	"context"
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/upstream"
	"maCentral/internal/lib/api/urlparam"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/models"

	"github.com/go-chi/render"
)

const defaultTop = 10

type LeaderboardResponse struct {
	response.Response
	Leaderboard []models.UserPoints `json:"leaderboard"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=LeaderboardGetter
type LeaderboardGetter interface {
	Leaderboard(ctx context.Context, top int) ([]models.UserPoints, error)
}

// New serves the lifetime leaderboard. ?top=0 returns every row.
func New(log *slog.Logger, getter LeaderboardGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.board.getLeaderboard.New"

		log := log.With(slog.String("op", op))

		top, err := urlparam.QueryInt(r, "top", defaultTop)
		if err != nil {
			log.Error("invalid top", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid top"))
			return
		}

		board, err := getter.Leaderboard(r.Context(), top)
		if err != nil {
			log.Error("failed to get leaderboard", sl.Err(err))
			render.Status(r, upstream.Status(err))
			render.JSON(w, r, response.Error("failed to get leaderboard"))
			return
		}

		log.Info("leaderboard retrieved", slog.Int("count", len(board)))

		if board == nil {
			board = []models.UserPoints{}
		}

		render.JSON(w, r, LeaderboardResponse{
			Response:    response.OK(),
			Leaderboard: board,
		})
	}
}
