package logout

import (
	"context"
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionCloser
type SessionCloser interface {
	Logout(ctx context.Context) error
}

func New(log *slog.Logger, closer SessionCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.logout.New"

		log := log.With(slog.String("op", op))

		if err := closer.Logout(r.Context()); err != nil {
			log.Error("failed to clear session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to clear session"))

			return
		}

		log.Info("logged out")

		render.JSON(w, r, response.OK())
	}
}
