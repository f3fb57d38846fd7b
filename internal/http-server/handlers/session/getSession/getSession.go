package getSession

import (
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/session"

	"github.com/go-chi/render"
)

type SessionResponse struct {
	response.Response
	Session session.Status `json:"session"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusGetter
type StatusGetter interface {
	Status() session.Status
}

func New(log *slog.Logger, getter StatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.getSession.New"

		log := log.With(slog.String("op", op))

		status := getter.Status()

		log.Debug("session status", slog.Bool("valid", status.Valid))

		render.JSON(w, r, SessionResponse{
			Response: response.OK(),
			Session:  status,
		})
	}
}
