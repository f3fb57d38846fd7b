// Package mwsession rejects requests while the admin session is invalid.
package mwsession

import (
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"

	"github.com/go-chi/render"
)

type Gate interface {
	Valid() bool
}

func New(log *slog.Logger, gate Gate) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/session"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			if !gate.Valid() {
				log.Warn("request without a valid session", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not logged in"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
