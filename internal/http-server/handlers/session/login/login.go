package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"maCentral/internal/lib/api/response"
	"maCentral/internal/lib/api/upstream"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Authenticator
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) error
}

func New(log *slog.Logger, auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.session.login.New"

		log := log.With(
			slog.String("op", op),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		// the password never reaches the log
		log.Info("request body decoded", slog.String("username", req.Username))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		err = auth.Login(r.Context(), models.Credentials{Username: req.Username, Password: req.Password})
		if err != nil {
			log.Error("login failed", sl.Err(err))

			status := upstream.Status(err)
			if _, ok := macsvc.StatusCode(err); ok {
				status = http.StatusUnauthorized
			}

			render.Status(r, status)
			render.JSON(w, r, response.Error(macsvc.AdminLoginMessages.For(err)))

			return
		}

		log.Info("admin logged in", slog.String("username", req.Username))

		render.JSON(w, r, response.OK())
	}
}
