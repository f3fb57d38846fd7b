package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maCentral/internal/capture"
	"maCentral/internal/config"
	"maCentral/internal/cue"
	"maCentral/internal/http-server/handlers/board/getLeaderboard"
	"maCentral/internal/http-server/handlers/event/createEvent"
	"maCentral/internal/http-server/handlers/event/deleteEvent"
	"maCentral/internal/http-server/handlers/event/getEvents"
	"maCentral/internal/http-server/handlers/scan/cancelScan"
	"maCentral/internal/http-server/handlers/scan/dismissScan"
	"maCentral/internal/http-server/handlers/scan/getScanHistory"
	"maCentral/internal/http-server/handlers/scan/getScanState"
	"maCentral/internal/http-server/handlers/scan/submitScan"
	"maCentral/internal/http-server/handlers/session/getSession"
	"maCentral/internal/http-server/handlers/session/login"
	"maCentral/internal/http-server/handlers/session/logout"
	"maCentral/internal/http-server/handlers/ticket/issueTicket"
	"maCentral/internal/http-server/middleware/mwlogger"
	"maCentral/internal/http-server/middleware/mwsession"
	"maCentral/internal/lib/cookiefile"
	"maCentral/internal/lib/logger/handlers/slogpretty"
	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/macsvc"
	"maCentral/internal/session"
	"maCentral/internal/station"
	"maCentral/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	configPath := pflag.StringP("config", "c", "", "path to the YAML config (default: $CONFIG_PATH)")
	pflag.Parse()

	cfg := config.MustLoad(*configPath)

	log := setupLogger(cfg.Env)

	log.Info("starting ma-central admin station", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	client, jar, err := setupClient(log, cfg)
	if err != nil {
		log.Error("failed to init macsvc client", sl.Err(err))
		os.Exit(1)
	}

	sess := session.New(log, client, session.ModeAdmin, jar)

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.API.Timeout)
	if err = sess.Start(startCtx); err != nil {
		log.Warn("no stored admin session, log in through /session/login", sl.Err(err))
	}
	cancelStart()

	opts := []station.Option{
		station.WithResetDelay(cfg.Scanner.ResetDelay),
		station.WithCue(cue.Multi{
			cue.NewTerminal(os.Stdout, term.IsTerminal(int(os.Stdout.Fd()))),
			cue.NewLog(log),
		}),
	}

	var storage *postgres.Storage
	if cfg.Database.Enabled() {
		storage, err = postgres.InitDB(&cfg.Database)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}
		opts = append(opts, station.WithJournal(storage))
	} else {
		log.Info("scan journal disabled")
	}

	sw := &capture.Switch{}
	if cfg.Scanner.StdinEventID != 0 {
		opts = append(opts, station.WithCapture(cfg.Scanner.StdinEventID, sw))
	}

	st := station.New(log, sess, client, opts...)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/session", func(r chi.Router) {
		r.Get("/", getSession.New(log, st))
		r.Post("/login", login.New(log, st))
		r.Post("/logout", logout.New(log, st))
	})

	router.Group(func(r chi.Router) {
		r.Use(mwsession.New(log, st))

		r.Get("/events", getEvents.New(log, st))
		r.Post("/events", createEvent.New(log, st))
		r.Delete("/events/{id}", deleteEvent.New(log, st))
		r.Post("/events/{id}/tickets", issueTicket.New(log, st))
		r.Get("/events/{id}/scan", getScanState.New(log, st))
		r.Post("/events/{id}/scan", submitScan.New(log, st))
		r.Post("/events/{id}/scan/cancel", cancelScan.New(log, st))
		r.Post("/events/{id}/scan/dismiss", dismissScan.New(log, st))
		r.Get("/events/{id}/scans", getScanHistory.New(log, st))
		r.Get("/leaderboard", getLeaderboard.New(log, st))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	scanCtx, cancelScanner := context.WithCancel(context.Background())
	defer cancelScanner()

	if cfg.Scanner.StdinEventID != 0 {
		eventID := cfg.Scanner.StdinEventID
		scanner := capture.NewLineScanner(log, os.Stdin, sw, capture.SinkFunc(func(payload string) error {
			_, err := st.SubmitScan(scanCtx, eventID, payload)
			return err
		}))

		log.Info("reading scans from stdin", slog.Int64("event_id", eventID))

		go func() {
			if err := scanner.Run(scanCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("stdin scanner stopped", sl.Err(err))
			}
		}()
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	cancelScanner()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	st.Close()

	log.Info("application stopped")

	if storage != nil {
		if err = storage.Close(); err != nil {
			log.Error("failed to close postgres connection", sl.Err(err))
		}

		log.Info("postgres connection closed")
	}
}

func setupClient(log *slog.Logger, cfg *config.Config) (*macsvc.Client, *cookiefile.Jar, error) {
	probe, err := macsvc.New(log, cfg.API, nil)
	if err != nil {
		return nil, nil, err
	}

	jar, err := cookiefile.Open(cfg.SessionFile, probe.BaseURL())
	if err != nil {
		return nil, nil, err
	}

	client, err := macsvc.New(log, cfg.API, jar)
	if err != nil {
		return nil, nil, err
	}

	return client, jar, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
