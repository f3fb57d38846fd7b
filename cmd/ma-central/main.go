// Command ma-central is the student client of the M-A Central services:
// events, tickets, points, the wallet pass and the assistant.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"maCentral/internal/config"
	"maCentral/internal/lib/cookiefile"
	"maCentral/internal/lib/logger/handlers/slogpretty"
	"maCentral/internal/macsvc"
	"maCentral/internal/session"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		}
		os.Exit(1)
	}
}

type command struct {
	summary string
	// session commands need a stored session or --guest
	session bool
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":          {summary: "log in and remember the session", run: runLogin},
	"create-account": {summary: "register a student account and log in", run: runCreateAccount},
	"logout":         {summary: "end the session and forget it", session: true, run: runLogout},
	"delete-account": {summary: "delete the account behind the session", session: true, run: runDeleteAccount},
	"whoami":         {summary: "show the user and their points", session: true, run: runWhoAmI},
	"events":         {summary: "list events", session: true, run: runEvents},
	"buy":            {summary: "get a ticket to an event", session: true, run: runBuy},
	"tickets":        {summary: "list your tickets", session: true, run: runTickets},
	"leaderboard":    {summary: "show the lifetime points leaderboard", session: true, run: runLeaderboard},
	"pass":           {summary: "download your wallet pass", session: true, run: runPass},
	"chat":           {summary: "ask the campus assistant", session: true, run: runChat},
}

// app carries everything a command needs for one invocation.
type app struct {
	in      *os.File
	out     io.Writer
	errOut  io.Writer
	log     *slog.Logger
	client  *macsvc.Client
	session *session.Session
	jar     *cookiefile.Jar
	colored bool
	now     func() time.Time
	loc     *time.Location
}

func run(args []string, in *os.File, out, errOut io.Writer) error {
	var (
		configPath string
		guest      bool
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("ma-central", pflag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.SetInterspersed(false)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to the YAML config (default: $CONFIG_PATH)")
	flagSet.BoolVar(&guest, "guest", false, "browse without an account")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
	flagSet.Usage = func() { printUsage(errOut, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	if flagSet.NArg() == 0 {
		printUsage(errOut, flagSet)
		return errUsage
	}

	name, rest := flagSet.Arg(0), flagSet.Args()[1:]

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := setupLogger(cfg.Env, errOut, verbose)

	a, err := newApp(log, cfg, in, out, errOut)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cmd.session {
		if err = a.resume(ctx, guest); err != nil {
			return err
		}
	} else if guest {
		return fmt.Errorf("%s cannot be used with --guest", name)
	}

	return cmd.run(ctx, a, rest)
}

func newApp(log *slog.Logger, cfg *config.Config, in *os.File, out, errOut io.Writer) (*app, error) {
	probe, err := macsvc.New(log, cfg.API, nil)
	if err != nil {
		return nil, err
	}

	jar, err := cookiefile.Open(cfg.SessionFile, probe.BaseURL())
	if err != nil {
		return nil, err
	}

	client, err := macsvc.New(log, cfg.API, jar)
	if err != nil {
		return nil, err
	}

	colored := false
	if f, ok := out.(*os.File); ok {
		colored = term.IsTerminal(int(f.Fd()))
	}

	return &app{
		in:      in,
		out:     out,
		errOut:  errOut,
		log:     log,
		client:  client,
		session: session.New(log, client, session.ModeUser, jar),
		jar:     jar,
		colored: colored,
		now:     time.Now,
		loc:     time.Local,
	}, nil
}

// resume restores the stored session, or starts a guest one.
func (a *app) resume(ctx context.Context, guest bool) error {
	if guest {
		return a.session.ContinueAsGuest()
	}

	if err := a.session.Start(ctx); err != nil {
		a.log.Debug("session not restored", slog.String("error", err.Error()))

		if code, ok := macsvc.StatusCode(err); ok && (code == http.StatusUnauthorized || code == http.StatusForbidden) {
			return errors.New("not logged in: run `ma-central login`, or pass --guest")
		}
		return errors.New(macsvc.LoginMessages.For(err))
	}

	return nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage:\n  ma-central [flags] <command> [command flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-16s %s\n", name, commands[name].summary)
	}
	b.WriteString("\nFlags:\n")
	b.WriteString(flagSet.FlagUsages())

	fmt.Fprint(w, b.String())
}

func setupLogger(env string, w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	if env == "local" {
		pretty := slogpretty.PrettyHandlerOptions{SlogOpts: opts}
		return slog.New(pretty.NewPrettyHandler(w))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}
