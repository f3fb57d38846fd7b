package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"
	"maCentral/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	eventsMessages = macsvc.Messages{Fallback: "failed to load events"}
	ticketMessages = macsvc.Messages{Fallback: "failed to load tickets"}
	boardMessages  = macsvc.Messages{Fallback: "failed to load the leaderboard"}
	passMessages   = macsvc.Messages{Fallback: "failed to download the wallet pass"}
	chatMessages   = macsvc.Messages{Fallback: "the assistant is unavailable"}
)

func runLogin(ctx context.Context, a *app, args []string) error {
	var passwordFile string

	fs := a.flags("login")
	fs.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ma-central login [--password-file FILE] <username>")
	}

	password, err := a.readPassword(passwordFile)
	if err != nil {
		return err
	}

	username := fs.Arg(0)

	if err = a.session.Login(ctx, models.Credentials{Username: username, Password: password}); err != nil {
		if !a.session.Valid() {
			return a.fail(macsvc.LoginMessages, err)
		}
		a.warn("logged in, but your profile could not be loaded")
	}

	if err = a.jar.Err(); err != nil {
		return fmt.Errorf("logged in, but the session could not be saved: %w", err)
	}

	a.greet(username)

	return nil
}

func runCreateAccount(ctx context.Context, a *app, args []string) error {
	var (
		account      models.NewAccount
		passwordFile string
	)

	fs := a.flags("create-account")
	fs.StringVar(&account.StudentID, "student-id", "", "your student id")
	fs.StringVar(&account.FullName, "full-name", "", "your full name")
	fs.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || account.StudentID == "" || account.FullName == "" {
		return errors.New("usage: ma-central create-account --student-id ID --full-name NAME [--password-file FILE] <username>")
	}

	account.Username = fs.Arg(0)

	password, err := a.readPassword(passwordFile)
	if err != nil {
		return err
	}
	account.Password = password

	if err = a.session.CreateAccount(ctx, account); err != nil {
		if !a.session.Valid() {
			return a.fail(macsvc.AccountCreateMessages, err)
		}
		a.warn("account created, but your profile could not be loaded")
	}

	if err = a.jar.Err(); err != nil {
		return fmt.Errorf("account created, but the session could not be saved: %w", err)
	}

	a.greet(account.Username)

	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("failed to forget the stored session: %w", err)
	}

	fmt.Fprintln(a.out, "logged out")

	return nil
}

func runDeleteAccount(ctx context.Context, a *app, args []string) error {
	var (
		passwordFile string
		yes          bool
	)

	fs := a.flags("delete-account")
	fs.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
	fs.BoolVar(&yes, "yes", false, "confirm the deletion")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ma-central delete-account --yes [--password-file FILE] <username>")
	}
	if a.session.IsGuest() {
		return session.ErrGuest
	}
	if !yes {
		return errors.New("account deletion cannot be undone: pass --yes to confirm")
	}

	password, err := a.readPassword(passwordFile)
	if err != nil {
		return err
	}

	if err = a.session.DeleteAccount(ctx, models.Credentials{Username: fs.Arg(0), Password: password}); err != nil {
		return a.fail(macsvc.DeleteAccountMessages, err)
	}

	fmt.Fprintln(a.out, "account deleted")

	return nil
}

func runWhoAmI(ctx context.Context, a *app, _ []string) error {
	if a.session.IsGuest() {
		fmt.Fprintln(a.out, "Guest (not logged in)")
		return nil
	}

	user, err := a.session.RefreshUser(ctx)
	if err != nil {
		return a.fail(macsvc.LoginMessages, err)
	}

	printUser(a.out, user)

	return nil
}

func runEvents(ctx context.Context, a *app, args []string) error {
	var (
		all    bool
		search string
	)

	fs := a.flags("events")
	fs.BoolVar(&all, "all", false, "include past events")
	fs.StringVarP(&search, "search", "s", "", "only events whose title, location or date contain this text")
	if err := parse(fs, args); err != nil {
		return err
	}

	scope := macsvc.ScopeFuture
	if all {
		scope = macsvc.ScopeAll
	}

	events, err := a.session.RefreshEvents(ctx, scope)
	if err != nil {
		return a.fail(eventsMessages, err)
	}

	events = models.Filter(events, search, a.loc)
	if len(events) == 0 {
		fmt.Fprintln(a.out, "no events")
		return nil
	}

	return printEvents(a.out, events, a.now().UnixMilli(), a.loc, a.paint)
}

func runBuy(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: ma-central buy <event_id>")
	}
	if a.session.IsGuest() {
		return session.ErrGuest
	}

	eventID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || eventID <= 0 {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	if event, ok := a.lookupEvent(ctx, eventID); ok {
		nowMs := a.now().UnixMilli()
		if event.Expired(nowMs) {
			return errors.New("this event has ended")
		}
		if !event.OnSale(nowMs) {
			return errors.New(macsvc.PurchaseMessages.ByStatus[http.StatusLocked])
		}
	}

	ticket, err := a.client.CreateTicket(ctx, eventID)
	if err != nil {
		return a.fail(macsvc.PurchaseMessages, err)
	}

	if ticket.ID != 0 {
		fmt.Fprintf(a.out, "%s ticket %d for event %d\n", a.paint(color.FgGreen, "got"), ticket.ID, eventID)
	} else {
		fmt.Fprintf(a.out, "%s a ticket for event %d\n", a.paint(color.FgGreen, "got"), eventID)
	}

	if user, err := a.session.RefreshUser(ctx); err == nil {
		fmt.Fprintf(a.out, "you have %d points left\n", user.Score)
	}

	return nil
}

func runTickets(ctx context.Context, a *app, _ []string) error {
	if a.session.IsGuest() {
		return session.ErrGuest
	}

	tickets, err := a.session.RefreshTickets(ctx)
	if err != nil {
		return a.fail(ticketMessages, err)
	}

	if len(tickets) == 0 {
		fmt.Fprintln(a.out, "no tickets")
		return nil
	}

	titles := make(map[int64]string)
	if events, err := a.session.RefreshEvents(ctx, macsvc.ScopeAll); err == nil {
		for _, e := range events {
			titles[e.ID] = e.Title
		}
	} else {
		a.log.Debug("event titles unavailable", sl.Err(err))
	}

	return printTickets(a.out, tickets, titles, a.paint)
}

func runLeaderboard(ctx context.Context, a *app, args []string) error {
	var top int

	fs := a.flags("leaderboard")
	fs.IntVar(&top, "top", 10, "number of rows, 0 for all")
	if err := parse(fs, args); err != nil {
		return err
	}
	if top < 0 {
		return errors.New("--top must not be negative")
	}

	board, err := a.client.Leaderboard(ctx, top)
	if err != nil {
		return a.fail(boardMessages, err)
	}

	var self int64 = -1
	if user, ok := a.session.User(); ok && !user.IsGuest() {
		self = user.ID
	}

	return printLeaderboard(a.out, board, self, a.paint)
}

func runPass(ctx context.Context, a *app, args []string) error {
	var out string

	fs := a.flags("pass")
	fs.StringVarP(&out, "out", "o", "ma-central.pkpass", "where to save the pass")
	if err := parse(fs, args); err != nil {
		return err
	}
	if a.session.IsGuest() {
		return session.ErrGuest
	}

	data, err := a.client.WalletPass(ctx)
	if err != nil {
		return a.fail(passMessages, err)
	}

	if err = os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("failed to save the wallet pass: %w", err)
	}

	fmt.Fprintf(a.out, "saved wallet pass to %s\n", out)

	return nil
}

func runChat(ctx context.Context, a *app, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return errors.New("usage: ma-central chat <question>")
	}

	completion, err := a.client.Chat(ctx, prompt)
	if err != nil {
		return a.fail(chatMessages, err)
	}

	answer := completion.Answer()
	if answer == "" {
		answer = "(no answer)"
	}

	fmt.Fprintln(a.out, answer)

	return nil
}

func (a *app) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.errOut)

	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errUsage
		}
		return err
	}

	return nil
}

// fail logs the cause and returns the text the user should see.
func (a *app) fail(msgs macsvc.Messages, err error) error {
	a.log.Debug("request failed", sl.Err(err))

	if errors.Is(err, session.ErrGuest) {
		return err
	}

	return errors.New(msgs.For(err))
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintln(a.errOut, a.paint(color.FgYellow, fmt.Sprintf(format, args...)))
}

func (a *app) greet(username string) {
	fmt.Fprintf(a.out, "%s as %s\n", a.paint(color.FgGreen, "logged in"), username)

	if user, ok := a.session.User(); ok {
		fmt.Fprintf(a.out, "you have %d points\n", user.Score)
	}
}

func (a *app) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if a.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c.Sprint(s)
}

// lookupEvent finds eventID in the full event list, ignoring failures.
func (a *app) lookupEvent(ctx context.Context, eventID int64) (models.Event, bool) {
	if _, err := a.session.RefreshEvents(ctx, macsvc.ScopeAll); err != nil {
		a.log.Debug("event list unavailable", sl.Err(err))
		return models.Event{}, false
	}

	return a.session.Event(eventID)
}

func (a *app) readPassword(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		password := strings.TrimRight(string(data), "\r\n")
		if password == "" {
			return "", fmt.Errorf("%s is empty", file)
		}
		return password, nil
	}

	fd := int(a.in.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for password prompt (use --password-file)")
	}

	fmt.Fprint(a.errOut, "Password: ")
	data, err := term.ReadPassword(fd)
	fmt.Fprintln(a.errOut)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty password")
	}

	return string(data), nil
}
