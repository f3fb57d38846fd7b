// Package session holds the process-wide client state: whether the session
// is valid, who the user is, and the last fetched event and ticket lists.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"
)

var (
	ErrGuest           = errors.New("not available to guests")
	ErrGuestNotAllowed = errors.New("guest access is only available in user mode")
	ErrNoSession       = errors.New("not logged in")
)

type Mode int

const (
	ModeUser Mode = iota
	ModeAdmin
)

func (m Mode) String() string {
	if m == ModeAdmin {
		return "admin"
	}
	return "user"
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Backend
type Backend interface {
	AdminCheck(ctx context.Context) error
	Login(ctx context.Context, creds models.Credentials) error
	LoginAdmin(ctx context.Context, creds models.Credentials) error
	CreateAccount(ctx context.Context, account models.NewAccount) error
	WhoAmI(ctx context.Context) (models.UserPoints, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context, creds models.Credentials) error
	Events(ctx context.Context, scope macsvc.Scope) ([]models.Event, error)
	UserTickets(ctx context.Context) ([]models.Ticket, error)
}

// CookieStore is the persisted session cookie.
type CookieStore interface {
	Clear() error
}

type Status struct {
	Valid bool               `json:"valid"`
	Mode  string             `json:"mode"`
	Guest bool               `json:"guest"`
	User  *models.UserPoints `json:"user,omitempty"`
}

type Session struct {
	log     *slog.Logger
	backend Backend
	mode    Mode
	cookies CookieStore

	mu      sync.RWMutex
	valid   bool
	user    *models.UserPoints
	events  []models.Event
	tickets []models.Ticket
}

// New returns an invalid session. cookies may be nil.
func New(log *slog.Logger, backend Backend, mode Mode, cookies CookieStore) *Session {
	return &Session{
		log:     log.With(slog.String("component", "session"), slog.String("mode", mode.String())),
		backend: backend,
		mode:    mode,
		cookies: cookies,
	}
}

// Start restores a session from stored cookies: whoami in user mode, the
// admin check in admin mode.
func (s *Session) Start(ctx context.Context) error {
	const op = "session.Start"

	if s.mode == ModeAdmin {
		if err := s.backend.AdminCheck(ctx); err != nil {
			s.invalidate()
			return fmt.Errorf("%s: %w", op, err)
		}
		s.setValid(nil)
		s.log.Info("admin session restored")
		return nil
	}

	user, err := s.backend.WhoAmI(ctx)
	if err != nil {
		s.invalidate()
		return fmt.Errorf("%s: %w", op, err)
	}

	s.setValid(&user)
	s.log.Info("session restored", slog.Int64("user_id", user.ID))

	return nil
}

// Login authenticates and, in user mode, loads the user with whoami. The
// session stays valid if only the whoami call fails.
func (s *Session) Login(ctx context.Context, creds models.Credentials) error {
	const op = "session.Login"

	if s.mode == ModeAdmin {
		if err := s.backend.LoginAdmin(ctx, creds); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.setValid(nil)
		s.log.Info("admin logged in", slog.String("username", creds.Username))
		return nil
	}

	if err := s.backend.Login(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.setValid(nil)

	if _, err := s.RefreshUser(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("logged in", slog.String("username", creds.Username))

	return nil
}

// CreateAccount registers the account and logs into it.
func (s *Session) CreateAccount(ctx context.Context, account models.NewAccount) error {
	const op = "session.CreateAccount"

	if err := s.backend.CreateAccount(ctx, account); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account created", slog.String("username", account.Username))

	return s.Login(ctx, models.Credentials{Username: account.Username, Password: account.Password})
}

func (s *Session) ContinueAsGuest() error {
	if s.mode != ModeUser {
		return ErrGuestNotAllowed
	}

	guest := models.Guest()
	s.setValid(&guest)

	return nil
}

// Logout ends the session locally even when the server call fails. The
// returned error only reports a failure to clear stored cookies.
func (s *Session) Logout(ctx context.Context) error {
	const op = "session.Logout"

	if !s.IsGuest() {
		if err := s.backend.Logout(ctx); err != nil {
			s.log.Warn("server logout failed", sl.Err(err))
		}
	}

	s.invalidate()

	if err := s.clearCookies(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteAccount deletes the account and ends the session. On failure the
// session is left as it was.
func (s *Session) DeleteAccount(ctx context.Context, creds models.Credentials) error {
	const op = "session.DeleteAccount"

	if s.IsGuest() {
		return ErrGuest
	}

	if err := s.backend.DeleteAccount(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate()

	if err := s.clearCookies(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.valid
}

// User returns the current user. ok is false until one has been loaded.
func (s *Session) User() (models.UserPoints, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.UserPoints{}, false
	}

	return *s.user, true
}

func (s *Session) IsGuest() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.valid && s.user != nil && s.user.IsGuest()
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Valid: s.valid,
		Mode:  s.mode.String(),
		Guest: s.valid && s.user != nil && s.user.IsGuest(),
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}

	return st
}

// RefreshEvents replaces the cached event list. On failure the cache is
// emptied and the error returned.
func (s *Session) RefreshEvents(ctx context.Context, scope macsvc.Scope) ([]models.Event, error) {
	const op = "session.RefreshEvents"

	events, err := s.backend.Events(ctx, scope)

	s.mu.Lock()
	if err != nil {
		s.events = nil
	} else {
		s.events = events
	}
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return append([]models.Event(nil), events...), nil
}

func (s *Session) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Event(nil), s.events...)
}

// Event looks id up in the cached list.
func (s *Session) Event(id int64) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}

	return models.Event{}, false
}

func (s *Session) RefreshUser(ctx context.Context) (models.UserPoints, error) {
	const op = "session.RefreshUser"

	if s.IsGuest() {
		return models.UserPoints{}, ErrGuest
	}

	user, err := s.backend.WhoAmI(ctx)

	s.mu.Lock()
	if err != nil {
		s.user = nil
	} else {
		s.user = &user
	}
	s.mu.Unlock()

	if err != nil {
		return models.UserPoints{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Session) RefreshTickets(ctx context.Context) ([]models.Ticket, error) {
	const op = "session.RefreshTickets"

	if s.IsGuest() {
		return nil, ErrGuest
	}

	tickets, err := s.backend.UserTickets(ctx)

	s.mu.Lock()
	if err != nil {
		s.tickets = nil
	} else {
		s.tickets = tickets
	}
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return append([]models.Ticket(nil), tickets...), nil
}

func (s *Session) Tickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Ticket(nil), s.tickets...)
}

func (s *Session) setValid(user *models.UserPoints) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.valid = true
	s.user = user
}

func (s *Session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.valid = false
	s.user = nil
	s.events = nil
	s.tickets = nil
}

func (s *Session) clearCookies() error {
	if s.cookies == nil {
		return nil
	}

	return s.cookies.Clear()
}
