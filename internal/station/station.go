// Package station runs the admin scan station: one redemption flow per
// event, backed by the admin session and an optional scan journal.
package station

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"
	"maCentral/internal/redeem"
	"maCentral/internal/session"
)

const DefaultHistoryLimit = 50

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEventExpired    = errors.New("event has ended")
	ErrScannerNotOpen  = errors.New("no scanner open for event")
	ErrJournalDisabled = errors.New("scan journal is not configured")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Backend
type Backend interface {
	ConsumeTicket(ctx context.Context, eventID int64, ticket string) error
	CreateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, eventID int64) error
	IssueTicket(ctx context.Context, attendeeID, eventID int64) (models.Ticket, error)
	Leaderboard(ctx context.Context, top int) ([]models.UserPoints, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Journal
type Journal interface {
	SaveScan(rec models.ScanRecord) (string, error)
	GetScans(eventID int64, limit int) ([]models.ScanRecord, error)
}

type Option func(*Station)

func WithJournal(j Journal) Option {
	return func(s *Station) {
		s.journal = j
	}
}

func WithCue(c redeem.Cue) Option {
	return func(s *Station) {
		s.cue = c
	}
}

func WithResetDelay(d time.Duration) Option {
	return func(s *Station) {
		s.resetDelay = d
	}
}

// WithCapture binds a capture source to the flow of eventID.
func WithCapture(eventID int64, c redeem.Capture) Option {
	return func(s *Station) {
		s.captures[eventID] = c
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Station) {
		s.now = now
	}
}

type Station struct {
	log     *slog.Logger
	session *session.Session
	backend Backend
	journal Journal
	cue     redeem.Cue

	resetDelay time.Duration
	captures   map[int64]redeem.Capture
	now        func() time.Time

	mu    sync.Mutex
	flows map[int64]*redeem.Flow
}

func New(log *slog.Logger, sess *session.Session, backend Backend, opts ...Option) *Station {
	s := &Station{
		log:        log.With(slog.String("component", "station")),
		session:    sess,
		backend:    backend,
		resetDelay: redeem.DefaultResetDelay,
		captures:   make(map[int64]redeem.Capture),
		now:        time.Now,
		flows:      make(map[int64]*redeem.Flow),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Station) Status() session.Status {
	return s.session.Status()
}

func (s *Station) Valid() bool {
	return s.session.Valid()
}

func (s *Station) Login(ctx context.Context, creds models.Credentials) error {
	return s.session.Login(ctx, creds)
}

// Logout ends the admin session and closes every open scanner.
func (s *Station) Logout(ctx context.Context) error {
	s.closeFlows()

	return s.session.Logout(ctx)
}

// ListEvents refreshes the event cache. all selects every event instead of
// upcoming ones only.
func (s *Station) ListEvents(ctx context.Context, all bool) ([]models.Event, error) {
	scope := macsvc.ScopeFuture
	if all {
		scope = macsvc.ScopeAll
	}

	return s.session.RefreshEvents(ctx, scope)
}

// Now is the station clock in epoch milliseconds.
func (s *Station) Now() int64 {
	return s.now().UnixMilli()
}

func (s *Station) CreateEvent(ctx context.Context, event models.Event) error {
	const op = "station.CreateEvent"

	if err := s.backend.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.session.RefreshEvents(ctx, macsvc.ScopeAll); err != nil {
		s.log.Warn("failed to refresh events after create", sl.Err(err))
	}

	return nil
}

func (s *Station) DeleteEvent(ctx context.Context, eventID int64) error {
	const op = "station.DeleteEvent"

	if err := s.backend.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	flow, ok := s.flows[eventID]
	delete(s.flows, eventID)
	s.mu.Unlock()

	if ok {
		flow.Close()
	}

	if _, err := s.session.RefreshEvents(ctx, macsvc.ScopeAll); err != nil {
		s.log.Warn("failed to refresh events after delete", sl.Err(err))
	}

	return nil
}

func (s *Station) IssueTicket(ctx context.Context, attendeeID, eventID int64) (models.Ticket, error) {
	const op = "station.IssueTicket"

	ticket, err := s.backend.IssueTicket(ctx, attendeeID, eventID)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("%s: %w", op, err)
	}

	return ticket, nil
}

func (s *Station) Leaderboard(ctx context.Context, top int) ([]models.UserPoints, error) {
	const op = "station.Leaderboard"

	board, err := s.backend.Leaderboard(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return board, nil
}

// SubmitScan opens the scanner of eventID if needed and submits payload.
func (s *Station) SubmitScan(ctx context.Context, eventID int64, payload string) (redeem.Snapshot, error) {
	const op = "station.SubmitScan"

	flow, err := s.open(ctx, eventID)
	if err != nil {
		return redeem.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	if err = flow.Submit(payload); err != nil {
		return flow.Snapshot(), fmt.Errorf("%s: %w", op, err)
	}

	return flow.Snapshot(), nil
}

// ScanState opens the scanner of eventID if needed and returns its state.
func (s *Station) ScanState(ctx context.Context, eventID int64) (redeem.Snapshot, error) {
	const op = "station.ScanState"

	flow, err := s.open(ctx, eventID)
	if err != nil {
		return redeem.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return flow.Snapshot(), nil
}

func (s *Station) CancelScan(eventID int64) (redeem.Snapshot, error) {
	flow, ok := s.flow(eventID)
	if !ok {
		return redeem.Snapshot{}, ErrScannerNotOpen
	}

	flow.Cancel()

	return flow.Snapshot(), nil
}

func (s *Station) DismissScan(eventID int64) (redeem.Snapshot, error) {
	flow, ok := s.flow(eventID)
	if !ok {
		return redeem.Snapshot{}, ErrScannerNotOpen
	}

	if err := flow.Dismiss(); err != nil {
		return flow.Snapshot(), err
	}

	return flow.Snapshot(), nil
}

// ScanHistory returns journaled scans for eventID, newest first.
func (s *Station) ScanHistory(eventID int64, limit int) ([]models.ScanRecord, error) {
	const op = "station.ScanHistory"

	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	scans, err := s.journal.GetScans(eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return scans, nil
}

// Close shuts every scanner down and waits for their requests.
func (s *Station) Close() {
	s.closeFlows()
}

func (s *Station) flow(eventID int64) (*redeem.Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[eventID]

	return flow, ok
}

// open returns the flow of eventID, creating it for a known, unexpired
// event. An unknown id triggers one refresh of the full event list.
func (s *Station) open(ctx context.Context, eventID int64) (*redeem.Flow, error) {
	if flow, ok := s.flow(eventID); ok {
		return flow, nil
	}

	event, ok := s.session.Event(eventID)
	if !ok {
		if _, err := s.session.RefreshEvents(ctx, macsvc.ScopeAll); err != nil {
			return nil, err
		}
		if event, ok = s.session.Event(eventID); !ok {
			return nil, ErrEventNotFound
		}
	}

	if event.Expired(s.Now()) {
		return nil, ErrEventExpired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if flow, ok := s.flows[eventID]; ok {
		return flow, nil
	}

	flow := redeem.New(s.backend, eventID,
		redeem.WithResetDelay(s.resetDelay),
		redeem.WithCue(s.cue),
		redeem.WithCapture(s.captures[eventID]),
		redeem.WithReporter(s.record),
		redeem.WithDescriber(macsvc.ConsumeMessages.For),
		redeem.WithLogger(s.log),
	)
	s.flows[eventID] = flow

	s.log.Info("scanner opened", slog.Int64("event_id", eventID), slog.String("title", event.Title))

	return flow, nil
}

func (s *Station) record(out redeem.Outcome) {
	rec := models.ScanRecord{
		EventID:   out.EventID,
		Payload:   out.Payload,
		Detail:    out.Detail,
		CreatedAt: out.At,
	}

	switch {
	case out.Cancelled:
		rec.Outcome = models.ScanCancelled
	case out.State == redeem.Valid:
		rec.Outcome = models.ScanValid
	default:
		rec.Outcome = models.ScanInvalid
	}

	s.log.Info("scan finished",
		slog.Int64("event_id", rec.EventID),
		slog.String("payload", rec.Payload),
		slog.String("outcome", rec.Outcome),
	)

	if s.journal == nil {
		return
	}

	if _, err := s.journal.SaveScan(rec); err != nil {
		s.log.Error("failed to journal scan", sl.Err(err))
	}
}

func (s *Station) closeFlows() {
	s.mu.Lock()
	flows := s.flows
	s.flows = make(map[int64]*redeem.Flow)
	s.mu.Unlock()

	for _, flow := range flows {
		flow.Close()
	}
}
