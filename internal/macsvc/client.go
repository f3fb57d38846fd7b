// Package macsvc is a client for the M-A Central services API.
//
// Authentication is a session cookie set by the login endpoints and sent
// back by the cookie jar attached to the client. No tokens travel in
// headers.
package macsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maCentral/internal/config"
	"maCentral/internal/models"
)

const apiPrefix = "/api/v1"

type Scope string

const (
	ScopeFuture Scope = "future"
	ScopeAll    Scope = "all"
)

type Client struct {
	log     *slog.Logger
	baseURL *url.URL
	http    *http.Client
}

// New builds a client for cfg.BaseURL. jar may be nil for an in-memory session.
func New(log *slog.Logger, cfg config.API, jar http.CookieJar) (*Client, error) {
	const op = "macsvc.New"

	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base url: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q must be absolute", op, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		log:     log.With(slog.String("component", "macsvc")),
		baseURL: u,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// BaseURL is the API origin cookies are scoped to.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) AdminCheck(ctx context.Context) error {
	_, err := c.do(ctx, "macsvc.AdminCheck", http.MethodGet, "/auth/admin", nil)
	return err
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) error {
	_, err := c.do(ctx, "macsvc.Login", http.MethodPost, "/auth/login", creds)
	return err
}

func (c *Client) LoginAdmin(ctx context.Context, creds models.Credentials) error {
	_, err := c.do(ctx, "macsvc.LoginAdmin", http.MethodPost, "/auth/login/admin", creds)
	return err
}

func (c *Client) CreateAccount(ctx context.Context, account models.NewAccount) error {
	_, err := c.do(ctx, "macsvc.CreateAccount", http.MethodPost, "/auth/create", account)
	return err
}

// WhoAmI returns the user behind the current session. The server answers
// either with a list of UserPoints or with a bare {"id": n} object.
func (c *Client) WhoAmI(ctx context.Context) (models.UserPoints, error) {
	const op = "macsvc.WhoAmI"

	body, err := c.do(ctx, op, http.MethodGet, "/auth/whoami", nil)
	if err != nil {
		return models.UserPoints{}, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var users []models.UserPoints
		if err = decode(op, trimmed, &users); err != nil {
			return models.UserPoints{}, err
		}
		if len(users) == 0 {
			return models.UserPoints{}, fmt.Errorf("%s: %w: empty user list", op, ErrDecode)
		}
		return users[0], nil
	}

	var user models.UserPoints
	if err = decode(op, trimmed, &user); err != nil {
		return models.UserPoints{}, err
	}

	return user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, "macsvc.Logout", http.MethodGet, "/auth/logout", nil)
	return err
}

func (c *Client) DeleteAccount(ctx context.Context, creds models.Credentials) error {
	_, err := c.do(ctx, "macsvc.DeleteAccount", http.MethodPost, "/auth/delete", creds)
	return err
}

// Events lists events in scope, sorted by ascending start time.
func (c *Client) Events(ctx context.Context, scope Scope) ([]models.Event, error) {
	const op = "macsvc.Events"

	if scope != ScopeFuture && scope != ScopeAll {
		return nil, fmt.Errorf("%s: unknown scope %q", op, scope)
	}

	body, err := c.do(ctx, op, http.MethodGet, "/events/"+string(scope), nil)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err = decode(op, body, &events); err != nil {
		return nil, err
	}

	models.SortByStart(events)

	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, event models.Event) error {
	_, err := c.do(ctx, "macsvc.CreateEvent", http.MethodPost, "/manage/events/create", event)
	return err
}

func (c *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	path := "/manage/events/delete/" + strconv.FormatInt(eventID, 10)
	_, err := c.do(ctx, "macsvc.DeleteEvent", http.MethodDelete, path, nil)
	return err
}

// CreateTicket buys a ticket to eventID for the session user.
func (c *Client) CreateTicket(ctx context.Context, eventID int64) (models.Ticket, error) {
	const op = "macsvc.CreateTicket"

	path := "/user/tickets_create/" + strconv.FormatInt(eventID, 10)

	return c.ticket(ctx, op, path)
}

// IssueTicket creates a ticket to eventID on behalf of attendeeID.
func (c *Client) IssueTicket(ctx context.Context, attendeeID, eventID int64) (models.Ticket, error) {
	const op = "macsvc.IssueTicket"

	path := "/admin/tickets_create/" + strconv.FormatInt(attendeeID, 10) + "/" + strconv.FormatInt(eventID, 10)

	return c.ticket(ctx, op, path)
}

func (c *Client) ticket(ctx context.Context, op, path string) (models.Ticket, error) {
	body, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return models.Ticket{}, err
	}

	var t models.Ticket
	if len(bytes.TrimSpace(body)) == 0 {
		return t, nil
	}
	if err = decode(op, body, &t); err != nil {
		return models.Ticket{}, err
	}

	return t, nil
}

func (c *Client) UserTickets(ctx context.Context) ([]models.Ticket, error) {
	const op = "macsvc.UserTickets"

	body, err := c.do(ctx, op, http.MethodGet, "/user/tickets", nil)
	if err != nil {
		return nil, err
	}

	var tickets []models.Ticket
	if err = decode(op, body, &tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// ConsumeTicket redeems a scanned payload at eventID. The payload is opaque
// and sent as a single escaped path segment. Any non-200 answer is an error;
// failure codes are not distinguished.
func (c *Client) ConsumeTicket(ctx context.Context, eventID int64, ticket string) error {
	path := "/admin/consume_ticket/" + strconv.FormatInt(eventID, 10) + "/" + url.PathEscape(ticket)
	_, err := c.do(ctx, "macsvc.ConsumeTicket", http.MethodGet, path, nil)
	return err
}

// Leaderboard returns the lifetime leaderboard, truncated to top entries when top > 0.
func (c *Client) Leaderboard(ctx context.Context, top int) ([]models.UserPoints, error) {
	const op = "macsvc.Leaderboard"

	body, err := c.do(ctx, op, http.MethodGet, "/board/lifetime/top", nil)
	if err != nil {
		return nil, err
	}

	var board []models.UserPoints
	if err = decode(op, body, &board); err != nil {
		return nil, err
	}

	if top > 0 && len(board) > top {
		board = board[:top]
	}

	return board, nil
}

// WalletPass downloads the session user's pkpass archive.
func (c *Client) WalletPass(ctx context.Context) ([]byte, error) {
	body, err := c.do(ctx, "macsvc.WalletPass", http.MethodGet, "/user/get_user_id/pkpass", nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("macsvc.WalletPass: %w: empty pass", ErrDecode)
	}

	return body, nil
}

func (c *Client) Chat(ctx context.Context, prompt string) (models.ChatCompletion, error) {
	const op = "macsvc.Chat"

	body, err := c.do(ctx, op, http.MethodPost, "/chatbot", models.ChatRequest{Prompt: prompt})
	if err != nil {
		return models.ChatCompletion{}, err
	}

	var completion models.ChatCompletion
	if err = decode(op, body, &completion); err != nil {
		return models.ChatCompletion{}, err
	}

	return completion, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	log := c.log.With(slog.String("op", op))

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	// path segments are escaped by the callers
	target := c.baseURL.String() + apiPrefix + path

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: read body: %w", op, ErrTransport, err)
	}

	log.Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: op, Code: resp.StatusCode}
	}

	return body, nil
}

func decode(op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrDecode, err)
	}

	return nil
}
