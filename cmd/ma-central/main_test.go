package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"maCentral/internal/models"
	"maCentral/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCookie = "bear_tracks"

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	now := time.Now().UnixMilli()
	hour := time.Hour.Milliseconds()
	price := func(n int64) *int64 { return &n }

	type wireEvent struct {
		ID           int64  `json:"id"`
		StartTime    int64  `json:"start_time"`
		EndTime      int64  `json:"end_time"`
		Title        string `json:"title"`
		Location     string `json:"human_location"`
		PointReward  *int64 `json:"point_reward,omitempty"`
		TicketPrice  *int64 `json:"ticket_price,omitempty"`
		LastSaleDate *int64 `json:"last_sale_date,omitempty"`
	}

	all := []wireEvent{
		{ID: 7, StartTime: now + 48*hour, EndTime: now + 52*hour, Title: "Winter Formal", Location: "Gym",
			TicketPrice: price(25), LastSaleDate: price(now - hour)},
		{ID: 5, StartTime: now - hour, EndTime: now + hour, Title: "Homecoming", Location: "Stadium", PointReward: price(10)},
		{ID: 6, StartTime: now - 3*hour, EndTime: now - 2*hour, Title: "Finals Night", Location: "Library", PointReward: price(5)},
		{ID: 8, StartTime: now + 24*hour, EndTime: now + 25*hour, Title: "Spirit Rally",
			TicketPrice: price(5), LastSaleDate: price(now + 12*hour)},
	}

	writeJSON := func(w http.ResponseWriter, v any) {
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(sessionCookie)
			if err != nil || c.Value != "s3cr3t" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var creds models.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds.Username != "bear" || creds.Password != "hunter22" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "s3cr3t", Path: "/"})
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Post("/auth/create", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/auth/whoami", authed(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id":42,"username":"bear","lifetime":120,"score":80}]`))
		}))
		r.Get("/events/all", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, all)
		})
		r.Get("/events/future", func(w http.ResponseWriter, r *http.Request) {
			var future []wireEvent
			for _, e := range all {
				if e.EndTime > now {
					future = append(future, e)
				}
			}
			writeJSON(w, future)
		})
		r.Get("/user/tickets_create/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
			switch chi.URLParam(r, "id") {
			case "5":
				writeJSON(w, models.Ticket{ID: 500, EventID: 5, HolderID: 42, SingleEntry: 1})
			default:
				w.WriteHeader(http.StatusConflict)
			}
		}))
		r.Get("/user/tickets", authed(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, []models.Ticket{
				{ID: 500, EventID: 5, HolderID: 42, SingleEntry: 1},
				{ID: 501, EventID: 99, HolderID: 42, Expended: 1},
			})
		}))
		r.Get("/board/lifetime/top", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, []models.UserPoints{
				{ID: 42, Username: "bear", Lifetime: 120},
				{ID: 3, Username: "owl", Lifetime: 90},
				{ID: 9, Username: "fox", Lifetime: 10},
			})
		})
		r.Get("/user/get_user_id/pkpass", authed(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("PK\x03\x04pass"))
		}))
		r.Post("/chatbot", authed(func(w http.ResponseWriter, r *http.Request) {
			var req models.ChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, models.ChatCompletion{Choices: []models.ChatChoice{
				{Message: models.ChatMessage{Role: "assistant", Content: "You asked: " + req.Prompt}},
			}})
		}))
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

// setupEnv points the CLI at srv with a fresh session file.
func setupEnv(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	dir := t.TempDir()

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV", "local")
	t.Setenv("MACSVC_URL", srv.URL)
	t.Setenv("MA_CENTRAL_SESSION_FILE", filepath.Join(dir, "cookies.json"))

	return dir
}

func runCLI(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	err := run(args, nil, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func login(t *testing.T, dir string) {
	t.Helper()

	passwordFile := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("hunter22\n"), 0o600))

	out, _, err := runCLI("login", "--password-file", passwordFile, "bear")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as bear")
	assert.Contains(t, out, "you have 80 points")
}

func TestSessionPersistsAcrossRuns(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))

	login(t, dir)

	out, _, err := runCLI("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "bear (id 42)")
	assert.Contains(t, out, "lifetime: 120 points")

	out, _, err = runCLI("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	_, err = os.Stat(filepath.Join(dir, "cookies.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = runCLI("whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestSessionSaveFailureIsReported(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))

	// the session file is a dangling link, so opening works and saving fails
	sessionFile := filepath.Join(dir, "cookies.json")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing", "cookies.json"), sessionFile))

	passwordFile := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("hunter22\n"), 0o600))

	testCases := []struct {
		name   string
		args   []string
		prefix string
	}{
		{
			name:   "Login",
			args:   []string{"login", "--password-file", passwordFile, "bear"},
			prefix: "logged in, but the session could not be saved",
		},
		{
			name: "Create account",
			args: []string{"create-account", "--student-id", "12345", "--full-name", "Bear Bruin",
				"--password-file", passwordFile, "bear"},
			prefix: "account created, but the session could not be saved",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCLI(tc.args...)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), tc.prefix), err.Error())
			assert.NotContains(t, out, "logged in as")
		})
	}
}

func TestLoginBadPassword(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))

	passwordFile := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("nope"), 0o600))

	_, _, err := runCLI("login", "--password-file", passwordFile, "bear")
	require.EqualError(t, err, "bad credentials")
}

func TestLoginWithoutTerminal(t *testing.T) {
	setupEnv(t, newFakeServer(t))

	_, _, err := runCLI("login", "bear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password-file")
}

func TestGuestEvents(t *testing.T) {
	setupEnv(t, newFakeServer(t))

	testCases := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "Upcoming",
			args:     []string{"--guest", "events"},
			contains: []string{"Homecoming", "happening now", "Winter Formal", "sales closed", "costs 25"},
			excludes: []string{"Finals Night"},
		},
		{
			name:     "All",
			args:     []string{"--guest", "events", "--all"},
			contains: []string{"Finals Night", "ended", "+5"},
		},
		{
			name:     "Search",
			args:     []string{"--guest", "events", "--all", "-s", "LIBRARY"},
			contains: []string{"Finals Night"},
			excludes: []string{"Homecoming", "Winter Formal"},
		},
		{
			name:     "Search without match",
			args:     []string{"--guest", "events", "-s", "aquarium"},
			contains: []string{"no events"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCLI(tc.args...)
			require.NoError(t, err)

			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestGuestRefusals(t *testing.T) {
	setupEnv(t, newFakeServer(t))

	for _, args := range [][]string{
		{"--guest", "tickets"},
		{"--guest", "buy", "5"},
		{"--guest", "pass"},
		{"--guest", "delete-account", "--yes", "bear"},
	} {
		t.Run(args[1], func(t *testing.T) {
			_, _, err := runCLI(args...)
			require.ErrorIs(t, err, session.ErrGuest)
		})
	}

	out, _, err := runCLI("--guest", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Guest")

	_, _, err = runCLI("--guest", "login", "bear")
	require.Error(t, err)
}

func TestBuy(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))
	login(t, dir)

	testCases := []struct {
		name      string
		eventID   string
		expectErr string
		contains  string
	}{
		{name: "Points event", eventID: "5", contains: "got ticket 500 for event 5"},
		{name: "Sales closed", eventID: "7", expectErr: "ticket sales for this event have closed"},
		{name: "Ended", eventID: "6", expectErr: "this event has ended"},
		{name: "Already holds one", eventID: "8", expectErr: "you already have a ticket for this event"},
		{name: "Bad id", eventID: "x", expectErr: `invalid event id "x"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCLI("buy", tc.eventID)
			if tc.expectErr != "" {
				require.EqualError(t, err, tc.expectErr)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, out, tc.contains)
			assert.Contains(t, out, "you have 80 points left")
		})
	}
}

func TestTicketsShowEventTitles(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))
	login(t, dir)

	out, _, err := runCLI("tickets")
	require.NoError(t, err)
	assert.Contains(t, out, "Homecoming")
	assert.Contains(t, out, "#99")
	assert.Contains(t, out, "single")
	assert.Contains(t, out, "used")
}

func TestLeaderboard(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))

	out, _, err := runCLI("--guest", "leaderboard", "--top", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "owl")
	assert.NotContains(t, out, "fox")
	assert.NotContains(t, out, "you")

	login(t, dir)

	out, _, err = runCLI("leaderboard")
	require.NoError(t, err)
	assert.Contains(t, out, "fox")
	assert.Contains(t, out, "you")

	_, _, err = runCLI("leaderboard", "--top", "-1")
	require.Error(t, err)
}

func TestPassAndChat(t *testing.T) {
	dir := setupEnv(t, newFakeServer(t))
	login(t, dir)

	target := filepath.Join(dir, "bear.pkpass")

	out, _, err := runCLI("pass", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04pass", string(data))

	out, _, err = runCLI("chat", "when", "is", "homecoming?")
	require.NoError(t, err)
	assert.Equal(t, "You asked: when is homecoming?\n", out)

	_, _, err = runCLI("chat")
	require.Error(t, err)
}

func TestUsage(t *testing.T) {
	setupEnv(t, newFakeServer(t))

	_, stderr, err := runCLI()
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr, "leaderboard")

	_, _, err = runCLI("dance")
	require.EqualError(t, err, fmt.Sprintf("unknown command %q", "dance"))
}
