package slogpretty

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}

	return slog.New(opts.NewPrettyHandler(buf))
}

func TestGroupsPrefixKeys(t *testing.T) {
	color.NoColor = true

	testCases := []struct {
		name     string
		log      func(l *slog.Logger)
		contains []string
		excludes []string
	}{
		{
			name: "Attrs before and after a group",
			log: func(l *slog.Logger) {
				l.With(slog.String("op", "scan")).WithGroup("req").With(slog.Int("id", 7)).
					Info("handled", slog.String("path", "/events"))
			},
			contains: []string{`"op": "scan"`, `"req.id": 7`, `"req.path": "/events"`},
			excludes: []string{`"id": 7`},
		},
		{
			name: "Nested groups",
			log: func(l *slog.Logger) {
				l.WithGroup("a").WithGroup("b").Info("deep", slog.Bool("ok", true))
			},
			contains: []string{`"a.b.ok": true`},
		},
		{
			name: "Group values flatten",
			log: func(l *slog.Logger) {
				l.Info("scan", slog.Group("scan", slog.Int64("event_id", 5), slog.String("state", "valid")))
			},
			contains: []string{`"scan.event_id": 5`, `"scan.state": "valid"`},
		},
		{
			name: "Empty group name is ignored",
			log: func(l *slog.Logger) {
				l.WithGroup("").Info("plain", slog.Int("n", 1))
			},
			contains: []string{`"n": 1`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.log(newTestLogger(&buf))

			out := buf.String()
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
