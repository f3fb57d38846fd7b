// Package cue provides operator feedback for scan results.
package cue

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"maCentral/internal/redeem"

	"github.com/fatih/color"
)

const bell = "\a"

// Terminal rings the bell and prints a coloured verdict line.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	ok   *color.Color
	fail *color.Color
}

func NewTerminal(out io.Writer, colored bool) *Terminal {
	ok := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)

	if colored {
		ok.EnableColor()
		fail.EnableColor()
	} else {
		ok.DisableColor()
		fail.DisableColor()
	}

	return &Terminal{out: out, ok: ok, fail: fail}
}

func (t *Terminal) Success() {
	t.write(t.ok, "VALID")
}

func (t *Terminal) Failure() {
	t.write(t.fail, "INVALID")
}

func (t *Terminal) write(c *color.Color, verdict string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprint(t.out, bell)
	_, _ = c.Fprintln(t.out, verdict)
}

type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) Log {
	return Log{log: log}
}

func (l Log) Success() {
	l.log.Info("scan cue", slog.String("result", "valid"))
}

func (l Log) Failure() {
	l.log.Info("scan cue", slog.String("result", "invalid"))
}

// Multi fans a cue out to every member in order.
type Multi []redeem.Cue

func (m Multi) Success() {
	for _, c := range m {
		c.Success()
	}
}

func (m Multi) Failure() {
	for _, c := range m {
		c.Failure()
	}
}
