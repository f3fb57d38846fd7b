// Package capture feeds scan payloads into a redemption flow.
package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"maCentral/internal/lib/logger/sl"
	"maCentral/internal/redeem"
)

// Switch is a redeem.Capture that only records whether capture is paused.
type Switch struct {
	paused atomic.Bool
}

func (s *Switch) Pause() {
	s.paused.Store(true)
}

func (s *Switch) Resume() {
	s.paused.Store(false)
}

func (s *Switch) Paused() bool {
	return s.paused.Load()
}

type Sink interface {
	Submit(payload string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(payload string) error

func (f SinkFunc) Submit(payload string) error {
	return f(payload)
}

// LineScanner reads newline terminated payloads, as sent by keyboard-wedge
// barcode readers, and submits each one to a sink.
type LineScanner struct {
	r    io.Reader
	sw   *Switch
	sink Sink
	log  *slog.Logger
}

func NewLineScanner(log *slog.Logger, r io.Reader, sw *Switch, sink Sink) *LineScanner {
	return &LineScanner{
		r:    r,
		sw:   sw,
		sink: sink,
		log:  log.With(slog.String("component", "capture")),
	}
}

// Run reads until EOF or until ctx is done. Blank lines and lines read
// while the switch is paused are dropped. When ctx is done Run returns at
// once and closes the reader if it is an io.Closer; a reader that is not
// keeps its pending Read blocked until input or EOF arrives.
func (s *LineScanner) Run(ctx context.Context) error {
	const op = "capture.LineScanner.Run"

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	defer func() {
		if c, ok := s.r.(io.Closer); ok && ctx.Err() != nil {
			_ = c.Close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil && ctx.Err() == nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			s.handle(strings.TrimSpace(line))
		}
	}
}

func (s *LineScanner) handle(payload string) {
	if payload == "" {
		return
	}

	if s.sw != nil && s.sw.Paused() {
		s.log.Debug("capture paused, dropping payload", slog.String("payload", payload))
		return
	}

	if err := s.sink.Submit(payload); err != nil {
		if errors.Is(err, redeem.ErrBusy) {
			s.log.Debug("scanner busy, dropping payload", slog.String("payload", payload))
			return
		}
		s.log.Warn("failed to submit payload", slog.String("payload", payload), sl.Err(err))
	}
}
