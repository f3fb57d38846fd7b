// Package scanerr maps scanner failures to HTTP statuses.
package scanerr

import (
	"errors"
	"net/http"

	"maCentral/internal/lib/api/upstream"
	"maCentral/internal/redeem"
	"maCentral/internal/station"
)

var known = []struct {
	err    error
	status int
}{
	{redeem.ErrEmptyPayload, http.StatusBadRequest},
	{redeem.ErrBusy, http.StatusConflict},
	{redeem.ErrNotTerminal, http.StatusConflict},
	{redeem.ErrClosed, http.StatusConflict},
	{station.ErrEventNotFound, http.StatusNotFound},
	{station.ErrScannerNotOpen, http.StatusNotFound},
	{station.ErrEventExpired, http.StatusGone},
	{station.ErrJournalDisabled, http.StatusServiceUnavailable},
}

// Status returns the HTTP status and display text for err. fallback is
// used for failures reaching macsvc.
func Status(err error, fallback string) (int, string) {
	for _, k := range known {
		if errors.Is(err, k.err) {
			return k.status, k.err.Error()
		}
	}

	return upstream.Status(err), fallback
}
