// Package upstream translates macsvc failures into station HTTP statuses.
package upstream

import (
	"errors"
	"net/http"

	"maCentral/internal/macsvc"
)

// Status picks the status to answer with when a call to macsvc failed.
// Authentication failures pass through; everything else from macsvc is a
// bad gateway. Errors of other origins are internal.
func Status(err error) int {
	if errors.Is(err, macsvc.ErrTransport) || errors.Is(err, macsvc.ErrDecode) {
		return http.StatusBadGateway
	}

	if code, ok := macsvc.StatusCode(err); ok {
		switch code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return code
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
