package macsvc

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport means no response arrived.
	ErrTransport = errors.New("transport failure")
	// ErrDecode means a response arrived but its body was not the expected JSON.
	ErrDecode = errors.New("malformed response")
)

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// StatusCode extracts the HTTP status of a StatusError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}

	return 0, false
}

// Messages maps failure statuses of one operation to user-facing text.
type Messages struct {
	ByStatus map[int]string
	Fallback string
}

var (
	LoginMessages = Messages{
		Fallback: "bad credentials",
	}

	AdminLoginMessages = Messages{
		Fallback: "bad credentials, or you do not have administrator access",
	}

	AccountCreateMessages = Messages{
		ByStatus: map[int]string{
			http.StatusBadRequest: "your username, full name, and/or password contained characters other than " +
				"a-z 0-9 A-Z - ~ ! @ # $ % ^ & * ( ) = + / \\ _ [ _ ] { } | ? . ,",
			http.StatusForbidden:                  "bad student id",
			http.StatusConflict:                   "username taken",
			http.StatusRequestEntityTooLarge:      "your username, full name, and/or password were not between 3 and 64 characters (8 min for password)",
			http.StatusUnavailableForLegalReasons: "an account already exists for the supplied student id",
		},
		Fallback: "creation failed",
	}

	DeleteAccountMessages = Messages{
		ByStatus: map[int]string{
			http.StatusUnauthorized: "bad credentials",
		},
		Fallback: "account deletion failed",
	}

	// the consume endpoint does not distinguish failures
	ConsumeMessages = Messages{
		Fallback: "invalid ticket",
	}

	PurchaseMessages = Messages{
		ByStatus: map[int]string{
			http.StatusBadRequest:                 "this event does not sell tickets",
			http.StatusForbidden:                  "you do not have enough points for this ticket",
			http.StatusConflict:                   "you already have a ticket for this event",
			http.StatusRequestEntityTooLarge:      "ticket limit reached for this event",
			http.StatusLocked:                     "ticket sales for this event have closed",
			http.StatusUnavailableForLegalReasons: "your account is not allowed to buy tickets",
		},
		Fallback: "purchase failed",
	}
)

// For renders err for display. nil yields "".
func (m Messages) For(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrTransport) {
		return "network error"
	}

	if errors.Is(err, ErrDecode) {
		return "unexpected response from server"
	}

	if code, ok := StatusCode(err); ok {
		if msg, ok := m.ByStatus[code]; ok {
			return msg
		}
	}

	if m.Fallback != "" {
		return m.Fallback
	}

	return "request failed"
}
