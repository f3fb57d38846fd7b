package getScanState

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maCentral/internal/http-server/handlers/scan/getScanState/mocks"
	"maCentral/internal/lib/logger/handlers/slogdiscard"
	"maCentral/internal/redeem"
	"maCentral/internal/station"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetScanStateHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	at := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.ScanStateGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Invalid ticket on display",
			eventID: "5",
			mockSetup: func(m *mocks.ScanStateGetter) {
				m.On("ScanState", mock.Anything, int64(5)).Return(redeem.Snapshot{
					EventID:   5,
					State:     redeem.Invalid,
					Status:    "invalid",
					Payload:   "bogus",
					Detail:    "invalid ticket",
					UpdatedAt: at,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","scan":{"event_id":5,"state":"invalid","payload":"bogus",` +
				`"detail":"invalid ticket","capturing":false,"updated_at":"2024-10-01T12:00:00Z"}}`,
		},
		{
			name:    "Idle scanner",
			eventID: "5",
			mockSetup: func(m *mocks.ScanStateGetter) {
				m.On("ScanState", mock.Anything, int64(5)).Return(redeem.Snapshot{
					EventID:   5,
					Status:    "idle",
					Capturing: true,
					UpdatedAt: at,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","scan":{"event_id":5,"state":"idle","capturing":true,"updated_at":"2024-10-01T12:00:00Z"}}`,
		},
		{
			name:    "Expired event",
			eventID: "6",
			mockSetup: func(m *mocks.ScanStateGetter) {
				m.On("ScanState", mock.Anything, int64(6)).
					Return(redeem.Snapshot{}, fmt.Errorf("station.ScanState: %w", station.ErrEventExpired))
			},
			expectedStatus: http.StatusGone,
			expectedBody:   `{"status":"Error","error":"event has ended"}`,
		},
		{
			name:           "Invalid event id",
			eventID:        "x",
			mockSetup:      func(m *mocks.ScanStateGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewScanStateGetter(t)
			tc.mockSetup(getter)

			router := chi.NewRouter()
			router.Get("/events/{id}/scan", New(logger, getter))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/"+tc.eventID+"/scan", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
