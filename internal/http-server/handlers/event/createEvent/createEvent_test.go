package createEvent

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"maCentral/internal/http-server/handlers/event/createEvent/mocks"
	"maCentral/internal/lib/logger/handlers/slogdiscard"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	pointsEvent := models.Event{
		StartTime:     1727800000000,
		EndTime:       1727810000000,
		Title:         "Homecoming",
		HumanLocation: "Main Quad",
		Latitude:      37.46,
		Longitude:     -122.18,
		Image:         "https://example.com/hoco.png",
		Monetization:  models.Points{Reward: 25},
	}

	pricedEvent := models.Event{
		StartTime:    1727800000000,
		EndTime:      1727810000000,
		Title:        "Winter Formal",
		Monetization: models.Priced{Price: 40, SaleDeadline: 1727700000000},
	}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.EventCreator)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Points event",
			requestBody: `{
				"title": "Homecoming",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"human_location": "Main Quad",
				"latitude": 37.46,
				"longitude": -122.18,
				"image": "https://example.com/hoco.png",
				"point_reward": 25
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, pointsEvent).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name: "Priced event",
			requestBody: `{
				"title": "Winter Formal",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"ticket_price": 40,
				"last_sale_date": 1727700000000
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, pricedEvent).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name: "No monetization",
			requestBody: `{
				"title": "Club Fair",
				"start_time": 1727800000000,
				"end_time": 1727800000000
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
					return e.Title == "Club Fair" && e.Monetization == models.Points{}
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `invalid json`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name: "Missing title",
			requestBody: `{
				"start_time": 1727800000000,
				"end_time": 1727810000000
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "field Title is a required field")
			},
		},
		{
			name: "Ends before it starts",
			requestBody: `{
				"title": "Homecoming",
				"start_time": 1727810000000,
				"end_time": 1727800000000
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field EndTime must not be before StartTime")
			},
		},
		{
			name: "Bad image url",
			requestBody: `{
				"title": "Homecoming",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"image": "not a url"
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field Image is not a valid URL")
			},
		},
		{
			name: "Latitude out of range",
			requestBody: `{
				"title": "Homecoming",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"latitude": 120
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field Latitude is out of range")
			},
		},
		{
			name: "Price without sale deadline",
			requestBody: `{
				"title": "Winter Formal",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"ticket_price": 40
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field LastSaleDate is a required field")
			},
		},
		{
			name: "Both reward and price",
			requestBody: `{
				"title": "Winter Formal",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"point_reward": 5,
				"ticket_price": 40,
				"last_sale_date": 1727700000000
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field PointReward cannot be combined with TicketPrice")
			},
		},
		{
			name: "Server rejected",
			requestBody: `{
				"title": "Homecoming",
				"start_time": 1727800000000,
				"end_time": 1727810000000,
				"point_reward": 25
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.Anything).
					Return(fmt.Errorf("station.CreateEvent: %w", &macsvc.StatusError{Op: "create", Code: http.StatusBadRequest}))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"failed to add event"}`,
		},
		{
			name: "Internal error",
			requestBody: `{
				"title": "Homecoming",
				"start_time": 1727800000000,
				"end_time": 1727810000000
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.Anything).Return(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to add event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			creator := mocks.NewEventCreator(t)
			tc.mockSetup(creator)

			handler := New(logger, creator)

			req, err := http.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestEventRequestMonetization(t *testing.T) {
	t.Parallel()

	price, deadline, reward := int64(10), int64(500), int64(3)

	assert.Equal(t, models.Priced{Price: 10, SaleDeadline: 500},
		EventRequest{TicketPrice: &price, LastSaleDate: &deadline}.Event().Monetization)
	assert.Equal(t, models.Points{Reward: 3}, EventRequest{PointReward: &reward}.Event().Monetization)
	assert.Equal(t, models.Points{}, EventRequest{}.Event().Monetization)
}
