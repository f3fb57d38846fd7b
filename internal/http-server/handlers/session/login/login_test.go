package login

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"maCentral/internal/http-server/handlers/session/login/mocks"
	"maCentral/internal/lib/logger/handlers/slogdiscard"
	"maCentral/internal/macsvc"
	"maCentral/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	creds := models.Credentials{Username: "admin", Password: "hunter22"}

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.Authenticator)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			requestBody: `{"username":"admin","password":"hunter22"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Login", mock.Anything, creds).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:        "Not an administrator",
			requestBody: `{"username":"admin","password":"hunter22"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Login", mock.Anything, creds).Return(&macsvc.StatusError{Op: "login", Code: http.StatusForbidden})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"bad credentials, or you do not have administrator access"}`,
		},
		{
			name:        "Server unreachable",
			requestBody: `{"username":"admin","password":"hunter22"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Login", mock.Anything, creds).Return(fmt.Errorf("login: %w", macsvc.ErrTransport))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"status":"Error","error":"network error"}`,
		},
		{
			name:        "Local failure",
			requestBody: `{"username":"admin","password":"hunter22"}`,
			mockSetup: func(m *mocks.Authenticator) {
				m.On("Login", mock.Anything, creds).Return(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"bad credentials, or you do not have administrator access"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{"username":`,
			mockSetup:      func(m *mocks.Authenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing password",
			requestBody:    `{"username":"admin"}`,
			mockSetup:      func(m *mocks.Authenticator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "Password")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			auth := mocks.NewAuthenticator(t)
			tc.mockSetup(auth)

			req, err := http.NewRequest(http.MethodPost, "/session/login", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			New(logger, auth).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
