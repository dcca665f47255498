package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authsvc/config"
	deliverycontext "authsvc/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		inbound  string
		wantEcho bool
	}{
		{name: "generated when absent", inbound: "", wantEcho: false},
		{name: "client id echoed", inbound: "abc-123", wantEcho: true},
		{name: "too long replaced", inbound: strings.Repeat("a", maxRequestIDLength+1), wantEcho: false},
		{name: "control characters replaced", inbound: "abc\tdef", wantEcho: false},
	}

	m := NewRequestIDMiddleware(slog.New(slog.DiscardHandler))
	fallback := slog.New(slog.DiscardHandler)
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.inbound)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var ctxID string
			err := m.Process(func(c echo.Context) error {
				ctxID = deliverycontext.RequestID(c.Request().Context())
				assert.NotSame(t, fallback, deliverycontext.Logger(c.Request().Context(), fallback))
				return nil
			})(c)
			require.NoError(t, err)

			header := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.Equal(t, header, ctxID)
			if tt.wantEcho {
				assert.Equal(t, tt.inbound, header)
			} else {
				_, err := uuid.Parse(header)
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggerMiddleware_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	m := NewLoggerMiddleware(logger, &config.Config{})

	// Successful requests are only logged in debug mode.
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())
	require.NoError(t, m.Handle(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c))
	assert.Empty(t, buf.String())

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/missing", nil), rec)
	require.NoError(t, m.Handle(func(echo.Context) error { return echo.ErrNotFound })(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
