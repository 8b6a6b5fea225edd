package health

import (
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		database string
	}{
		{name: "connected", pingErr: nil, database: "Connected"},
		{name: "disconnected", pingErr: errors.New("connection refused"), database: "Disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockPinger)
			db.On("Ping", mock.Anything).Return(tt.pingErr)

			rr := httptest.NewRecorder()
			Health(slog.Default(), db).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, http.StatusOK, rr.Code)

			var resp Response
			require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
			assert.Equal(t, "OK", resp.Status)
			assert.Equal(t, "JobAI API", resp.Service)
			assert.Equal(t, tt.database, resp.Database)
			assert.False(t, resp.Timestamp.IsZero())

			db.AssertExpectations(t)
		})
	}
}
