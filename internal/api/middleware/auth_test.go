package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

func TestAuth(t *testing.T) {
	var captured domain.AuthContext
	var capturedOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, capturedOK = AuthFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		company    string
		employee   string
		role       string
		wantStatus int
	}{
		{"boss passes", "1", "2", "boss", http.StatusOK},
		{"staff passes", "1", "2", "staff", http.StatusOK},
		{"missing company", "", "2", "boss", http.StatusUnauthorized},
		{"non-numeric company", "abc", "2", "boss", http.StatusUnauthorized},
		{"zero employee", "1", "0", "boss", http.StatusUnauthorized},
		{"unknown role", "1", "2", "admin", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured, capturedOK = domain.AuthContext{}, false

			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
			if tt.company != "" {
				req.Header.Set("X-Company-ID", tt.company)
			}
			req.Header.Set("X-Employee-ID", tt.employee)
			req.Header.Set("X-Role", tt.role)

			rec := httptest.NewRecorder()
			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, capturedOK)
				assert.Equal(t, int64(1), captured.CompanyID)
				assert.Equal(t, int64(2), captured.EmployeeID)
			} else {
				assert.False(t, capturedOK)
				assert.JSONEq(t, `{"error":"credenciales de acceso no válidas"}`, rec.Body.String())
			}
		})
	}
}

func TestAuthFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := AuthFromContext(req.Context())
	assert.False(t, ok)
}
