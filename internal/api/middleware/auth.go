package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/citaflow/CITA-SchedulingService/internal/api/handlers"
	"github.com/citaflow/CITA-SchedulingService/internal/domain"
)

const (
	headerCompanyID  = "X-Company-ID"
	headerEmployeeID = "X-Employee-ID"
	headerRole       = "X-Role"
)

const msgUnauthorized = "credenciales de acceso no válidas"

type contextKey string

const authContextKey contextKey = "authContext"

// Auth resolves the caller's tenant-scoped identity from the gateway headers
// and stores it in the request context. The gateway upstream has already
// authenticated the caller; this service only needs the resolved identity.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID, err := strconv.ParseInt(r.Header.Get(headerCompanyID), 10, 64)
		if err != nil || companyID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		employeeID, err := strconv.ParseInt(r.Header.Get(headerEmployeeID), 10, 64)
		if err != nil || employeeID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		role, ok := domain.ParseRole(r.Header.Get(headerRole))
		if !ok {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		auth := domain.AuthContext{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Role:       role,
		}

		ctx := context.WithValue(r.Context(), authContextKey, auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthFromContext returns the identity stored by Auth.
func AuthFromContext(ctx context.Context) (domain.AuthContext, bool) {
	auth, ok := ctx.Value(authContextKey).(domain.AuthContext)
	return auth, ok
}
