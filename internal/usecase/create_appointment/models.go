package create_appointment

import (
	"time"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

// Request carries a booking submission. Date and time are the client's local
// wall clock; TimezoneOffset converts them to the absolute slot instant.
type Request struct {
	EmployeeID int64
	ClientID   int64
	ServiceID  int64

	Title       *string
	Description *string

	Date           string // "YYYY-MM-DD" in the client's timezone
	StartTime      types.TimeString
	TimezoneOffset int // minutes east of UTC

	Auth domain.AuthContext
}

// Response is the created appointment together with its confirmation token.
// Token is empty when creation succeeded but issuance failed; the error
// returned alongside is ErrTokenIssueFailed in that case.
type Response struct {
	Appointment *domain.Appointment
	Token       string
	TokenType   domain.TokenType
	ExpiresAt   time.Time
}
