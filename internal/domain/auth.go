package domain

// Role is the authorization level of an authenticated employee.
type Role string

const (
	// RoleBoss has tenant-wide scope.
	RoleBoss Role = "boss"
	// RoleStaff is limited to the employee's own appointments.
	RoleStaff Role = "staff"
)

// ParseRole validates a raw role value.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBoss, RoleStaff:
		return Role(s), true
	default:
		return "", false
	}
}

// AuthContext is the authorization context resolved once per request.
// Every subsequent query consumes its Scope instead of re-branching on the
// role string.
type AuthContext struct {
	CompanyID  int64
	EmployeeID int64
	Role       Role
}

// Scope is the {field, value} pair mutating and reading queries filter by.
type Scope struct {
	Field string
	Value int64
}

// Scope returns the row filter this actor operates under: bosses act on the
// whole tenant, staff only on their own employee rows.
func (a AuthContext) Scope() Scope {
	if a.Role == RoleBoss {
		return Scope{Field: "company_id", Value: a.CompanyID}
	}
	return Scope{Field: "employee_id", Value: a.EmployeeID}
}

// CanManageEmployee reports whether the actor may mutate appointments of the
// given employee.
func (a AuthContext) CanManageEmployee(employeeID int64) bool {
	if a.Role == RoleBoss {
		return true
	}
	return a.EmployeeID == employeeID
}
