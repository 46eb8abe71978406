package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/citaflow/CITA-SchedulingService/pkg/dbmetrics"
	"github.com/citaflow/CITA-SchedulingService/pkg/psqlbuilder"
)

// Repository reads the tenant's service catalog. The catalog is managed by
// the dashboard CRUD surface; the scheduling core only needs durations.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a services repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDurationMinutes returns the duration of a service owned by the company.
func (r *Repository) GetDurationMinutes(ctx context.Context, companyID, serviceID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": serviceID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetDurationMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var duration int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&duration)
	if err == sql.ErrNoRows {
		return 0, ErrServiceNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetDurationMinutes - execute query: %v", ErrExecQuery, err)
	}

	return duration, nil
}
