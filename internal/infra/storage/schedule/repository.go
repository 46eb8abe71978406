package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/pkg/dbmetrics"
	"github.com/citaflow/CITA-SchedulingService/pkg/psqlbuilder"
	"github.com/citaflow/CITA-SchedulingService/pkg/types"
)

// Repository reads employee weekly schedules and vacation ranges.
// Both tables are written by the staff-management surface, not by this
// service, so the repository is read-only.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a schedule repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekdayEntries fetches every schedule entry of the employee for one
// weekday (1=Monday..7=Sunday), earliest window first.
func (r *Repository) GetWeekdayEntries(ctx context.Context, employeeID int64, weekday int) ([]*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"employee_id",
		"weekday",
		"entry_time",
		"exit_time",
		"break_start",
		"break_end",
	).
		From("schedule_entries").
		Where(squirrel.Eq{"employee_id": employeeID, "weekday": weekday}).
		OrderBy("entry_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekdayEntries - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekdayEntries - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WeeklyScheduleEntry, 0)
	for rows.Next() {
		var entry domain.WeeklyScheduleEntry
		var breakStart, breakEnd sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.EmployeeID,
			&entry.Weekday,
			&entry.EntryTime,
			&entry.ExitTime,
			&breakStart,
			&breakEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeekdayEntries - scan row: %v", ErrScanRow, err)
		}
		entry.BreakStart = toTimeStringPtr(breakStart)
		entry.BreakEnd = toTimeStringPtr(breakEnd)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekdayEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetVacations fetches all vacation ranges of the employee.
func (r *Repository) GetVacations(ctx context.Context, employeeID int64) ([]*domain.VacationRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"employee_id",
		"start_date",
		"end_date",
	).
		From("vacations").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVacations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetVacations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vacations := make([]*domain.VacationRange, 0)
	for rows.Next() {
		var vacation domain.VacationRange
		err := rows.Scan(
			&vacation.ID,
			&vacation.EmployeeID,
			&vacation.StartDate,
			&vacation.EndDate,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetVacations - scan row: %v", ErrScanRow, err)
		}
		vacations = append(vacations, &vacation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetVacations - rows error: %v", ErrScanRow, err)
	}

	return vacations, nil
}

// toTimeStringPtr converts a nullable TIME column value.
// Seconds coming back from the driver are trimmed to HH:MM.
func toTimeStringPtr(v sql.NullString) *types.TimeString {
	if !v.Valid {
		return nil
	}
	s := v.String
	if len(s) > 5 {
		s = s[:5]
	}
	ts := types.TimeString(s)
	return &ts
}
