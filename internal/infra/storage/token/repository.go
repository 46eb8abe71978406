package token

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/citaflow/CITA-SchedulingService/internal/domain"
	"github.com/citaflow/CITA-SchedulingService/pkg/dbmetrics"
	"github.com/citaflow/CITA-SchedulingService/pkg/psqlbuilder"
)

var tokenColumns = []string{
	"id",
	"token",
	"type",
	"appointment_id",
	"waitlist_entry_id",
	"expires_at",
	"used_at",
	"created_at",
}

// Repository persists confirmation tokens.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a token repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new unused token.
func (r *Repository) Create(ctx context.Context, t *domain.ConfirmationToken) (*domain.ConfirmationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("confirmation_tokens").
		Columns(
			"token",
			"type",
			"appointment_id",
			"waitlist_entry_id",
			"expires_at",
		).
		Values(
			t.Token,
			t.Type,
			t.AppointmentID,
			t.WaitlistEntryID,
			t.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	return t, nil
}

// GetByValue fetches a token by its opaque value and type.
func (r *Repository) GetByValue(ctx context.Context, value string, typ domain.TokenType) (*domain.ConfirmationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tokenColumns...).
		From("confirmation_tokens").
		Where(squirrel.Eq{"token": value, "type": typ}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByValue - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.ConfirmationToken
	var expiresAt, usedAt, createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Token,
		&t.Type,
		&t.AppointmentID,
		&t.WaitlistEntryID,
		&expiresAt,
		&usedAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByValue - scan token: %v", ErrScanRow, err)
	}

	// A NULL expiry stays the zero time, which the domain treats as expired.
	t.ExpiresAt = expiresAt.Time
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	t.CreatedAt = createdAt.Time

	return &t, nil
}

// MarkUsed flips the token to used, guarded on it still being unused.
// Zero affected rows means another consumer already spent the token.
func (r *Repository) MarkUsed(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("confirmation_tokens").
		Set("used_at", now).
		Where(squirrel.Eq{"id": id}).
		Where("used_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyUsed
	}

	return nil
}

// RevokeUnusedByAppointment invalidates every unused token of the given
// type for an appointment by marking it used. Called before issuing a
// replacement so stale links die with the old token.
func (r *Repository) RevokeUnusedByAppointment(ctx context.Context, appointmentID int64, typ domain.TokenType, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("confirmation_tokens").
		Set("used_at", now).
		Where(squirrel.Eq{"appointment_id": appointmentID, "type": typ}).
		Where("used_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RevokeUnusedByAppointment - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RevokeUnusedByAppointment - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
