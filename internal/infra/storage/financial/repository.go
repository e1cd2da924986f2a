package financial

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository финансовый журнал (доходы, связанные с записями клиентов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр финансового репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// AppendIncome добавляет доход, связанный с записью клиента
// UNIQUE (appointment_id) гарантирует не более одной записи на запись клиента
func (r *Repository) AppendIncome(ctx context.Context, ownerID int64, amount float64, appointmentID int64, memo string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("financial_records").
		Columns("owner_id", "type", "amount", "appointment_id", "memo").
		Values(ownerID, domain.RecordTypeIncome, amount, appointmentID, memo).
		Suffix("ON CONFLICT (appointment_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: AppendIncome - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: appointment id=%d", ErrRecordExists, appointmentID)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: AppendIncome - execute insert: %w", ErrExecQuery, err)
	}

	return id, nil
}

// GetByAppointmentID получает доход, связанный с записью клиента
func (r *Repository) GetByAppointmentID(ctx context.Context, ownerID, appointmentID int64) (*domain.FinancialRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "type", "amount", "appointment_id", "memo", "created_at").
		From("financial_records").
		Where(squirrel.Eq{"owner_id": ownerID, "appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rec       domain.FinancialRecord
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Type,
		&rec.Amount,
		&rec.AppointmentID,
		&rec.Memo,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan record: %w", ErrExecQuery, err)
	}
	rec.CreatedAt = createdAt.Time

	return &rec, nil
}

// DeleteByAppointmentID удаляет доход, связанный с записью клиента
func (r *Repository) DeleteByAppointmentID(ctx context.Context, ownerID, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("financial_records").
		Where(squirrel.Eq{"owner_id": ownerID, "appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByAppointmentID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByAppointmentID - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByAppointmentID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
