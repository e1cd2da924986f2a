package businesshours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository репозиторий рабочего времени владельцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочего времени
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwner получает настройки владельца
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"owner_id",
		"start_time",
		"end_time",
		"days_off",
		"lunch_start",
		"lunch_end",
		"created_at",
		"updated_at",
	).
		From("business_hours").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	var (
		hours                domain.BusinessHours
		daysOff              []int64
		lunchStart, lunchEnd types.TimeString
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.OwnerID,
		&hours.StartTime,
		&hours.EndTime,
		pq.Array(&daysOff),
		&lunchStart,
		&lunchEnd,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - scan business hours: %w", ErrScanRow, err)
	}

	hours.DaysOff = make([]int, len(daysOff))
	for i, d := range daysOff {
		hours.DaysOff[i] = int(d)
	}
	if !lunchStart.IsZero() && !lunchEnd.IsZero() {
		hours.LunchBreak = &domain.LunchBreak{Start: lunchStart, End: lunchEnd}
	}
	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}

// CreateIfAbsent создает настройки, если у владельца их еще нет
// Повторный вызов ничего не меняет
func (r *Repository) CreateIfAbsent(ctx context.Context, hours *domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.insert(hours).
		Suffix("ON CONFLICT (owner_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateIfAbsent - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Upsert сохраняет настройки владельца целиком
func (r *Repository) Upsert(ctx context.Context, hours *domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.insert(hours).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			days_off = EXCLUDED.days_off,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) insert(hours *domain.BusinessHours) squirrel.InsertBuilder {
	daysOff := make([]int64, len(hours.DaysOff))
	for i, d := range hours.DaysOff {
		daysOff[i] = int64(d)
	}

	var lunchStart, lunchEnd types.TimeString
	if hours.LunchBreak != nil {
		lunchStart = hours.LunchBreak.Start
		lunchEnd = hours.LunchBreak.End
	}

	return psqlbuilder.Insert("business_hours").
		Columns("owner_id", "start_time", "end_time", "days_off", "lunch_start", "lunch_end").
		Values(hours.OwnerID, hours.StartTime, hours.EndTime, pq.Array(daysOff), lunchStart, lunchEnd)
}
