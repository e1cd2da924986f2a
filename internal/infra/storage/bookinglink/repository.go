package bookinglink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository справочник публичных ссылок записи
// Жизненным циклом ссылок управляет другая часть системы, здесь только чтение и счетчики
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ссылок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает ссылку по slug (активную или нет, решает вызывающий)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.BookingLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"slug",
		"title",
		"active",
		"service_ids",
		"days_in_advance",
		"view_count",
		"appointment_count",
		"created_at",
		"updated_at",
	).
		From("booking_links").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	var (
		link                 domain.BookingLink
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&link.ID,
		&link.OwnerID,
		&link.Slug,
		&link.Title,
		&link.Active,
		pq.Array(&link.ServiceIDs),
		&link.DaysInAdvance,
		&link.ViewCount,
		&link.AppointmentCount,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - scan link: %w", ErrExecQuery, err)
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	return &link, nil
}

// IncrementViews увеличивает счетчик просмотров
func (r *Repository) IncrementViews(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "view_count")
}

// IncrementAppointments увеличивает счетчик записей
func (r *Repository) IncrementAppointments(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "appointment_count")
}

func (r *Repository) increment(ctx context.Context, id int64, column string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_links").
		Set(column, squirrel.Expr(column+" + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: increment %s - build update query: %v", ErrBuildQuery, column, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: increment %s - execute update: %w", ErrExecQuery, column, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: increment %s - get rows affected: %v", ErrExecQuery, column, err)
	}
	if rowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}
