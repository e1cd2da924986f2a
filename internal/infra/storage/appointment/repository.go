package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Колонки выборки: запись + денормализованные имя/телефон клиента и название услуги
var selectColumns = []string{
	"a.id",
	"a.owner_id",
	"a.client_id",
	"a.service_id",
	"a.scheduled_time",
	"a.duration_minutes",
	"a.duration_override",
	"a.status",
	"a.final_price",
	"a.discount",
	"a.notes",
	"a.source",
	"a.booking_link_id",
	"a.financial_record_id",
	"COALESCE(c.name, '')",
	"COALESCE(c.phone, '')",
	"COALESCE(s.name, '')",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(selectColumns...).
		From("appointments a").
		LeftJoin("clients c ON c.id = a.client_id").
		LeftJoin("services s ON s.id = a.service_id")
}

// Create создает запись
// Если в контексте есть транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"owner_id",
			"client_id",
			"service_id",
			"scheduled_time",
			"duration_minutes",
			"duration_override",
			"status",
			"final_price",
			"discount",
			"notes",
			"source",
			"booking_link_id",
		).
		Values(
			a.OwnerID,
			a.ClientID,
			a.ServiceID,
			a.ScheduledTime,
			a.DurationMinutes,
			a.DurationOverride,
			a.Status,
			a.FinalPrice,
			a.Discount,
			a.Notes,
			a.Source,
			a.BookingLinkID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись владельца по ID
// Чужая запись неотличима от несуществующей
func (r *Repository) GetByID(ctx context.Context, ownerID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().
		Where(squirrel.Eq{"a.id": id, "a.owner_id": ownerID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// endExpr конец интервала записи с учетом фактической длительности
const endExpr = "a.scheduled_time + make_interval(mins => COALESCE(a.duration_override, a.duration_minutes))"

// ListOccupying возвращает записи владельца, занимающие время и пересекающиеся с [from, to)
// Запись любой длительности, начавшаяся раньше from, попадает в выборку, если ее конец позже from
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка и вставка были атомарны
func (r *Repository) ListOccupying(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		statuses[i] = string(s)
	}

	selectBuilder := baseSelect().
		Where(squirrel.Eq{"a.owner_id": ownerID}).
		Where(squirrel.Eq{"a.status": statuses}).
		Where(squirrel.Lt{"a.scheduled_time": to}).
		Where(squirrel.Expr(endExpr+" > ?", from)).
		OrderBy("a.scheduled_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List возвращает записи владельца по фильтру
// Search ищет без учета регистра по имени и телефону клиента и по заметкам
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().
		Where(squirrel.Eq{"a.owner_id": filter.OwnerID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.scheduled_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"a.scheduled_time": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.phone": pattern},
			squirrel.ILike{"a.notes": pattern},
		})
	}

	query, args, err := selectBuilder.OrderBy("a.scheduled_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update сохраняет изменяемые поля записи
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("client_id", a.ClientID).
		Set("service_id", a.ServiceID).
		Set("scheduled_time", a.ScheduledTime).
		Set("duration_minutes", a.DurationMinutes).
		Set("duration_override", a.DurationOverride).
		Set("status", a.Status).
		Set("final_price", a.FinalPrice).
		Set("discount", a.Discount).
		Set("notes", a.Notes).
		Set("financial_record_id", a.FinancialRecordID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID, "owner_id": a.OwnerID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// Delete физически удаляет запись владельца
func (r *Repository) Delete(ctx context.Context, ownerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// LockOwner берет транзакционную advisory-блокировку владельца
// Вне транзакции блокировка снимается сразу после запроса, поэтому вызывать только внутри неё
func (r *Repository) LockOwner(ctx context.Context, ownerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", ownerID); err != nil {
		return fmt.Errorf("%w: owner=%d: %w", ErrLockOwner, ownerID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.ClientID,
		&a.ServiceID,
		&a.ScheduledTime,
		&a.DurationMinutes,
		&a.DurationOverride,
		&a.Status,
		&a.FinalPrice,
		&a.Discount,
		&a.Notes,
		&a.Source,
		&a.BookingLinkID,
		&a.FinancialRecordID,
		&a.ClientName,
		&a.ClientPhone,
		&a.ServiceName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
