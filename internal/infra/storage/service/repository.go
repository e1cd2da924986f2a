package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository каталог услуг (только чтение)
// Длительность хранится как interval ("00:45:00") и переводится в минуты здесь
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу владельца
func (r *Repository) GetByID(ctx context.Context, ownerID, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name", "duration", "price").
		From("services").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	return s, nil
}

// GetByIDs получает услуги владельца из списка ID, отсутствующие пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ownerID int64, ids []int64) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0, len(ids))
	if len(ids) == 0 {
		return services, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name", "duration", "price").
		From("services").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByIDs: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s        domain.Service
		duration string
	)

	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &duration, &s.Price); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	minutes, err := types.ParseDuration(duration)
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("%w: service id=%d duration %q", ErrInvalidDuration, s.ID, duration)
	}
	s.DurationMinutes = minutes

	return &s, nil
}
