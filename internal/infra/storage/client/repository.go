package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository справочник клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreateByPhone возвращает ID клиента владельца с этим телефоном, создавая его при необходимости
// Идемпотентен по (ownerID, phone): повторный вызов возвращает тот же ID.
// Непустое имя и email обновляют карточку, пустые значения ее не затирают
func (r *Repository) FindOrCreateByPhone(ctx context.Context, ownerID int64, name, phone string, email *string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("owner_id", "name", "phone", "email").
		Values(ownerID, name, phone, email).
		Suffix(`ON CONFLICT (owner_id, phone) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), clients.name),
			email = COALESCE(EXCLUDED.email, clients.email)
			RETURNING id`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: FindOrCreateByPhone - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: FindOrCreateByPhone - execute upsert: %w", ErrExecQuery, err)
	}

	return id, nil
}

// GetByID получает клиента владельца
func (r *Repository) GetByID(ctx context.Context, ownerID, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name", "phone", "email").
		From("clients").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %w", ErrExecQuery, err)
	}

	return &c, nil
}
