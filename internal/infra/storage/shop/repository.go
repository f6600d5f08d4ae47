package shop

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/pkg/dbmetrics"
	"github.com/homemcom/AgendaService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var shopColumns = []string{
	"id",
	"owner_id",
	"name",
	"slug",
	"phone",
	"address",
	"kind",
	"timezone",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с магазинами (тенантами)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория магазинов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает активный магазин по публичному slug.
// Используется публичной ссылкой бронирования: деактивированные магазины
// недоступны клиентам.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shopColumns...).
		From("shops").
		Where(squirrel.Eq{"slug": slug, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetBySlug")
}

// GetByID получает магазин по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shopColumns...).
		From("shops").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Shop, error) {
	var shop domain.Shop
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Slug,
		&shop.Phone,
		&shop.Address,
		&shop.Kind,
		&shop.Timezone,
		&shop.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan shop: %v", ErrScanRow, op, err)
	}

	shop.CreatedAt = createdAt.Time
	shop.UpdatedAt = updatedAt.Time

	return &shop, nil
}
