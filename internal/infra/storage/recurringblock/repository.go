package recurringblock

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

var blockColumns = []string{
	"id",
	"shop_id",
	"kind",
	"title",
	"weekday",
	"start_time",
	"end_time",
	"service_id",
	"duration_minutes",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с повторяющимися блоками
// (постоянные клиенты, перерывы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория повторяющихся блоков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveByShopAndWeekday получает активные повторяющиеся блоки магазина
// на день недели. Блоки могут пересекаться между собой — это допустимо,
// движок доступности учитывает их объединение.
func (r *Repository) ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.RecurringBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("recurring_blocks").
		Where(squirrel.Eq{"shop_id": shopID, "weekday": weekday, "active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByShopAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByShopAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows, "ListActiveByShopAndWeekday")
}

// ListByShop получает все повторяющиеся блоки магазина
func (r *Repository) ListByShop(ctx context.Context, shopID int64) ([]*domain.RecurringBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("recurring_blocks").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("weekday ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows, "ListByShop")
}

// Create создает новый повторяющийся блок
func (r *Repository) Create(ctx context.Context, block *domain.RecurringBlock) (*domain.RecurringBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_blocks").
		Columns(
			"shop_id",
			"kind",
			"title",
			"weekday",
			"start_time",
			"end_time",
			"service_id",
			"duration_minutes",
			"active",
		).
		Values(
			block.ShopID,
			block.Kind,
			block.Title,
			block.Weekday,
			block.Start,
			block.End,
			block.ServiceID,
			block.DurationMinutes,
			block.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// Delete удаляет повторяющийся блок магазина
func (r *Repository) Delete(ctx context.Context, shopID, blockID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("recurring_blocks").
		Where(squirrel.Eq{"id": blockID, "shop_id": shopID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

func (r *Repository) scanBlocks(rows *sql.Rows, op string) ([]*domain.RecurringBlock, error) {
	blocks := make([]*domain.RecurringBlock, 0)

	for rows.Next() {
		var block domain.RecurringBlock
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.ShopID,
			&block.Kind,
			&block.Title,
			&block.Weekday,
			&block.Start,
			&block.End,
			&block.ServiceID,
			&block.DurationMinutes,
			&block.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		block.CreatedAt = createdAt.Time
		block.UpdatedAt = updatedAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return blocks, nil
}
