package workinghours

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
	"weekday",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с блоками рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveByShopAndWeekday получает активные блоки рабочих часов магазина
// на день недели, отсортированные по времени начала. Порядок важен:
// движок доступности обходит блоки в хронологическом порядке.
func (r *Repository) ListActiveByShopAndWeekday(ctx context.Context, shopID int64, weekday domain.Weekday) ([]*domain.WorkingHoursBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("working_hours_blocks").
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

// ListByShop получает все блоки рабочих часов магазина,
// отсортированные по дню недели и времени начала
func (r *Repository) ListByShop(ctx context.Context, shopID int64) ([]*domain.WorkingHoursBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("working_hours_blocks").
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

// ExistsOverlapping проверяет, есть ли у магазина активный блок того же дня
// недели, пересекающийся с интервалом [start, end). Используется на записи:
// расписание с пересекающимися блоками не допускается.
func (r *Repository) ExistsOverlapping(ctx context.Context, shopID int64, weekday domain.Weekday, start, end string, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("working_hours_blocks").
		Where(squirrel.Eq{"shop_id": shopID, "weekday": weekday, "active": true}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// Create создает новый блок рабочих часов
func (r *Repository) Create(ctx context.Context, block *domain.WorkingHoursBlock) (*domain.WorkingHoursBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours_blocks").
		Columns("shop_id", "weekday", "start_time", "end_time", "active").
		Values(block.ShopID, block.Weekday, block.Start, block.End, block.Active).
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

// Delete удаляет блок рабочих часов магазина
func (r *Repository) Delete(ctx context.Context, shopID, blockID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours_blocks").
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

func (r *Repository) scanBlocks(rows *sql.Rows, op string) ([]*domain.WorkingHoursBlock, error) {
	blocks := make([]*domain.WorkingHoursBlock, 0)

	for rows.Next() {
		var block domain.WorkingHoursBlock
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.ShopID,
			&block.Weekday,
			&block.Start,
			&block.End,
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
