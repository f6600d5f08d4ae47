package sale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/pkg/dbmetrics"
	"github.com/homemcom/AgendaService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var saleColumns = []string{
	"id",
	"shop_id",
	"product_id",
	"product_name",
	"quantity",
	"unit_price",
	"total_price",
	"sold_at",
	"note",
	"created_at",
}

// Repository репозиторий для работы с товарами и продажами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория продаж
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProductByID получает активный товар магазина
func (r *Repository) GetProductByID(ctx context.Context, shopID, productID int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "price", "active", "created_at", "updated_at").
		From("products").
		Where(squirrel.Eq{"id": productID, "shop_id": shopID, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - build select query: %v", ErrBuildQuery, err)
	}

	var product domain.Product
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.ShopID,
		&product.Name,
		&product.Price,
		&product.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - scan product: %v", ErrScanRow, err)
	}

	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return &product, nil
}

// CreateSale создает запись о продаже
func (r *Repository) CreateSale(ctx context.Context, s *domain.ProductSale) (*domain.ProductSale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("product_sales").
		Columns(
			"shop_id",
			"product_id",
			"product_name",
			"quantity",
			"unit_price",
			"total_price",
			"sold_at",
			"note",
		).
		Values(
			s.ShopID,
			s.ProductID,
			s.ProductName,
			s.Quantity,
			s.UnitPrice,
			s.TotalPrice,
			s.SoldAt,
			s.Note,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSale - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSale - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time

	return s, nil
}

// ListSalesByShopForPeriod получает продажи магазина за период [start, end)
func (r *Repository) ListSalesByShopForPeriod(ctx context.Context, shopID int64, start, end time.Time) ([]*domain.ProductSale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(saleColumns...).
		From("product_sales").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.GtOrEq{"sold_at": start}).
		Where(squirrel.Lt{"sold_at": end}).
		OrderBy("sold_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSalesByShopForPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSalesByShopForPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sales := make([]*domain.ProductSale, 0)
	for rows.Next() {
		var s domain.ProductSale
		var createdAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.ShopID,
			&s.ProductID,
			&s.ProductName,
			&s.Quantity,
			&s.UnitPrice,
			&s.TotalPrice,
			&s.SoldAt,
			&s.Note,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSalesByShopForPeriod - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		sales = append(sales, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSalesByShopForPeriod - rows error: %v", ErrScanRow, err)
	}

	return sales, nil
}
