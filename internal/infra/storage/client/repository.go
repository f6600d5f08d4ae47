package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/pkg/dbmetrics"
	"github.com/homemcom/AgendaService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var clientColumns = []string{
	"id",
	"shop_id",
	"name",
	"phone",
	"notes",
	"blocked_online",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами магазина
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента магазина по ID
func (r *Repository) GetByID(ctx context.Context, shopID, clientID int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"id": clientID, "shop_id": shopID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByPhone получает клиента магазина по телефону.
// Телефон уникален в пределах магазина.
func (r *Repository) GetByPhone(ctx context.Context, shopID int64, phone string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"shop_id": shopID, "phone": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByPhone")
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("shop_id", "name", "phone", "notes", "blocked_online").
		Values(client.ShopID, client.Name, client.Phone, client.Notes, client.BlockedOnline).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return client, nil
}

// GetOrCreateByPhone находит клиента магазина по телефону или создает нового.
// Публичное бронирование идентифицирует клиента телефоном: повторный визит
// не должен плодить дубликаты.
func (r *Repository) GetOrCreateByPhone(ctx context.Context, shopID int64, name, phone string) (*domain.Client, error) {
	existing, err := r.GetByPhone(ctx, shopID, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrClientNotFound) {
		return nil, err
	}

	return r.Create(ctx, &domain.Client{
		ShopID: shopID,
		Name:   name,
		Phone:  &phone,
	})
}

func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Client, error) {
	var client domain.Client
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&client.ID,
		&client.ShopID,
		&client.Name,
		&client.Phone,
		&client.Notes,
		&client.BlockedOnline,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}
