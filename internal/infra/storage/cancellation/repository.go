package cancellation

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

// Repository репозиторий для работы с записями об отмене
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отмен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись об отмене. Вызывается в одной транзакции
// со сменой статуса записи — отмена без аудита не допускается.
func (r *Repository) Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellations").
		Columns("appointment_id", "reason", "note", "approved_by").
		Values(c.AppointmentID, c.Reason, c.Note, c.ApprovedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByAppointmentID получает запись об отмене по ID записи
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "reason", "note", "approved_by", "created_at").
		From("cancellations").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Cancellation
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.AppointmentID,
		&c.Reason,
		&c.Note,
		&c.ApprovedBy,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan cancellation: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}
