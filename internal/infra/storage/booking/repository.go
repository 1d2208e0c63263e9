package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DroneBookingService/pkg/txmanager"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Занятость слота не проверяется: проверка доступности носит рекомендательный характер.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	data, err := toRow(booking)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(columns...).
		Values(data.values()...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var data row
	err = executor.QueryRowContext(ctx, query, args...).Scan(data.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return data.toDomain()
}

// ListByScope получает бронирования компании с фильтрацией по области
// Поддерживает фильтрацию по:
// - Объекту (AssetRef) - опционально
// - Дате точного плана (ExactDate) - только точные планы на эту дату, без отмененных
// - Статусу (Status) - опционально
func (r *Repository) ListByScope(ctx context.Context, scope domain.BookingScope) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(scope).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScope - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScope - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func buildListQuery(scope domain.BookingScope) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"company_ref": scope.CompanyRef})

	// Фильтрация по объекту (если указан)
	if scope.AssetRef != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"asset_ref": *scope.AssetRef})
	}

	// Для проверки занятости нужны только точные планы на дату
	if scope.ExactDate != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"plan_kind": string(domain.PlanExact)}).
			Where(squirrel.Eq{"plan_date": scope.ExactDate.Format(domain.DateFormat)})

		if scope.Status == nil {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
		}
	}

	// Фильтрация по статусу
	if scope.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*scope.Status)})
	}

	if scope.ExactDate != nil {
		return selectBuilder.OrderBy("time_slot ASC", "created_at ASC")
	}
	return selectBuilder.OrderBy("created_at DESC")
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var data row
		if err := rows.Scan(data.scanTargets()...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking, err := data.toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
