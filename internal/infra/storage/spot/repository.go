package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var spotColumns = []string{"id", "vehicle_type", "status", "message", "created_at", "updated_at"}

// Repository репозиторий парковочных мест
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает место
func (r *Repository) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_spots").
		Columns("id", "vehicle_type", "status", "message").
		Values(spot.ID, spot.VehicleType, spot.Status, spot.Message).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateSpot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return spot, nil
}

// GetByID получает место по ID
// Внутри транзакции строка блокируется (FOR UPDATE), что сериализует бронирования одного места
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(spotColumns...).
		From("parking_spots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	spot, err := scanSpot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan spot: %v", ErrScanRow, err)
	}

	return spot, nil
}

// List получает места по фильтру, отсортированные по ID
func (r *Repository) List(ctx context.Context, filter domain.SpotsFilter) ([]*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(spotColumns...).
		From("parking_spots").
		OrderBy("id ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.VehicleType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_type": *filter.VehicleType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spots := make([]*domain.ParkingSpot, 0)
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return spots, nil
}

// CountUnbookedReserved считает места в статусе RESERVED без активного бронирования на момент now
func (r *Repository) CountUnbookedReserved(ctx context.Context, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Подзапрос собирается с плейсхолдерами "?", нумерацию $N выполняет внешний запрос
	active := squirrel.Select("1").
		From("bookings b").
		Where("b.parking_spot_id = p.id").
		Where(squirrel.LtOrEq{"b.start_time": now}).
		Where(squirrel.GtOrEq{"b.end_time": now})

	activeSQL, activeArgs, err := active.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountUnbookedReserved - build subquery: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("parking_spots p").
		Where(squirrel.Eq{"p.status": domain.SpotReserved}).
		Where(squirrel.Expr("NOT EXISTS ("+activeSQL+")", activeArgs...)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUnbookedReserved - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUnbookedReserved - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет статус и сообщение места
func (r *Repository) Update(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_spots").
		Set("status", spot.Status).
		Set("message", spot.Message).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": spot.ID}).
		Suffix("RETURNING vehicle_type, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&spot.VehicleType, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return spot, nil
}

// Delete удаляет место
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_spots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrSpotInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpot(row rowScanner) (*domain.ParkingSpot, error) {
	var spot domain.ParkingSpot
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&spot.ID, &spot.VehicleType, &spot.Status, &spot.Message, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return &spot, nil
}
