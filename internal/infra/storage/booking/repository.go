package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"kind",
	"status",
	"start_time",
	"end_time",
	"cost",
	"license_plate",
	"confirmation_number",
	"customer_id",
	"parking_spot_id",
	"billing_account_id",
	"vehicle_service_id",
	"duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование и присваивает ему идентификатор
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	id := uuid.NewString()

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"kind",
			"status",
			"start_time",
			"end_time",
			"cost",
			"license_plate",
			"confirmation_number",
			"customer_id",
			"parking_spot_id",
			"billing_account_id",
			"vehicle_service_id",
			"duration_minutes",
		).
		Values(
			id,
			booking.Kind,
			booking.Status,
			booking.StartTime,
			booking.EndTime,
			booking.Cost,
			booking.LicensePlate,
			booking.ConfirmationNumber,
			booking.CustomerID,
			booking.ParkingSpotID,
			booking.BillingAccountID,
			booking.VehicleServiceID,
			booking.DurationMinutes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: Create - %v", ErrDuplicateConfirmation, err)
		case pgerrors.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: Create - %v", ErrReferenceNotFound, err)
		case pgerrors.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: Create - %v", pgerrors.ErrSerializationFailure, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.ID = id
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByConfirmationNumber получает бронирование по коду подтверждения
// Код должен быть уже нормализован (верхний регистр)
func (r *Repository) GetByConfirmationNumber(ctx context.Context, kind domain.BookingKind, code string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByConfirmationNumber", squirrel.Eq{"kind": kind, "confirmation_number": code})
}

// ConfirmationNumberExists проверяет, занят ли код подтверждения для данного типа бронирования
func (r *Repository) ConfirmationNumberExists(ctx context.Context, kind domain.BookingKind, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"kind": kind, "confirmation_number": code}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ConfirmationNumberExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ConfirmationNumberExists - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetByFilter получает бронирования по фильтру
// Сортировка по времени начала, сначала новые
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_time DESC")

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.ActiveAt != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.LtOrEq{"start_time": *filter.ActiveAt}).
			Where(squirrel.GtOrEq{"end_time": *filter.ActiveAt})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// IsSpotActivelyBooked проверяет, есть ли у места бронирование, диапазон которого содержит now
// Блокировка строки места выполняется в spot.Repository.GetByID внутри транзакции
func (r *Repository) IsSpotActivelyBooked(ctx context.Context, spotID string, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"kind": domain.KindParking, "parking_spot_id": spotID}).
		Where(squirrel.LtOrEq{"start_time": now}).
		Where(squirrel.GtOrEq{"end_time": now}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsSpotActivelyBooked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsSpotActivelyBooked - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// CountUnassignedMonthly считает оплаченные месячные аренды без назначенного места, не закончившиеся к now
// Каждая из них уже занимает одно место из пула RESERVED
func (r *Repository) CountUnassignedMonthly(ctx context.Context, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"kind": domain.KindParking, "status": domain.StatusPaid, "parking_spot_id": nil}).
		Where(squirrel.GtOrEq{"end_time": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUnassignedMonthly - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUnassignedMonthly - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetServiceBookingsInRange возвращает проекции бронирований услуг,
// диапазоны которых пересекаются с [start, end] включительно
// При status == nil возвращаются бронирования в любом статусе
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetServiceBookingsInRange(
	ctx context.Context,
	serviceIDs []string,
	start, end time.Time,
	status *domain.BookingStatus,
) ([]domain.ServiceBookingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.vehicle_service_id",
		"s.display_name",
		"b.start_time",
		"b.end_time",
	).
		From("bookings b").
		Join("vehicle_services s ON s.id = b.vehicle_service_id").
		Where(squirrel.Eq{"b.kind": domain.KindService, "b.vehicle_service_id": serviceIDs}).
		Where(squirrel.LtOrEq{"b.start_time": end}).
		Where(squirrel.GtOrEq{"b.end_time": start}).
		OrderBy("b.start_time ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *status})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceBookingsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceBookingsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.ServiceBookingWindow, 0)
	for rows.Next() {
		var w domain.ServiceBookingWindow
		if err := rows.Scan(&w.BookingID, &w.ServiceID, &w.ServiceName, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetServiceBookingsInRange - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServiceBookingsInRange - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Update сохраняет изменяемые администратором поля: статус и место
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("parking_spot_id", booking.ParkingSpotID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Update - %v", ErrReferenceNotFound, err)
		}
		if pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: Update - %v", pgerrors.ErrSerializationFailure, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

// Delete физически удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
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
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Kind,
		&booking.Status,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Cost,
		&booking.LicensePlate,
		&booking.ConfirmationNumber,
		&booking.CustomerID,
		&booking.ParkingSpotID,
		&booking.BillingAccountID,
		&booking.VehicleServiceID,
		&booking.DurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
