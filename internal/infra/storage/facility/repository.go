package facility

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

var configColumns = []string{
	"id",
	"monthly_fee",
	"increment_fee",
	"increment_minutes",
	"max_increment_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

var scheduleColumns = []string{"id", "config_id", "day", "start_time", "end_time"}

// Repository репозиторий конфигураций парковки и их расписаний
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает неактивную конфигурацию вместе с расписаниями
// Вызывающий должен передать транзакцию в контексте, чтобы вставка была атомарной
func (r *Repository) Create(ctx context.Context, config *domain.FacilityConfig) (*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facility_configs").
		Columns("monthly_fee", "increment_fee", "increment_minutes", "max_increment_minutes").
		Values(config.MonthlyFee, config.IncrementFee, config.IncrementMinutes, config.MaxIncrementMinutes).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &config.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	for i := range config.Schedules {
		config.Schedules[i].ConfigID = config.ID
		saved, err := r.UpsertSchedule(ctx, &config.Schedules[i])
		if err != nil {
			return nil, err
		}
		config.Schedules[i] = *saved
	}

	return config, nil
}

// GetByID получает конфигурацию с расписаниями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.FacilityConfig, error) {
	config, err := r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	return config, err
}

// GetActive получает активную конфигурацию с расписаниями
func (r *Repository) GetActive(ctx context.Context) (*domain.FacilityConfig, error) {
	config, err := r.getOne(ctx, "GetActive", squirrel.Eq{"is_active": true})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveConfig
	}
	return config, err
}

// List получает все конфигурации без расписаний, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("facility_configs").
		OrderBy("id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.FacilityConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Activate делает конфигурацию id единственной активной
// Должен вызываться внутри сериализуемой транзакции
func (r *Repository) Activate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deactivate, dArgs, err := psqlbuilder.Update("facility_configs").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.NotEq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Activate - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivate, dArgs...); err != nil {
		return fmt.Errorf("%w: Activate - deactivate current: %v", ErrExecQuery, err)
	}

	activate, aArgs, err := psqlbuilder.Update("facility_configs").
		Set("is_active", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Activate - build activate query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, activate, aArgs...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrActiveConflict
		}
		return fmt.Errorf("%w: Activate - activate: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Activate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// UpsertSchedule создает или заменяет расписание конфигурации на день недели
func (r *Repository) UpsertSchedule(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("config_id", "day", "start_time", "end_time").
		Values(schedule.ConfigID, int(schedule.Day), schedule.StartTime, schedule.EndTime).
		Suffix("ON CONFLICT (config_id, day) DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&schedule.ID); err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: UpsertSchedule - execute insert: %v", ErrExecQuery, err)
	}

	return schedule, nil
}

// DeleteSchedule удаляет расписание на день недели
func (r *Repository) DeleteSchedule(ctx context.Context, configID int64, day time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"config_id": configID, "day": int(day)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSchedule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// GetScheduleForDay получает расписание конфигурации на день недели
func (r *Repository) GetScheduleForDay(ctx context.Context, configID int64, day time.Weekday) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"config_id": configID, "day": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleForDay - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Schedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ConfigID, &s.Day, &s.StartTime, &s.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleForDay - scan schedule: %v", ErrScanRow, err)
	}

	return &s, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("facility_configs").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan config: %v", ErrScanRow, op, err)
	}

	schedules, err := r.getSchedules(ctx, config.ID)
	if err != nil {
		return nil, err
	}
	config.Schedules = schedules

	return config, nil
}

func (r *Repository) getSchedules(ctx context.Context, configID int64) ([]domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"config_id": configID}).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0, 7)
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.ConfigID, &s.Day, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getSchedules - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.FacilityConfig, error) {
	var c domain.FacilityConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.MonthlyFee,
		&c.IncrementFee,
		&c.IncrementMinutes,
		&c.MaxIncrementMinutes,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
