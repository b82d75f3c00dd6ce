package facility

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("facility.repository: config not found")

	// ErrNoActiveConfig возвращается, когда нет активной конфигурации
	ErrNoActiveConfig = errors.New("facility.repository: no active config")

	// ErrScheduleNotFound возвращается, когда для дня недели нет расписания
	ErrScheduleNotFound = errors.New("facility.repository: schedule not found")

	// ErrActiveConflict возвращается при нарушении единственности активной конфигурации
	ErrActiveConflict = errors.New("facility.repository: another config is active")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
