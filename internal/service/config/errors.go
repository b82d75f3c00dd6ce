package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("config not found")

	// ErrNoActiveConfig возвращается, когда ни одна конфигурация не активна
	ErrNoActiveConfig = errors.New("no active config")

	// ErrScheduleNotFound возвращается, когда у конфигурации нет расписания на день
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrActivationConflict возвращается, когда конфигурацию параллельно активировали
	ErrActivationConflict = errors.New("config activation conflict")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
