package spot

import "errors"

var (
	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("spot.repository: spot not found")

	// ErrDuplicateSpot возвращается при попытке создать место с существующим ID
	ErrDuplicateSpot = errors.New("spot.repository: spot already exists")

	// ErrSpotInUse возвращается при удалении места, на которое ссылаются бронирования
	ErrSpotInUse = errors.New("spot.repository: spot is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("spot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("spot.repository: failed to scan row")
)
