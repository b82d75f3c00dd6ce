package spots

import "errors"

var (
	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("spot not found")

	// ErrSpotAlreadyExists возвращается при создании места с существующим ID
	ErrSpotAlreadyExists = errors.New("spot already exists")

	// ErrSpotInUse возвращается при удалении места, на которое есть бронирования
	ErrSpotInUse = errors.New("spot has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
