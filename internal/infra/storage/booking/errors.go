package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateConfirmation возвращается при нарушении уникальности (kind, confirmation_number)
	ErrDuplicateConfirmation = errors.New("booking.repository: duplicate confirmation number")

	// ErrReferenceNotFound возвращается, если место, услуга или клиент не существуют
	ErrReferenceNotFound = errors.New("booking.repository: referenced entity not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
