package create_booking

import "errors"

// Ошибки usecase дополнительно оборачивают тип ошибки движка (bookings.ErrInvalidRequest и т.д.),
// поэтому обработчики различают их через bookings.KindOf
var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStartInPast возвращается, когда начало услуги уже прошло
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrChargeFailed возвращается, когда списание не удалось
	ErrChargeFailed = errors.New("create_booking: charge failed")
)
