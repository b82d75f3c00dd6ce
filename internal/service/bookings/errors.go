package bookings

import "errors"

// Типы ошибок движка бронирований
// Каждая ошибка движка оборачивает ровно один из них, KindOf возвращает его машиночитаемый код
var (
	// ErrInvalidRequest некорректный запрос: неверный тип ТС, неизвестная услуга, превышение длительности
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflict ресурс уже занят: место, слот услуги, нет свободных мест для месячной аренды
	ErrConflict = errors.New("conflict")

	// ErrNotFound бронирование, место или клиент не найдены
	ErrNotFound = errors.New("not found")

	// ErrPaymentRejected платежный шлюз отклонил списание
	ErrPaymentRejected = errors.New("payment rejected")

	// ErrUnauthorized платежный шлюз не принял учетные данные
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// Машиночитаемые коды ошибок
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeConflict        = "CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodePaymentRejected = "PAYMENT_REJECTED"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternal        = "INTERNAL"
)

// KindOf возвращает код типа ошибки; неизвестные ошибки считаются внутренними
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrPaymentRejected):
		return CodePaymentRejected
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
