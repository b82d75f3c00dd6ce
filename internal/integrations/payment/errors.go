package payment

import "errors"

var (
	// ErrPaymentRejected возвращается, когда платежный шлюз отклонил списание
	ErrPaymentRejected = errors.New("payment: charge rejected")

	// ErrUnauthorized возвращается, когда шлюз не принял учетные данные плательщика
	ErrUnauthorized = errors.New("payment: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("payment client: invalid response")
)
