package payment

import "github.com/shopspring/decimal"

// ChargeRequest запрос на списание
type ChargeRequest struct {
	IsEmployee    bool            `json:"is_employee"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// ChargeResponse ответ шлюза об успешном списании
type ChargeResponse struct {
	ChargedAmount decimal.Decimal `json:"charged_amount"`
	TransactionID string          `json:"transaction_id"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
