package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Charge списывает amount со счета accountNumber и возвращает фактически списанную сумму
// Сотрудникам шлюз может применять собственные тарифы, поэтому сумма может отличаться
func (c *Client) Charge(ctx context.Context, isEmployee bool, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	body, err := json.Marshal(ChargeRequest{
		IsEmployee:    isEmployee,
		AccountNumber: accountNumber,
		Amount:        amount,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusPaymentRequired, http.StatusBadRequest, http.StatusUnprocessableEntity:
		c.log.Warn("Charge: rejected amount=%s: %s", amount, readErrorMessage(resp.Body))
		return decimal.Zero, ErrPaymentRejected
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warn("Charge: unauthorized: %s", readErrorMessage(resp.Body))
		return decimal.Zero, ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return decimal.Zero, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var charge ChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Charge: charged=%s requested=%s transaction=%s", charge.ChargedAmount, amount, charge.TransactionID)
	return charge.ChargedAmount, nil
}

func readErrorMessage(r io.Reader) string {
	var errResp ErrorResponse
	if err := json.NewDecoder(r).Decode(&errResp); err != nil {
		return "no details"
	}
	return errResp.Message
}

// ApproveAll шлюз для локального запуска без платежного сервиса: одобряет любое списание
type ApproveAll struct{}

// Charge возвращает запрошенную сумму
func (ApproveAll) Charge(_ context.Context, _ bool, _ string, amount decimal.Decimal) (decimal.Decimal, error) {
	return amount, nil
}
