package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

// Заголовки идентификации, выставляются шлюзом после проверки токена
const (
	HeaderAccountID = "X-Account-ID"
	HeaderEmployee  = "X-Employee"
)

const (
	msgMissingAccountID = "отсутствует ID аккаунта"
	msgEmployeeOnly     = "доступно только сотрудникам"
	msgInvalidEmployee  = "некорректный заголовок X-Employee"
)

type contextKey string

const (
	accountIDKey contextKey = "accountID"
	employeeKey  contextKey = "employee"
)

// Auth переносит заголовки идентификации в контекст запроса
// Анонимные запросы пропускаются: бронирование без аккаунта допустимо
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if accountID := strings.TrimSpace(r.Header.Get(HeaderAccountID)); accountID != "" {
			ctx = context.WithValue(ctx, accountIDKey, accountID)
		}

		if raw := r.Header.Get(HeaderEmployee); raw != "" {
			isEmployee, err := strconv.ParseBool(raw)
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidEmployee)
				return
			}
			ctx = context.WithValue(ctx, employeeKey, isEmployee)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAccount отклоняет запросы без X-Account-ID
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetAccountID(r.Context()); !ok {
			handlers.RespondUnauthorized(w, msgMissingAccountID)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEmployee пропускает только сотрудников
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsEmployee(r.Context()) {
			handlers.RespondForbidden(w, msgEmployeeOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetAccountID извлекает ID аккаунта из контекста
func GetAccountID(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDKey).(string)
	return accountID, ok
}

// IsEmployee сообщает, выполнен ли запрос сотрудником
func IsEmployee(ctx context.Context) bool {
	isEmployee, _ := ctx.Value(employeeKey).(bool)
	return isEmployee
}
