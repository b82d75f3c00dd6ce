package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса; неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку; код выбирается по HTTP статусу
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: codeForStatus(status), Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500; детали ошибки клиенту не передаются
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondBookingError пишет ошибку движка бронирования: код = тип ошибки,
// сообщение = текст ошибки (кроме внутренних)
func RespondBookingError(w http.ResponseWriter, err error) {
	kind := bookings.KindOf(err)
	status := StatusForKind(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = msgInternalError
	}

	RespondJSON(w, status, ErrorResponse{Code: kind, Message: message})
}

// StatusForKind сопоставляет тип ошибки движка с HTTP статусом
func StatusForKind(kind string) int {
	switch kind {
	case bookings.CodeInvalidRequest:
		return http.StatusBadRequest
	case bookings.CodeConflict:
		return http.StatusConflict
	case bookings.CodeNotFound:
		return http.StatusNotFound
	case bookings.CodePaymentRejected:
		return http.StatusPaymentRequired
	case bookings.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return bookings.CodeInvalidRequest
	case http.StatusUnauthorized:
		return bookings.CodeUnauthorized
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return bookings.CodeNotFound
	case http.StatusConflict:
		return bookings.CodeConflict
	case http.StatusPaymentRequired:
		return bookings.CodePaymentRejected
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return bookings.CodeInternal
	}
}
