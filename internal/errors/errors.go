// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (сентинелы пакета service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Детали внутренних ошибок (тексты ошибок БД и т.п.) наружу не отдаются.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/account-service/internal/service"
)

// Нестандартный код, часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - известный сентинел — маппится по таблице ниже;
//   - прочее (ошибки БД/инфраструктуры) — 500/internal без утечки деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, envelope("internal", "internal error")
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, envelope("invalid_credentials", "invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, envelope("unauthenticated", "invalid or expired token")
	case errors.Is(err, service.ErrUserBlocked):
		return http.StatusForbidden, envelope("user_blocked", "user is blocked")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, envelope("not_found", "not found")
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, envelope("email_taken", "email already taken")
	case errors.Is(err, service.ErrRoleTaken):
		return http.StatusConflict, envelope("role_taken", "role name already taken")
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, envelope("invalid_argument", "invalid argument")
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests, envelope("rate_limited", "too many attempts")
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, envelope("deadline_exceeded", "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, envelope("canceled", "canceled")
	default:
		return http.StatusInternalServerError, envelope("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func envelope(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}
