package middleware

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxAuthToken
	ctxUserID
	ctxRoles
)

// RequestIDFrom возвращает request id запроса, если он есть в контексте.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxRequestID).(string)
	return id, ok
}

// AuthTokenFrom возвращает «сырой» bearer-токен запроса, если он есть.
func AuthTokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxAuthToken).(string)
	return token, ok
}

// UserIDFrom возвращает идентификатор аутентифицированного пользователя.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserID).(uuid.UUID)
	return id, ok
}

// RolesFrom возвращает клеймы ролей аутентифицированного пользователя.
func RolesFrom(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(ctxRoles).([]string)
	return roles, ok
}
