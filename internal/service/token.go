package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/pkg/log"
)

// Purpose-клеймы токенов. Каждый тип токена несёт явное назначение и
// валидатор требует точного совпадения: access-токен нельзя предъявить
// как refresh и наоборот, а токен восстановления пароля не принимается
// как access-токен, хотя подписан тем же секретом.
const (
	purposeAccess   = "access"
	purposeRefresh  = "refresh"
	purposeRecovery = "password_reset"
)

type accessClaims struct {
	UserID  string   `json:"uid"`
	Roles   []string `json:"roles,omitempty"`
	Purpose string   `json:"purpose"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	UserID  string `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type recoveryClaims struct {
	UserID  string `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// registered формирует стандартные клеймы с заданным сроком жизни.
func (s *Service) registered(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    s.cfg.Issuer,
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings(s.cfg.Audience),
	}
}

// generateAccessToken генерирует access-токен с клеймами ролей пользователя.
// Роли — снимок на момент выпуска; до следующего refresh/login они не обновляются.
func (s *Service) generateAccessToken(ctx context.Context, user *models.User, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	claims := accessClaims{
		UserID:           user.ID.String(),
		Roles:            user.RoleNames(),
		Purpose:          purposeAccess,
		RegisteredClaims: s.registered(user.ID, now, s.cfg.AccessTokenTTL),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		log.From(ctx).Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// generateRefreshToken генерирует refresh-токен, подписанный отдельным секретом.
// Роли в него намеренно не кладутся: при refresh они заново читаются из
// хранилища, чтобы новый access-токен отражал текущее состояние.
func (s *Service) generateRefreshToken(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	const op = "service.token.generateRefreshToken"

	claims := refreshClaims{
		UserID:           userID.String(),
		Purpose:          purposeRefresh,
		RegisteredClaims: s.registered(userID, now, s.cfg.RefreshTokenTTL),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		log.From(ctx).Error("refresh_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// generateRecoveryToken генерирует короткоживущий токен восстановления пароля.
func (s *Service) generateRecoveryToken(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	const op = "service.token.generateRecoveryToken"

	claims := recoveryClaims{
		UserID:           userID.String(),
		Purpose:          purposeRecovery,
		RegisteredClaims: s.registered(userID, now, s.cfg.RecoveryTokenTTL),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		log.From(ctx).Error("recovery_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// parseToken — общий парсинг и базовая валидация HS256-токена.
// Любая причина отказа (подпись, формат, срок) наружу схлопывается
// в ErrInvalidToken; конкретика остаётся в логе вызывающего.
func (s *Service) parseToken(tokenStr string, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrInvalidToken
			}

			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
	)
	if err != nil {
		return err
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}

// validateAccessToken валидирует access-токен и возвращает субъекта и роли.
func (s *Service) validateAccessToken(ctx context.Context, tokenStr string) (uuid.UUID, []string, error) {
	const op = "service.token.validateAccessToken"

	lg := log.From(ctx)

	var claims accessClaims
	if err := s.parseToken(tokenStr, s.cfg.AccessSecret, &claims); err != nil {
		// Причину различаем только в логе; наружу — единый ErrInvalidToken.
		if errors.Is(err, jwt.ErrTokenExpired) {
			lg.Warn("access_token_expired", slog.String("op", op))
		} else {
			lg.Warn("access_token_invalid", slog.String("op", op))
		}

		return uuid.Nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.Purpose != purposeAccess {
		lg.Warn("access_token_wrong_purpose", slog.String("op", op))
		return uuid.Nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, claims.Roles, nil
}

// validateRefreshToken валидирует refresh-токен и возвращает субъекта.
func (s *Service) validateRefreshToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	const op = "service.token.validateRefreshToken"

	lg := log.From(ctx)

	var claims refreshClaims
	if err := s.parseToken(tokenStr, s.cfg.RefreshSecret, &claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			lg.Warn("refresh_token_expired", slog.String("op", op))
		} else {
			lg.Warn("refresh_token_invalid", slog.String("op", op))
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.Purpose != purposeRefresh {
		lg.Warn("refresh_token_wrong_purpose", slog.String("op", op))
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}

// validateRecoveryToken валидирует токен восстановления пароля.
func (s *Service) validateRecoveryToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	const op = "service.token.validateRecoveryToken"

	lg := log.From(ctx)

	var claims recoveryClaims
	if err := s.parseToken(tokenStr, s.cfg.AccessSecret, &claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			lg.Warn("recovery_token_expired", slog.String("op", op))
		} else {
			lg.Warn("recovery_token_invalid", slog.String("op", op))
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.Purpose != purposeRecovery {
		lg.Warn("recovery_token_wrong_purpose", slog.String("op", op))
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}
