package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/account-service/internal/limiter"
	"github.com/pribylovaa/account-service/internal/pkg/log"
	"github.com/pribylovaa/account-service/internal/pkg/redact"
)

// allowLogin проверяет лимит неудачных попыток входа по нормализованному email.
// При недоступном Redis вход не блокируем (fail-open): bcrypt остаётся
// основным ограничителем перебора, а доступность входа важнее троттлинга.
func (s *Service) allowLogin(ctx context.Context, email string) error {
	const op = "service.limiter.allowLogin"

	if s.loginLimiter == nil {
		return nil
	}

	if err := s.loginLimiter.Allow(ctx, email); err != nil {
		if errors.Is(err, limiter.ErrRateLimited) {
			log.From(ctx).Warn("login_rate_limited",
				slog.String("op", op),
				slog.String("email", redact.Email(email)),
			)
			return fmt.Errorf("%s: %w", op, ErrTooManyAttempts)
		}

		log.From(ctx).Warn("login_limiter_unavailable",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	return nil
}

// noteFailedLogin фиксирует неудачную попытку входа; ошибки лимитера
// не влияют на результат аутентификации.
func (s *Service) noteFailedLogin(ctx context.Context, email string) {
	const op = "service.limiter.noteFailedLogin"

	if s.loginLimiter == nil {
		return
	}

	if err := s.loginLimiter.Fail(ctx, email); err != nil {
		log.From(ctx).Warn("login_limiter_fail_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}

// resetFailedLogins сбрасывает счётчик после успешного входа.
func (s *Service) resetFailedLogins(ctx context.Context, email string) {
	const op = "service.limiter.resetFailedLogins"

	if s.loginLimiter == nil {
		return
	}

	if err := s.loginLimiter.Reset(ctx, email); err != nil {
		log.From(ctx).Warn("login_limiter_reset_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}
