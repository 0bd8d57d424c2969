package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/pkg/log"
	"github.com/pribylovaa/account-service/internal/pkg/redact"
	"github.com/pribylovaa/account-service/internal/storage"
)

// UpdateUserInput — частичное обновление пользователя сервисным слоем.
// nil-поле означает «не трогать»; RoleIDs == nil оставляет роли как есть.
type UpdateUserInput struct {
	Name    *string
	Email   *string
	RoleIDs []uuid.UUID
}

// UserByID возвращает пользователя по идентификатору.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "service.users.UserByID"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UpdateUser применяет частичное обновление профиля.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	const op = "service.users.UpdateUser"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	upd := storage.UserUpdate{
		Name:    in.Name,
		RoleIDs: in.RoleIDs,
	}

	if in.Email != nil {
		normEmail, err := validateEmail(*in.Email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
		}
		upd.Email = &normEmail
	}

	user, err := s.storage.UpdateUser(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return user, nil
}

// BlockUser выполняет мягкую блокировку: статус -> blocked плюс запись аудита
// с причиной. Сама учётная запись не удаляется.
func (s *Service) BlockUser(ctx context.Context, id uuid.UUID, reason string) (*models.User, error) {
	return s.setUserStatus(ctx, id, models.StatusBlocked, models.OperationBlock, reason)
}

// UnblockUser снимает блокировку и фиксирует это в аудите.
func (s *Service) UnblockUser(ctx context.Context, id uuid.UUID, reason string) (*models.User, error) {
	return s.setUserStatus(ctx, id, models.StatusActive, models.OperationUnblock, reason)
}

func (s *Service) setUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus, opType, reason string) (*models.User, error) {
	const op = "service.users.setUserStatus"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.storage.UpdateUser(ctx, id, storage.UserUpdate{Status: &status})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := &models.Operation{
		ID:        uuid.New(),
		UserID:    id,
		Type:      opType,
		Details:   reason,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.SaveOperation(ctx, record); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_status_changed",
		slog.String("op", op),
		slog.String("user_id", id.String()),
		slog.String("status", string(status)),
	)

	return user, nil
}

// DeleteUser удаляет пользователя.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "service.users.DeleteUser"

	if id == uuid.Nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// OperationsByUser возвращает записи аудита пользователя (новые первыми).
func (s *Service) OperationsByUser(ctx context.Context, id uuid.UUID) ([]models.Operation, error) {
	const op = "service.users.OperationsByUser"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ops, err := s.storage.OperationsByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ops, nil
}

// RecoverPassword отправляет письмо со ссылкой восстановления пароля.
// Токен восстановления несёт отдельный purpose-клейм и не принимается
// как access-токен (см. token.go).
func (s *Service) RecoverPassword(ctx context.Context, email string) error {
	const op = "service.users.RecoverPassword"

	if s.mailer == nil {
		return fmt.Errorf("%s: %w", op, ErrMailUnavailable)
	}

	normEmail, err := validateEmail(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.generateRecoveryToken(ctx, user.ID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resetLink := s.resetURL + "/reset-password?token=" + token

	subject := "Password Recovery"
	text := "To reset your password, please follow the link: " + resetLink
	html := `<p>To reset your password, please follow the link: <a href="` + resetLink + `">` + resetLink + `</a></p>`

	if err := s.mailer.Send(ctx, user.Email, subject, text, html); err != nil {
		log.From(ctx).Error("recovery_mail_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, ErrMailUnavailable)
	}

	log.From(ctx).Info("recovery_mail_sent",
		slog.String("op", op),
		slog.String("email", redact.Email(user.Email)),
	)

	return nil
}

// ResetPassword заменяет пароль по токену восстановления.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "service.users.ResetPassword"

	userID, err := s.validateRecoveryToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateUserPassword(ctx, userID, hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("password_reset",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	return nil
}
