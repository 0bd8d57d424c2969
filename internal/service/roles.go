package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/storage"
)

// CreateRole создаёт новую роль.
func (s *Service) CreateRole(ctx context.Context, name string) (*models.Role, error) {
	const op = "service.roles.CreateRole"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	role := &models.Role{
		ID:   uuid.New(),
		Name: name,
	}

	if err := s.storage.SaveRole(ctx, role); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrRoleTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return role, nil
}

// Roles возвращает все роли, упорядоченные по имени.
func (s *Service) Roles(ctx context.Context) ([]models.Role, error) {
	const op = "service.roles.Roles"

	roles, err := s.storage.Roles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return roles, nil
}

// UpdateRole переименовывает роль.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, name string) (*models.Role, error) {
	const op = "service.roles.UpdateRole"

	name = strings.TrimSpace(name)
	if id == uuid.Nil || name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	role := &models.Role{ID: id, Name: name}

	if err := s.storage.UpdateRole(ctx, role); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, fmt.Errorf("%s: %w", op, ErrRoleTaken)
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return role, nil
}

// DeleteRole удаляет роль; назначения пользователям снимаются каскадом.
func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	const op = "service.roles.DeleteRole"

	if id == uuid.Nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AssignRole назначает роль перечисленным пользователям.
// Назначение идемпотентно: уже имеющаяся роль не дублируется.
// Уже выпущенные access-токены новых клеймов не получают — роли
// подтянутся при следующем refresh или входе.
func (s *Service) AssignRole(ctx context.Context, roleID uuid.UUID, userIDs []uuid.UUID) error {
	const op = "service.roles.AssignRole"

	if roleID == uuid.Nil || len(userIDs) == 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	for _, id := range userIDs {
		if id == uuid.Nil {
			return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}

	if err := s.storage.AssignRole(ctx, roleID, userIDs); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
