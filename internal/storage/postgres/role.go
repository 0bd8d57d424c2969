package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/storage"
)

// SaveRole создаёт новую роль.
func (s *Storage) SaveRole(ctx context.Context, role *models.Role) error {
	const op = "storage.postgres.SaveRole"

	_, err := s.db.Exec(ctx,
		`INSERT INTO roles(id, name) VALUES ($1, $2)`,
		role.ID, role.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RoleByID находит роль по ID.
func (s *Storage) RoleByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	const op = "storage.postgres.RoleByID"

	var role models.Role
	err := s.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &role, nil
}

// Roles возвращает все роли, упорядоченные по имени.
func (s *Storage) Roles(ctx context.Context) ([]models.Role, error) {
	const op = "storage.postgres.Roles"

	rows, err := s.db.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		roles = append(roles, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return roles, nil
}

// UpdateRole переименовывает роль.
func (s *Storage) UpdateRole(ctx context.Context, role *models.Role) error {
	const op = "storage.postgres.UpdateRole"

	tag, err := s.db.Exec(ctx,
		`UPDATE roles SET name = $2 WHERE id = $1`,
		role.ID, role.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteRole удаляет роль; связи с пользователями снимаются каскадом.
func (s *Storage) DeleteRole(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteRole"

	tag, err := s.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// AssignRole назначает роль перечисленным пользователям (идемпотентно).
// Перед вставкой проверяет существование роли и всех пользователей,
// чтобы частичное назначение не проходило молча.
func (s *Storage) AssignRole(ctx context.Context, roleID uuid.UUID, userIDs []uuid.UUID) error {
	const op = "storage.postgres.AssignRole"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, roleID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var found int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE id = ANY($1)`, userIDs,
	).Scan(&found); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found != len(userIDs) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	for _, userID := range userIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles(user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, roleID,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
