package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/storage"
)

// SaveOperation добавляет запись аудита.
func (s *Storage) SaveOperation(ctx context.Context, op *models.Operation) error {
	const fn = "storage.postgres.SaveOperation"

	_, err := s.db.Exec(ctx,
		`INSERT INTO operations(id, user_id, type, details, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		op.ID, op.UserID, op.Type, op.Details, op.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", fn, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", fn, err)
	}

	return nil
}

// OperationsByUserID возвращает записи аудита пользователя (новые первыми).
func (s *Storage) OperationsByUserID(ctx context.Context, userID uuid.UUID) ([]models.Operation, error) {
	const fn = "storage.postgres.OperationsByUserID"

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, type, details, created_at
		 FROM operations
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	defer rows.Close()

	var ops []models.Operation
	for rows.Next() {
		var op models.Operation
		if err := rows.Scan(&op.ID, &op.UserID, &op.Type, &op.Details, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	return ops, nil
}
