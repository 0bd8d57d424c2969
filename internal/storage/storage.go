// storage задаёт контракт «каталога пользователей» — хранилища
// учётных записей, ролей и записей аудита.
//
// Ошибки инфраструктуры (обрыв соединения, таймаут) возвращаются как есть
// и не смешиваются с ErrNotFound: аутентификационный слой обязан их различать.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/account-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/роль).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/имя роли).
	ErrAlreadyExists = errors.New("already exists")
)

// UserUpdate — частичное обновление пользователя.
// nil-поле означает «не трогать»; RoleIDs == nil оставляет роли как есть,
// пустой срез очищает их.
type UserUpdate struct {
	Name    *string
	Email   *string
	Status  *models.UserStatus
	RoleIDs []uuid.UUID
}

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email вместе с его ролями.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID вместе с его ролями.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateUser применяет частичное обновление и возвращает свежую запись.
	UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*models.User, error)
	// UpdateUserPassword заменяет хэш пароля.
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// DeleteUser удаляет пользователя.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// RoleStorage выполняет операции над ролями.
type RoleStorage interface {
	// SaveRole создаёт новую роль.
	SaveRole(ctx context.Context, role *models.Role) error
	// RoleByID находит роль по ID.
	RoleByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	// Roles возвращает все роли, упорядоченные по имени.
	Roles(ctx context.Context) ([]models.Role, error)
	// UpdateRole переименовывает роль.
	UpdateRole(ctx context.Context, role *models.Role) error
	// DeleteRole удаляет роль (связи с пользователями снимаются каскадом).
	DeleteRole(ctx context.Context, id uuid.UUID) error
	// AssignRole назначает роль перечисленным пользователям (идемпотентно).
	// Возвращает ErrNotFound, если роль или любой из пользователей не существует.
	AssignRole(ctx context.Context, roleID uuid.UUID, userIDs []uuid.UUID) error
}

// OperationStorage выполняет операции над записями аудита.
type OperationStorage interface {
	// SaveOperation добавляет запись аудита.
	SaveOperation(ctx context.Context, op *models.Operation) error
	// OperationsByUserID возвращает записи аудита пользователя (новые первыми).
	OperationsByUserID(ctx context.Context, userID uuid.UUID) ([]models.Operation, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	RoleStorage
	OperationStorage
	Close()
}
