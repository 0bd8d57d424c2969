package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus — состояние учётной записи.
type UserStatus string

const (
	// StatusActive — обычная активная учётная запись.
	StatusActive UserStatus = "active"
	// StatusBlocked — учётная запись заблокирована (мягкая блокировка,
	// запись не удаляется; вход запрещён до разблокировки).
	StatusBlocked UserStatus = "blocked"
)

// User — модель пользователя в системе.
//
// Roles — срез ролей пользователя на момент чтения из хранилища;
// это снимок состояния, а не «живая» коллекция: клеймы access-токена
// формируются из него в момент выпуска и могут устаревать до следующего
// refresh/login.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Status       UserStatus
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames возвращает упорядоченный список имён ролей пользователя —
// ровно в том виде, в котором они попадают в клеймы access-токена.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}

	return names
}
