package models

import "github.com/google/uuid"

// Role — именованное право доступа; связь с пользователями many-to-many.
// Внутри токенов роль представляется только именем, никогда полным объектом.
type Role struct {
	ID   uuid.UUID
	Name string
}
