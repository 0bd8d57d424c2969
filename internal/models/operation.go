package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы операций аудита.
const (
	OperationBlock   = "block"
	OperationUnblock = "unblock"
)

// Operation — запись аудита административного действия над учётной записью
// (блокировка/разблокировка). Записи только добавляются, никогда не меняются.
type Operation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Details   string
	CreatedAt time.Time
}
