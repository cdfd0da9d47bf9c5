package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
// Инвариант: у сохранённого пользователя PasswordHash всегда непустой;
// сам хэш никогда не отдаётся клиенту (см. transport).
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
