package storage

import (
	"context"
	"errors"

	"auth-backend/internal/models"
)

var (
	// ErrNotFound — пользователь не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности email.
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
//
// Уникальность email обеспечивается самим хранилищем (уникальный индекс):
// проверка и вставка атомарны, гонка двух конкурентных регистраций
// с одним email разрешается на стороне БД, без блокировок в приложении.
type UserStorage interface {
	// SaveUser создаёт нового пользователя. При занятом email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (регистронезависимо).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	Close()
}
