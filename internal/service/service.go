// service содержит бизнес-логику auth-бэкенда:
// регистрацию и аутентификацию пользователей поверх интерфейсов
// storage.Storage и hasher.PasswordHasher.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются наружу и далее маппятся транспортом
//     на HTTP-статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"auth-backend/internal/config"
	"auth-backend/internal/hasher"
	"auth-backend/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Один и тот же ответ для обоих случаев, чтобы не раскрывать, какие email
	// зарегистрированы. Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// Транспорт отвечает обобщённым "registration failed" (HTTP 400),
	// не подтверждая существование email.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidEmail — e-mail имеет некорректный формат. Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")
)

// Service описывает бизнес-логику auth-бэкенда.
type Service struct {
	storage storage.Storage
	hasher  hasher.PasswordHasher
	cfg     config.AuthConfig
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, hasher hasher.PasswordHasher, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		cfg:     cfg,
	}
}
