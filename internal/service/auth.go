package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"auth-backend/internal/models"
	"auth-backend/internal/pkg/log"
	"auth-backend/internal/pkg/redact"
	"auth-backend/internal/storage"

	"github.com/google/uuid"
)

// dummyHash — валидный bcrypt-хэш для выравнивания времени ответа:
// при неизвестном email проверка пароля всё равно выполняется, чтобы
// ветка "нет пользователя" по времени не отличалась от ветки
// "неверный пароль" (защита от перебора email).
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// RegisterUser регистрирует нового пользователя.
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := s.validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	// Уникальность email решает вставка в БД, а не предварительный SELECT:
	// две конкурентные регистрации с одним email упираются в уникальный
	// индекс, выживает ровно одна.
	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.From(ctx).Warn("register_rejected",
				"reason", "email_taken",
				"email", redact.Email(normEmail),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		"user_id", user.ID.String(),
		"email", redact.Email(user.Email),
	)

	return user, nil
}

// LoginUser выполняет вход по email+пароль.
// Неверный формат email, неизвестный email и неверный пароль неразличимы
// снаружи: во всех случаях возвращается ErrInvalidCredentials.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	const op = "service.auth.LoginUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Холостая проверка против dummyHash — см. комментарий выше.
			s.hasher.Verify(password, dummyHash)

			log.From(ctx).Info("login_failed",
				"reason", "unknown_email",
				"email", redact.Email(normEmail),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		log.From(ctx).Info("login_failed",
			"reason", "wrong_password",
			"user_id", user.ID.String(),
			"email", redact.Email(user.Email),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	log.From(ctx).Info("login_succeeded",
		"user_id", user.ID.String(),
		"email", redact.Email(user.Email),
	)

	return user, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
// Возвращает адрес в нижнем регистре: сравнение email в системе
// регистронезависимое (это же закреплено CITEXT-колонкой в БД).
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика: длина >= cfg.MinPasswordLen (по умолчанию 8), хотя бы одна
// строчная, заглавная, цифра и спецсимвол.
func (s *Service) validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	minLen := s.cfg.MinPasswordLen
	if minLen <= 0 {
		minLen = 8
	}

	if len([]rune(pw)) < minLen {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
