// hasher инкапсулирует алгоритм хэширования паролей.
// Доменный слой (service) зависит только от интерфейса PasswordHasher
// и не знает о конкретном алгоритме.
package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword — попытка захэшировать пустой пароль.
// Пустой пароль отсекается валидацией выше по стеку; контракт
// Hash тем не менее явный.
var ErrEmptyPassword = errors.New("password is empty")

// PasswordHasher задаёт контракт хэширования и проверки паролей.
type PasswordHasher interface {
	// Hash возвращает хэш пароля с уникальной солью на каждый вызов.
	Hash(password string) (string, error)
	// Verify сравнивает пароль с хэшем. На некорректный хэш не паникует
	// и не возвращает ошибку — просто false.
	Verify(password, hash string) bool
}

// Bcrypt — реализация PasswordHasher поверх golang.org/x/crypto/bcrypt.
// bcrypt сам генерирует соль и встраивает её вместе с параметрами в строку
// хэша; сравнение дайджеста внутри CompareHashAndPassword — константное
// по времени.
type Bcrypt struct {
	cost int
}

// NewBcrypt создаёт Bcrypt-хэшер с заданной стоимостью.
// Значение вне [bcrypt.MinCost, bcrypt.MaxCost] заменяется на
// bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Bcrypt{cost: cost}
}

// Hash хэширует пароль. Два вызова с одним паролем дают разные строки
// (случайная соль), обе проходят Verify.
func (b *Bcrypt) Hash(password string) (string, error) {
	const op = "hasher.Bcrypt.Hash"

	if password == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// Verify сравнивает пароль с хэшем.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Проверка на соответствие интерфейсу PasswordHasher.
var _ PasswordHasher = (*Bcrypt)(nil)
