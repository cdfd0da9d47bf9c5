package hasher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Файл unit-тестов для internal/hasher.
//
// Покрытие:
//   - happy-path: Verify(pw, Hash(pw)) == true;
//   - чужой пароль не проходит проверку;
//   - случайная соль: два хэша одного пароля различаются, оба валидны;
//   - пустой пароль -> ErrEmptyPassword;
//   - некорректный/усечённый хэш -> false без паники;
//   - нормализация стоимости вне допустимого диапазона.

func TestHash_And_Verify_OK(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "Abcdef1!", hash)

	require.True(t, h.Verify("Abcdef1!", hash))
	require.False(t, h.Verify("Abcdef2!", hash))
}

func TestHash_SamePassword_DifferentSalt(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	second, err := h.Hash("Abcdef1!")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("Abcdef1!", first))
	require.True(t, h.Verify("Abcdef1!", second))
}

func TestHash_EmptyPassword(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash("")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)
}

// TestVerify_MalformedHash — некорректный хэш не приводит к ошибке/панике.
func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage", hash: "not-a-bcrypt-hash"},
		{name: "truncated", hash: "$2a$10$abc"},
		{name: "wrong_prefix", hash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.False(t, h.Verify("Abcdef1!", tt.hash))
		})
	}
}

func TestNewBcrypt_CostOutOfRange(t *testing.T) {
	t.Parallel()

	require.Equal(t, bcrypt.DefaultCost, NewBcrypt(-1).cost)
	require.Equal(t, bcrypt.DefaultCost, NewBcrypt(bcrypt.MaxCost+1).cost)
	require.Equal(t, bcrypt.MinCost, NewBcrypt(bcrypt.MinCost).cost)
}
