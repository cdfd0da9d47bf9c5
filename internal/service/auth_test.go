package service

import (
	"context"
	"errors"
	"testing"

	"auth-backend/internal/config"
	"auth-backend/internal/hasher"
	"auth-backend/internal/models"
	"auth-backend/internal/storage"
	"auth-backend/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		BcryptCost:     bcrypt.MinCost,
		MinPasswordLen: 8,
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, hasher.NewBcrypt(bcrypt.MinCost), testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hasher.NewBcrypt(bcrypt.MinCost).Hash(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "User@Example.com"
	norm := "user@example.com"
	pw := "Abcdef1!"

	var saved *models.User
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})

	user, err := svc.RegisterUser(ctx, email, pw)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, norm, user.Email)

	// Сохраняется хэш, а не исходный пароль; хэш проходит проверку.
	require.NotNil(t, saved)
	require.NotEmpty(t, saved.PasswordHash)
	require.NotEqual(t, pw, saved.PasswordHash)
	require.True(t, hasher.NewBcrypt(bcrypt.MinCost).Verify(pw, saved.PasswordHash))
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "not-an-email", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_WeakOrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Пустой пароль: валидация срабатывает до хэширования и до похода в БД.
	_, err := svc.RegisterUser(context.Background(), "u@e.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)

	_, err = svc.RegisterUser(context.Background(), "u@e.com", "short")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)

	// Длина достаточная, но нет обязательных классов символов.
	_, err = svc.RegisterUser(context.Background(), "u@e.com", "alllowercase")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterUser_SaveUserAlreadyExists_MapsToEmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), "user@example.com", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_SaveUserOtherError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))

	_, err := svc.RegisterUser(context.Background(), "user@example.com", "Abcdef1!")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{
			ID:           uid,
			Email:        "user@example.com",
			PasswordHash: mustHashPW(t, "Abcdef1!"),
		}, nil)

	user, err := svc.LoginUser(context.Background(), "User@Example.com", "Abcdef1!")
	require.NoError(t, err)
	require.Equal(t, uid, user.ID)
}

func TestLoginUser_InvalidEmail_OrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.LoginUser(context.Background(), "not-an-email", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginUser(context.Background(), "user@example.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestLoginUser_UserNotFound_OrWrongPassword — обе ветки дают одну
// и ту же ошибку ErrInvalidCredentials.
func TestLoginUser_UserNotFound_OrWrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, storage.ErrNotFound)

	_, errNotFound := svc.LoginUser(context.Background(), "ghost@example.com", "Abcdef1!")
	require.Error(t, errNotFound)
	require.ErrorIs(t, errNotFound, ErrInvalidCredentials)

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: mustHashPW(t, "Abcdef1!"),
		}, nil)

	_, errWrongPW := svc.LoginUser(context.Background(), "user@example.com", "WrongPW1!")
	require.Error(t, errWrongPW)
	require.ErrorIs(t, errWrongPW, ErrInvalidCredentials)
}

func TestLoginUser_StorageErrorOnLookup_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, errors.New("db down"))

	_, err := svc.LoginUser(context.Background(), "user@example.com", "Abcdef1!")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateEmail_NormalizesCase(t *testing.T) {
	t.Parallel()

	norm, err := validateEmail("  MixedCase@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "mixedcase@example.com", norm)
}
