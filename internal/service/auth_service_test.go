package service

import (
	"context"
	"testing"
	"time"
	"tourguide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_SignupLoginToken(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	auth := NewAuthService(users, NewTokenService(testSecret))

	err := auth.CreateUser(ctx, "anna@example.com", "secret123", "Anna")
	require.NoError(t, err)

	identity, err := auth.Authenticate(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", identity.Email)
	assert.Equal(t, "Anna", identity.Name)

	token, err := auth.GenerateToken(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	resolved, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, resolved.UserID)
}

func TestAuthService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Повторная регистрация с тем же email", func(t *testing.T) {
		users := newMemoryUserRepo()
		auth := NewAuthService(users, NewTokenService(testSecret))

		require.NoError(t, auth.CreateUser(ctx, "anna@example.com", "secret123", "Anna"))

		err := auth.CreateUser(ctx, "anna@example.com", "other-pass", "Anna 2")

		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
		assert.Equal(t, 1, users.count())
	})

	t.Run("Пароль хранится только в виде хеша", func(t *testing.T) {
		users := newMemoryUserRepo()
		auth := NewAuthService(users, NewTokenService(testSecret))

		require.NoError(t, auth.CreateUser(ctx, "bob@example.com", "secret123", "Bob"))

		user, err := users.GetUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.NotEmpty(t, user.UserID)
		assert.False(t, user.CreatedAt.IsZero())
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	auth := NewAuthService(users, NewTokenService(testSecret))
	require.NoError(t, auth.CreateUser(ctx, "anna@example.com", "secret123", "Anna"))

	t.Run("Неверный пароль", func(t *testing.T) {
		identity, err := auth.Authenticate(ctx, "anna@example.com", "wrong-pass")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Неизвестный email", func(t *testing.T) {
		identity, err := auth.Authenticate(ctx, "nobody@example.com", "secret123")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Пользователь токена удалён", func(t *testing.T) {
		tokens := NewTokenService(testSecret)
		auth := NewAuthService(newMemoryUserRepo(), tokens)

		token, err := tokens.Generate("deleted-user")
		require.NoError(t, err)

		identity, err := auth.ValidateToken(ctx, token)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, models.ErrUnknownSubject)
	})

	t.Run("Испорченный токен", func(t *testing.T) {
		auth := NewAuthService(newMemoryUserRepo(), NewTokenService(testSecret))

		identity, err := auth.ValidateToken(ctx, "not-a-token")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}

func TestTokenService(t *testing.T) {
	t.Run("Токен выпущен 2 дня назад", func(t *testing.T) {
		issuer := newTokenService(testSecret, func() time.Time { return time.Now().Add(-48 * time.Hour) })
		token, err := issuer.Generate("user-1")
		require.NoError(t, err)

		_, err = NewTokenService(testSecret).Parse(token)

		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("Токен выпущен секунду назад", func(t *testing.T) {
		issuer := newTokenService(testSecret, func() time.Time { return time.Now().Add(-time.Second) })
		token, err := issuer.Generate("user-1")
		require.NoError(t, err)

		subject, err := NewTokenService(testSecret).Parse(token)

		require.NoError(t, err)
		assert.Equal(t, "user-1", subject)
	})

	t.Run("Токен подписан другим ключом", func(t *testing.T) {
		token, err := NewTokenService("another-secret").Generate("user-1")
		require.NoError(t, err)

		_, err = NewTokenService(testSecret).Parse(token)

		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("Срок жизни ровно сутки", func(t *testing.T) {
		issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		issuer := newTokenService(testSecret, func() time.Time { return issued })
		token, err := issuer.Generate("user-1")
		require.NoError(t, err)

		before := newTokenService(testSecret, func() time.Time { return issued.Add(86399 * time.Second) })
		_, err = before.Parse(token)
		assert.NoError(t, err)

		after := newTokenService(testSecret, func() time.Time { return issued.Add(86401 * time.Second) })
		_, err = after.Parse(token)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}
