package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dailabs/dai/internal/db/dbtest"
	"github.com/dailabs/dai/internal/model"
	"github.com/dailabs/dai/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository(dbtest.New(t))
	return NewAuthService(repo), repo
}

func TestAuthenticateCreatesUserOnFirstLogin(t *testing.T) {
	t.Parallel()

	svc, repo := newAuthService(t)

	user, err := svc.Authenticate("a@b.com", "secret1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "a@b.com", user.Email)
	require.True(t, user.HasPassword())

	// Stored hash is not the plaintext
	stored, err := repo.ByEmail("a@b.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", *stored.PasswordHash)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)

	first, err := svc.Authenticate("a@b.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Authenticate("a@b.com", "different1")
	require.ErrorIs(t, err, ErrInvalidPassword)

	again, err := svc.Authenticate("a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)

	first, err := svc.Authenticate("  A@B.Com ", "secret1")
	require.NoError(t, err)

	again, err := svc.Authenticate("a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)
}

func TestAuthenticateRejectsShortPassword(t *testing.T) {
	t.Parallel()

	svc, repo := newAuthService(t)

	_, err := svc.Authenticate("a@b.com", "short")
	require.ErrorIs(t, err, ErrWeakPassword)

	// No user was created for the rejected attempt
	_, err = repo.ByEmail("a@b.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAuthenticateRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)

	_, err := svc.Authenticate("", "secret1")
	require.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Authenticate("a@b.com", "")
	require.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestAuthenticateAttachesPasswordToPasswordlessAccount(t *testing.T) {
	t.Parallel()

	svc, repo := newAuthService(t)

	// Account created without a password (phone-first path)
	err := repo.Create(&model.User{Email: "p@b.com"})
	require.NoError(t, err)

	user, err := svc.Authenticate("p@b.com", "secret1")
	require.NoError(t, err)
	require.True(t, user.HasPassword())

	// The attached password is now required
	_, err = svc.Authenticate("p@b.com", "different1")
	require.ErrorIs(t, err, ErrInvalidPassword)

	again, err := svc.Authenticate("p@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
}
