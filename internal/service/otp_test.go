package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dailabs/dai/internal/db/dbtest"
	"github.com/dailabs/dai/internal/repository"
)

const testPhone = "+919876543210"

func newOTPService(t *testing.T, ttl time.Duration) (*OTPService, repository.OTPRepository) {
	t.Helper()
	repo := repository.NewOTPRepository(dbtest.New(t))
	return NewOTPService(repo, "test-secret", ttl), repo
}

func TestOTPIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, _ := newOTPService(t, 5*time.Minute)

	code, err := svc.Issue(testPhone)
	require.NoError(t, err)
	require.Len(t, code, 4)

	ok, err := svc.Verify(testPhone, code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOTPSingleUse(t *testing.T) {
	t.Parallel()

	svc, repo := newOTPService(t, 5*time.Minute)

	code, err := svc.Issue(testPhone)
	require.NoError(t, err)

	ok, err := svc.Verify(testPhone, code)
	require.NoError(t, err)
	require.True(t, ok)

	// The consumed row is gone; the same code can never match again.
	_, err = repo.Latest(testPhone)
	require.ErrorIs(t, err, repository.ErrOTPNotFound)

	ok, err = svc.Verify(testPhone, code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPReissueInvalidatesPrior(t *testing.T) {
	t.Parallel()

	svc, repo := newOTPService(t, 5*time.Minute)

	first, err := svc.Issue(testPhone)
	require.NoError(t, err)

	second, err := svc.Issue(testPhone)
	require.NoError(t, err)

	// Only one active row exists per phone.
	otp, err := repo.Latest(testPhone)
	require.NoError(t, err)
	require.Equal(t, testPhone, otp.Phone)

	if first != second {
		ok, err := svc.Verify(testPhone, first)
		require.NoError(t, err)
		require.False(t, ok)
	}

	ok, err := svc.Verify(testPhone, second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOTPExpiredIsDeleted(t *testing.T) {
	t.Parallel()

	svc, repo := newOTPService(t, -time.Second)

	code, err := svc.Issue(testPhone)
	require.NoError(t, err)

	ok, err := svc.Verify(testPhone, code)
	require.NoError(t, err)
	require.False(t, ok)

	// Expired row was removed; the correct code still fails afterwards.
	_, err = repo.Latest(testPhone)
	require.ErrorIs(t, err, repository.ErrOTPNotFound)

	ok, err = svc.Verify(testPhone, code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPMismatchKeepsRowForRetry(t *testing.T) {
	t.Parallel()

	svc, repo := newOTPService(t, 5*time.Minute)

	code, err := svc.Issue(testPhone)
	require.NoError(t, err)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}

	ok, err := svc.Verify(testPhone, wrong)
	require.NoError(t, err)
	require.False(t, ok)

	// Row survives a mismatch so the user can retry within the TTL.
	_, err = repo.Latest(testPhone)
	require.NoError(t, err)

	ok, err = svc.Verify(testPhone, code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOTPUnknownPhone(t *testing.T) {
	t.Parallel()

	svc, _ := newOTPService(t, 5*time.Minute)

	ok, err := svc.Verify("+919999999999", "1234")
	require.NoError(t, err)
	require.False(t, ok)
}
