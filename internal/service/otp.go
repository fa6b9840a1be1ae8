package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dailabs/dai/internal/model"
	"github.com/dailabs/dai/internal/repository"
)

// OTPService manages the one-time code lifecycle: issue (replacing any
// prior code for the phone), then a single verification attempt window.
// Only a salted hash of the code is ever stored.
type OTPService struct {
	otpRepository repository.OTPRepository
	secret        string
	ttl           time.Duration
}

func NewOTPService(otpRepository repository.OTPRepository, secret string, ttl time.Duration) *OTPService {
	return &OTPService{
		otpRepository: otpRepository,
		secret:        secret,
		ttl:           ttl,
	}
}

// Issue generates a random 4-digit code for the phone and stores its hash
// with expiry now+TTL. Any previously issued code for the phone is
// invalidated. The plaintext code is returned for SMS dispatch only.
func (s *OTPService) Issue(phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%04d", n.Int64())

	now := time.Now().Unix()
	otp := &model.PhoneOTP{
		Phone:     phone,
		CodeHash:  s.hash(code),
		ExpiresAt: now + int64(s.ttl.Seconds()),
		CreatedAt: now,
	}

	err = s.otpRepository.Replace(otp)
	if err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	return code, nil
}

// Verify checks the code for the phone. An expired row is deleted and can
// never match again, even with the correct code. A mismatched code leaves
// the row in place so the user may retry until expiry. A match consumes the
// row (single use).
func (s *OTPService) Verify(phone, code string) (bool, error) {
	otp, err := s.otpRepository.Latest(phone)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up code: %w", err)
	}

	if otp.Expired(time.Now().Unix()) {
		err = s.otpRepository.Delete(otp.ID)
		if err != nil {
			return false, fmt.Errorf("failed to delete expired code: %w", err)
		}
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(s.hash(code)), []byte(otp.CodeHash)) != 1 {
		return false, nil
	}

	err = s.otpRepository.Delete(otp.ID)
	if err != nil {
		return false, fmt.Errorf("failed to consume code: %w", err)
	}
	return true, nil
}

func (s *OTPService) hash(code string) string {
	sum := sha256.Sum256([]byte(code + ":" + s.secret))
	return hex.EncodeToString(sum[:])
}
