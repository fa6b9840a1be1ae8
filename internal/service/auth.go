package service

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dailabs/dai/internal/model"
	"github.com/dailabs/dai/internal/repository"
	"github.com/dailabs/dai/internal/validation"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrWeakPassword        = errors.New("password must be at least 6 characters")
	ErrInvalidPassword     = errors.New("incorrect password")
)

// AuthService implements the find-or-create email login flow: an unseen
// email becomes a new account, a known email is checked against its stored
// hash, and a passwordless account gets the supplied password attached.
type AuthService struct {
	userRepository repository.UserRepository
}

func NewAuthService(userRepository repository.UserRepository) *AuthService {
	return &AuthService{userRepository: userRepository}
}

// Authenticate performs at most one insert or one update per call and never
// deletes anything.
func (s *AuthService) Authenticate(email, password string) (*model.User, error) {
	email = validation.NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return s.createUser(email, password)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.HasPassword() {
		err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password))
		if err != nil {
			return nil, ErrInvalidPassword
		}
		return user, nil
	}

	// Account created without a password (phone-first); attach one now.
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	err = s.userRepository.SetPassword(user.ID, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}
	user.PasswordHash = &hash

	slog.Info("password attached to passwordless account", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) createUser(email, password string) (*model.User, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, PasswordHash: &hash}
	err = s.userRepository.Create(user)
	if err != nil {
		// Lost a race with a concurrent first login for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return s.Authenticate(email, password)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created on first login", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
