package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "dai_session"

var ErrNoSession = errors.New("no valid session")

// State is the login state carried by the session cookie.
type State string

const (
	StateIdle          State = "idle"
	StateOTPPending    State = "otp_pending"
	StateAuthenticated State = "authenticated"
)

// Session is the full client-side session payload. It is signed, not
// encrypted; nothing secret is stored in it.
type Session struct {
	State  State
	UserID int64  // set when State == StateAuthenticated
	Phone  string // set when State == StateOTPPending
}

// PendingOTP returns the session for a user who requested a phone code.
func PendingOTP(phone string) Session {
	return Session{State: StateOTPPending, Phone: phone}
}

// Authenticated returns the session for a logged-in user.
func Authenticated(userID int64) Session {
	return Session{State: StateAuthenticated, UserID: userID}
}

// Manager signs sessions into a cookie and reads them back.
type Manager struct {
	secret []byte
	expiry time.Duration
	secure bool
}

func NewManager(secret string, expiry time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry, secure: secure}
}

// Write signs the session and sets the cookie, renewing its lifetime.
func (m *Manager) Write(w http.ResponseWriter, s Session) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"state": string(s.State),
		"exp":   now.Add(m.expiry).Unix(),
		"iat":   now.Unix(),
	}
	switch s.State {
	case StateAuthenticated:
		claims["user_id"] = s.UserID
	case StateOTPPending:
		claims["phone"] = s.Phone
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Expires:  now.Add(m.expiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read parses the session cookie. A missing, expired or tampered cookie
// yields ErrNoSession; callers treat that as StateIdle.
func (m *Manager) Read(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Session{State: StateIdle}, ErrNoSession
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{State: StateIdle}, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{State: StateIdle}, ErrNoSession
	}

	s := Session{State: StateIdle}
	state, _ := claims["state"].(string)
	switch State(state) {
	case StateAuthenticated:
		id, ok := claims["user_id"].(float64)
		if !ok {
			return Session{State: StateIdle}, ErrNoSession
		}
		s.State = StateAuthenticated
		s.UserID = int64(id)
	case StateOTPPending:
		phone, ok := claims["phone"].(string)
		if !ok {
			return Session{State: StateIdle}, ErrNoSession
		}
		s.State = StateOTPPending
		s.Phone = phone
	default:
		return Session{State: StateIdle}, ErrNoSession
	}

	return s, nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
