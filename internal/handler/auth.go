package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dailabs/dai/internal/config"
	"github.com/dailabs/dai/internal/service"
	"github.com/dailabs/dai/internal/session"
	"github.com/dailabs/dai/internal/ui"
	"github.com/dailabs/dai/internal/validation"
)

type authHandler struct {
	authService *service.AuthService
	otpService  *service.OTPService
	smsService  *service.SMSService
	sessions    *session.Manager
	cfg         *config.Config
}

func NewAuthHandler(
	authService *service.AuthService,
	otpService *service.OTPService,
	smsService *service.SMSService,
	sessions *session.Manager,
	cfg *config.Config,
) *authHandler {
	return &authHandler{
		authService: authService,
		otpService:  otpService,
		smsService:  smsService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

type loginPageData struct {
	Flashes []string
}

func (h *authHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, "login.html", loginPageData{
		Flashes: session.PopFlashes(w, r),
	})
}

// EmailAuth handles the email+password flow: find-or-create, then redirect
// to the downstream app with an authenticated session.
func (h *authHandler) EmailAuth(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := strings.TrimSpace(r.FormValue("password"))

	user, err := h.authService.Authenticate(email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			h.redirectWithFlash(w, r, "Email and password are required.")
		case errors.Is(err, service.ErrWeakPassword):
			h.redirectWithFlash(w, r, "Password must be at least 6 characters.")
		case errors.Is(err, service.ErrInvalidPassword):
			h.redirectWithFlash(w, r, "Incorrect password.")
		default:
			slog.Error("email login failed", "error", err)
			h.redirectWithFlash(w, r, "Something went wrong. Please try again.")
		}
		return
	}

	err = h.sessions.Write(w, session.Authenticated(user.ID))
	if err != nil {
		slog.Error("failed to write session", "error", err, "user_id", user.ID)
		h.redirectWithFlash(w, r, "Something went wrong. Please try again.")
		return
	}

	slog.Info("user logged in via email", "user_id", user.ID)
	http.Redirect(w, r, h.cfg.ImagineURL, http.StatusFound)
}

// PhoneRequest issues an OTP for the submitted phone number and dispatches
// it over SMS. On dispatch failure in development mode the code itself is
// flashed so the flow stays testable without gateway credentials.
func (h *authHandler) PhoneRequest(w http.ResponseWriter, r *http.Request) {
	phone, err := validation.NormalizePhone(r.FormValue("phone"))
	if err != nil {
		h.redirectWithFlash(w, r, "Enter a valid +91 mobile number.")
		return
	}

	code, err := h.otpService.Issue(phone)
	if err != nil {
		slog.Error("failed to issue otp", "error", err, "phone", phone)
		h.redirectWithFlash(w, r, "Something went wrong. Please try again.")
		return
	}

	minutes := int(h.cfg.OTPTTL.Minutes())
	message := fmt.Sprintf("Your DAI login OTP is %s. It expires in %d minutes.", code, minutes)

	err = h.smsService.Send(r.Context(), phone, message)
	if err != nil {
		slog.Warn("otp dispatch failed", "error", err, "phone", phone)
		flashes := []string{err.Error()}
		if h.cfg.IsDevelopment() {
			flashes = append(flashes, "Demo OTP (configure SMSLocal to send real SMS): "+code)
		}
		h.redirectWithFlash(w, r, flashes...)
		return
	}

	err = h.sessions.Write(w, session.PendingOTP(phone))
	if err != nil {
		slog.Error("failed to write session", "error", err)
	}
	h.redirectWithFlash(w, r, "OTP sent to your phone.")
}

// PhoneVerify checks the submitted OTP. The phone may come from the form
// or fall back to the session's pending phone.
func (h *authHandler) PhoneVerify(w http.ResponseWriter, r *http.Request) {
	phone, err := validation.NormalizePhone(r.FormValue("phone"))
	if err != nil {
		s, _ := h.sessions.Read(r)
		if s.State == session.StateOTPPending {
			phone = s.Phone
		}
	}
	code := strings.TrimSpace(r.FormValue("otp"))

	if phone == "" || code == "" {
		h.redirectWithFlash(w, r, "Phone and OTP are required.")
		return
	}

	ok, err := h.otpService.Verify(phone, code)
	if err != nil {
		slog.Error("otp verification failed", "error", err, "phone", phone)
		h.redirectWithFlash(w, r, "Something went wrong. Please try again.")
		return
	}
	if !ok {
		h.redirectWithFlash(w, r, "Invalid or expired OTP.")
		return
	}

	// Phone logins are a separate identity namespace from email accounts;
	// they authenticate with user id 0 and no user row.
	err = h.sessions.Write(w, session.Authenticated(0))
	if err != nil {
		slog.Error("failed to write session", "error", err)
		h.redirectWithFlash(w, r, "Something went wrong. Please try again.")
		return
	}

	slog.Info("user logged in via phone", "phone", phone)
	http.Redirect(w, r, h.cfg.ImagineURL, http.StatusFound)
}

// GoogleAuth is a placeholder until Google OAuth is wired up.
func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	h.redirectWithFlash(w, r, "Google OAuth not configured. Set GOOGLE_CLIENT_ID/SECRET to enable.")
}

// AppleAuth is a placeholder until Apple Sign-In is wired up.
func (h *authHandler) AppleAuth(w http.ResponseWriter, r *http.Request) {
	h.redirectWithFlash(w, r, "Apple Sign-In not configured. Set APPLE_CLIENT_ID/SECRET to enable.")
}

func (h *authHandler) redirectWithFlash(w http.ResponseWriter, r *http.Request, messages ...string) {
	session.AddFlash(w, r, messages...)
	http.Redirect(w, r, "/login", http.StatusFound)
}
