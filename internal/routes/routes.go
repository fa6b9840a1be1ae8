package routes

import (
	"net/http"

	"github.com/dailabs/dai/internal/app"
	"github.com/dailabs/dai/internal/handler"
	"github.com/dailabs/dai/internal/middleware"
	"github.com/dailabs/dai/internal/service"
)

// SetupAuthRoutes wires the login gateway.
func SetupAuthRoutes(app *app.App) http.Handler {
	auth := handler.NewAuthHandler(app.AuthService, app.OTPService, app.SMSService, app.Sessions, app.Cfg)

	mux := http.NewServeMux()

	// Login page
	mux.HandleFunc("GET /{$}", auth.LoginPage)
	mux.HandleFunc("GET /login", auth.LoginPage)

	// Email flow
	mux.HandleFunc("POST /auth/email", auth.EmailAuth)

	// Phone OTP flow
	mux.HandleFunc("POST /auth/phone/request", auth.PhoneRequest)
	mux.HandleFunc("POST /auth/phone/verify", auth.PhoneVerify)

	// OAuth placeholders
	mux.HandleFunc("GET /auth/google", auth.GoogleAuth)
	mux.HandleFunc("GET /auth/apple", auth.AppleAuth)

	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Recover,
	)
}

// SetupImagineRoutes wires the image-generation proxy.
func SetupImagineRoutes(imageService *service.ImageService) http.Handler {
	image := handler.NewImageHandler(imageService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", image.PromptPage)
	mux.HandleFunc("POST /api/generate", image.Generate)

	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Recover,
	)
}
