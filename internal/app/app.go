package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dailabs/dai/internal/config"
	"github.com/dailabs/dai/internal/db"
	"github.com/dailabs/dai/internal/repository"
	"github.com/dailabs/dai/internal/service"
	"github.com/dailabs/dai/internal/session"
)

// App holds the auth gateway's wired dependencies.
type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	AuthService *service.AuthService
	OTPService  *service.OTPService
	SMSService  *service.SMSService
	Sessions    *session.Manager
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	userRepository := repository.NewUserRepository(database)
	otpRepository := repository.NewOTPRepository(database)

	return &App{
		Cfg:         cfg,
		DB:          database,
		AuthService: service.NewAuthService(userRepository),
		OTPService:  service.NewOTPService(otpRepository, cfg.OTPSecret, cfg.OTPTTL),
		SMSService:  service.NewSMSService(cfg),
		Sessions:    session.NewManager(cfg.SessionSecret, cfg.SessionExpiry, cfg.IsProduction()),
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
