package main

import (
	"log/slog"
	"net/http"

	"github.com/dailabs/dai/internal/config"
	"github.com/dailabs/dai/internal/logger"
	"github.com/dailabs/dai/internal/routes"
	"github.com/dailabs/dai/internal/service"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, image generation is disabled")
	}

	handler := routes.SetupImagineRoutes(service.NewImageService(cfg))
	slog.Info("imagine starting", "port", cfg.ImaginePort, "env", cfg.AppEnv)

	err := http.ListenAndServe(":"+cfg.ImaginePort, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
