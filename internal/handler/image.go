package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dailabs/dai/internal/service"
	"github.com/dailabs/dai/internal/ui"
)

type imageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *imageHandler {
	return &imageHandler{imageService: imageService}
}

func (h *imageHandler) PromptPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, "imagine.html", nil)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	ImageURL string `json:"image_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Generate proxies one prompt to the image API and returns a data URL.
func (h *imageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, generateResponse{Error: "Invalid JSON body"})
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		writeJSON(w, http.StatusBadRequest, generateResponse{Error: "Prompt required"})
		return
	}

	url, err := h.imageService.Generate(r.Context(), prompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotConfigured):
			writeJSON(w, http.StatusNotImplemented, generateResponse{Error: "Image generation disabled"})
		case errors.Is(err, service.ErrNoImage):
			writeJSON(w, http.StatusInternalServerError, generateResponse{Error: "No image generated"})
		default:
			slog.Error("image generation failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, generateResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{ImageURL: url})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
