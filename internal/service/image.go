package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dailabs/dai/internal/config"
)

var (
	ErrImageNotConfigured = errors.New("image generation disabled")
	ErrNoImage            = errors.New("no image generated")
)

// ImageService proxies a text prompt to the upstream responses API with a
// single image-generation tool invocation and returns the result as a
// base64 data URL. No retries, no caching, no streaming.
type ImageService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewImageService(cfg *config.Config) *ImageService {
	return &ImageService{
		apiKey:  cfg.OpenAIAPIKey,
		model:   cfg.OpenAIModel,
		baseURL: cfg.OpenAIBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type responsesRequest struct {
	Model string          `json:"model"`
	Input string          `json:"input"`
	Tools []responsesTool `json:"tools"`
}

type responsesTool struct {
	Type string `json:"type"`
}

type responsesResponse struct {
	Output []responsesOutput `json:"output"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type responsesOutput struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

// Generate returns a data:image/png;base64 URL for the prompt, or an error.
// The caller is responsible for rejecting empty prompts before dispatch.
func (s *ImageService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", ErrImageNotConfigured
	}

	payload, err := json.Marshal(responsesRequest{
		Model: s.model,
		Input: prompt,
		Tools: []responsesTool{{Type: "image_generation"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image API request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image API response: %w", err)
	}

	var parsed responsesResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return "", fmt.Errorf("failed to decode image API response: %w", err)
	}

	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", fmt.Errorf("image API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	for _, out := range parsed.Output {
		if out.Type == "image_generation_call" && out.Result != "" {
			slog.Info("image generated", "prompt_len", len(prompt))
			return "data:image/png;base64," + out.Result, nil
		}
	}

	return "", ErrNoImage
}
