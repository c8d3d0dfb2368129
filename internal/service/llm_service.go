package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/models"
	"gastonauta/pkg/config"

	"go.uber.org/zap"
)

// LLMService calls an OpenRouter-compatible chat-completion endpoint to
// categorize transactions the keyword matcher could not resolve.
type LLMService struct {
	cfg        *config.OpenRouterConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewLLMService(cfg *config.OpenRouterConfig, logger *zap.Logger) *LLMService {
	return &LLMService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Categorize asks the completion service for a category name and normalizes
// the free-text answer back onto the live category list. Any transport or
// status failure comes back wrapped in ErrAIUnavailable.
func (s *LLMService) Categorize(ctx context.Context, bodyPlain string, merchant *string, amount *float64, categories []models.Category) (*categorizer.Result, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENROUTER_API_KEY not configured", ErrAIUnavailable)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	reqBody := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: categorizer.BuildSystemPrompt(categories)},
			{Role: "user", Content: categorizer.BuildUserPrompt(bodyPlain, merchant, amount)},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrAIUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrAIUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "Gastonauta")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrAIUnavailable, resp.StatusCode, string(body))
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAIUnavailable, err)
	}

	raw := ""
	if len(data.Choices) > 0 {
		raw = strings.TrimSpace(data.Choices[0].Message.Content)
	}

	result := &categorizer.Result{
		Category:   normalizeCategory(raw, categories),
		Confidence: confidenceFromUsage(data.Usage.PromptTokens, data.Usage.CompletionTokens),
		Model:      s.cfg.Model,
	}
	if data.Model != "" {
		result.Model = data.Model
	}

	s.logger.Debug("AI categorization completed",
		zap.String("raw", raw),
		zap.String("category", result.Category),
		zap.Float64("confidence", result.Confidence),
	)

	return result, nil
}

// normalizeCategory maps the model's free-text answer onto a known category
// name, case-insensitively. Anything unrecognized lands in the catch-all.
func normalizeCategory(raw string, categories []models.Category) string {
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, raw) {
			return cat.Name
		}
	}
	return categorizer.DefaultCatchAll
}

// confidenceFromUsage derives a confidence score from the completion token
// count, capped at 1. Missing usage metadata falls back to a fixed
// mid-level value.
func confidenceFromUsage(promptTokens, completionTokens int) float64 {
	if promptTokens > 0 && completionTokens > 0 {
		c := float64(completionTokens) / 100
		if c > 1 {
			return 1
		}
		return c
	}
	return 0.8
}
