package factory

import (
	"context"
	"fmt"
	"time"

	"tajwid-pintar-be/pkg/llm"
	"tajwid-pintar-be/pkg/llm/gemini"
	"tajwid-pintar-be/pkg/llm/ollama"
)

type Settings struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	Timeout     time.Duration
}

func NewCompletionService(ctx context.Context, s Settings) (llm.CompletionService, error) {
	switch s.Provider {
	case "", "gemini":
		return gemini.NewGeminiProvider(ctx, gemini.Config{
			APIKey:      s.APIKey,
			Model:       s.Model,
			Temperature: s.Temperature,
			Timeout:     s.Timeout,
		})
	case "ollama":
		if s.BaseURL == "" {
			s.BaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(s.BaseURL, s.Model, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
