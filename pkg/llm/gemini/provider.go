package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tajwid-pintar-be/pkg/llm"

	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	providerName   = "gemini"
	defaultTimeout = 120 * time.Second
)

// GeminiProvider implements llm.CompletionService on top of the GenAI SDK.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float64
}

var _ llm.CompletionService = &GeminiProvider{}

type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewGeminiProvider creates the GenAI client. The API key comes from
// configuration only.
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (g *GeminiProvider) Complete(ctx context.Context, req *llm.Request, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Temperature: g.temperature, Model: g.model}, opts...)

	resp, err := g.client.Models.GenerateContent(ctx, options.Model, toContents(req), toConfig(req, options))
	if err != nil {
		return "", toCompletionError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &llm.CompletionServiceError{Provider: providerName, Message: "empty completion"}
	}
	return text, nil
}

func toContents(req *llm.Request) []*genai.Content {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Media != nil {
			parts = append(parts, genai.NewPartFromBytes(p.Media.Data, p.Media.MimeType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func toConfig(req *llm.Request, options llm.Options) *genai.GenerateContentConfig {
	temperature := float32(options.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if options.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(options.MaxTokens)
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return cfg
}

func toCompletionError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.CompletionServiceError{Provider: providerName, Code: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &llm.CompletionServiceError{Provider: providerName, Code: apiErrPtr.Code, Message: apiErrPtr.Message, Err: err}
	}
	return &llm.CompletionServiceError{Provider: providerName, Message: err.Error(), Err: err}
}
