package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tajwid-pintar-be/pkg/llm"
)

const providerName = "ollama"

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements CompletionService
var _ llm.CompletionService = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

func (o *OllamaProvider) Complete(ctx context.Context, req *llm.Request, opts ...llm.Option) (string, error) {
	// 1. Process Options
	options := llm.ApplyOptions(llm.Options{Temperature: 0.7, Model: o.ModelName}, opts...)

	// 2. Map the request to chat messages. Ollama only takes images inline.
	messages := make([]ollamaMessage, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: req.SystemInstruction})
	}
	user := ollamaMessage{Role: "user", Content: req.Text()}
	if m := req.Media(); m != nil {
		if !strings.HasPrefix(m.MimeType, "image/") {
			return "", &llm.CompletionServiceError{
				Provider: providerName,
				Code:     http.StatusUnprocessableEntity,
				Message:  fmt.Sprintf("media type %s is not supported", m.MimeType),
			}
		}
		user.Images = []string{m.Base64()}
	}
	messages = append(messages, user)

	// 3. Prepare Payload
	reqPayload := ollamaChatRequest{
		Model:    options.Model,
		Messages: messages,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		reqPayload.Options.NumPredict = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	// 4. Send Request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/api/chat", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(httpReq)
	if err != nil {
		return "", &llm.CompletionServiceError{Provider: providerName, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.CompletionServiceError{Provider: providerName, Code: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.CompletionServiceError{Provider: providerName, Code: resp.StatusCode, Message: string(bodyBytes)}
	}

	// 5. Parse Response
	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return "", &llm.CompletionServiceError{Provider: providerName, Code: resp.StatusCode, Message: "unmarshal response", Err: err}
	}
	if ollamaResp.Error != "" {
		return "", &llm.CompletionServiceError{Provider: providerName, Code: resp.StatusCode, Message: ollamaResp.Error}
	}

	text := strings.TrimSpace(ollamaResp.Message.Content)
	if text == "" {
		return "", &llm.CompletionServiceError{Provider: providerName, Code: resp.StatusCode, Message: "empty completion"}
	}
	return text, nil
}
