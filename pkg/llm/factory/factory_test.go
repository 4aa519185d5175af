package factory

import (
	"testing"

	"tajwid-pintar-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionService(t *testing.T) {
	svc, err := NewCompletionService(t.Context(), Settings{Provider: "ollama", Model: "llava"})
	require.NoError(t, err)
	p, ok := svc.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", p.BaseURL)

	_, err = NewCompletionService(t.Context(), Settings{Provider: "gemini"})
	assert.Error(t, err, "gemini without a key must fail")

	_, err = NewCompletionService(t.Context(), Settings{Provider: "openai"})
	assert.ErrorContains(t, err, "unsupported")
}
