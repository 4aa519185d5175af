package llm

import (
	"context"
	"fmt"
	"strings"

	"tajwid-pintar-be/pkg/media"
)

// Part is one ordered piece of a completion request: either text or a
// single inline media blob.
type Part struct {
	Text  string
	Media *media.Inline
}

// Request is a single stateless completion call.
type Request struct {
	SystemInstruction string
	Parts             []Part
}

// Text concatenates the text parts, in order.
func (r *Request) Text() string {
	var sb strings.Builder
	for _, p := range r.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Media returns the inline media part, if any.
func (r *Request) Media() *media.Inline {
	for _, p := range r.Parts {
		if p.Media != nil {
			return p.Media
		}
	}
	return nil
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// ApplyOptions resolves opts over the given defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// CompletionService is the generative backend: one request, one text answer.
// No streaming.
type CompletionService interface {
	Complete(ctx context.Context, req *Request, opts ...Option) (string, error)
}

// CompletionServiceError is a network failure or non-success response from
// the backend. Code is the backend status code, 0 when the call never got one.
type CompletionServiceError struct {
	Provider string
	Code     int
	Message  string
	Err      error
}

func (e *CompletionServiceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s completion failed (%d): %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s completion failed: %s", e.Provider, e.Message)
}

func (e *CompletionServiceError) Unwrap() error {
	return e.Err
}
