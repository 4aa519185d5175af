package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// DefaultMaxInlineBytes is the largest payload sent inline with a completion.
const DefaultMaxInlineBytes = 20 * 1024 * 1024

// Payload is raw captured media as received from the client.
type Payload struct {
	Bytes    []byte
	MimeType string
	Name     string
}

// Inline is media ready to be attached to a completion request.
type Inline struct {
	MimeType string
	Data     []byte
}

// Base64 returns the standard base64 form used by JSON transports.
func (i Inline) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

var ErrEmptyPayload = errors.New("empty media payload")

// EncodingError means captured media could not be turned into an inline part.
// The input is discarded by the caller and never retried.
type EncodingError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encode %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("encode %s: %s", e.Kind, e.Reason)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Containers that mimetype reports as video but browsers record audio into.
var audioContainers = map[string]string{
	"video/webm":      "audio/webm",
	"video/ogg":       "audio/ogg",
	"application/ogg": "audio/ogg",
	"video/mp4":       "audio/mp4",
}

// Encode validates p against kind and returns the inline part. The declared
// mime type wins when it belongs to the right family, otherwise the content is
// sniffed.
func Encode(kind Kind, p Payload, maxBytes int) (*Inline, error) {
	if len(p.Bytes) == 0 {
		return nil, &EncodingError{Kind: kind, Reason: "no data", Err: ErrEmptyPayload}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxInlineBytes
	}
	if len(p.Bytes) > maxBytes {
		return nil, &EncodingError{
			Kind:   kind,
			Reason: fmt.Sprintf("payload of %d bytes exceeds limit of %d", len(p.Bytes), maxBytes),
		}
	}

	mimeType, ok := resolve(kind, normalize(p.MimeType))
	if !ok {
		detected := normalize(mimetype.Detect(p.Bytes).String())
		mimeType, ok = resolve(kind, detected)
		if !ok {
			return nil, &EncodingError{
				Kind:   kind,
				Reason: fmt.Sprintf("unsupported media type %q", detected),
			}
		}
	}

	data := make([]byte, len(p.Bytes))
	copy(data, p.Bytes)
	return &Inline{MimeType: mimeType, Data: data}, nil
}

func resolve(kind Kind, mimeType string) (string, bool) {
	if mimeType == "" {
		return "", false
	}
	switch kind {
	case KindImage:
		return mimeType, strings.HasPrefix(mimeType, "image/")
	case KindAudio:
		if strings.HasPrefix(mimeType, "audio/") {
			return mimeType, true
		}
		if alias, ok := audioContainers[mimeType]; ok {
			return alias, true
		}
	}
	return "", false
}

func normalize(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}
