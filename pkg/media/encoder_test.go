package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	mp3Bytes = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...)
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		payload  Payload
		wantMime string
		wantErr  bool
	}{
		{name: "declared image", kind: KindImage, payload: Payload{Bytes: pngBytes, MimeType: "image/png"}, wantMime: "image/png"},
		{name: "sniffed image", kind: KindImage, payload: Payload{Bytes: pngBytes}, wantMime: "image/png"},
		{name: "declared with params", kind: KindAudio, payload: Payload{Bytes: mp3Bytes, MimeType: "Audio/WebM; codecs=opus"}, wantMime: "audio/webm"},
		{name: "webm container is audio", kind: KindAudio, payload: Payload{Bytes: mp3Bytes, MimeType: "video/webm"}, wantMime: "audio/webm"},
		{name: "sniffed mp3", kind: KindAudio, payload: Payload{Bytes: mp3Bytes, MimeType: "application/octet-stream"}, wantMime: "audio/mpeg"},
		{name: "empty", kind: KindImage, payload: Payload{}, wantErr: true},
		{name: "text posing as image", kind: KindImage, payload: Payload{Bytes: []byte("hello world")}, wantErr: true},
		{name: "image sent as audio", kind: KindAudio, payload: Payload{Bytes: pngBytes, MimeType: "image/png"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.kind, tt.payload, 0)
			if tt.wantErr {
				var encErr *EncodingError
				require.ErrorAs(t, err, &encErr)
				assert.Equal(t, tt.kind, encErr.Kind)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, got.MimeType)
			assert.Equal(t, tt.payload.Bytes, got.Data)
		})
	}
}

func TestEncode_SizeLimit(t *testing.T) {
	_, err := Encode(KindImage, Payload{Bytes: pngBytes, MimeType: "image/png"}, 8)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Contains(t, encErr.Error(), "exceeds limit")
}

func TestEncode_EmptyUnwraps(t *testing.T) {
	_, err := Encode(KindAudio, Payload{MimeType: "audio/webm"}, 0)
	assert.True(t, errors.Is(err, ErrEmptyPayload))
}

func TestInline_Base64(t *testing.T) {
	in := Inline{MimeType: "audio/mpeg", Data: []byte("abc")}
	assert.Equal(t, "YWJj", in.Base64())
}
