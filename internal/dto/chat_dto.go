package dto

import (
	"time"

	"tajwid-pintar-be/pkg/directive"
	"tajwid-pintar-be/pkg/media"
)

type TurnResponse struct {
	Role            string          `json:"role"`
	Text            string          `json:"text"`
	ImagePreviewRef string          `json:"image_preview_ref,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	Plan            *directive.Plan `json:"plan,omitempty"`
}

type CreateSessionResponse struct {
	SessionId string         `json:"session_id"`
	Turns     []TurnResponse `json:"turns"`
}

type ChatHistoryResponse struct {
	SessionId string         `json:"session_id"`
	Turns     []TurnResponse `json:"turns"`
}

// SendTurnRequest is assembled by the controller from a multipart form.
type SendTurnRequest struct {
	Text  string
	Image *media.Payload
	Audio *media.Payload
}

type SendTurnResponse struct {
	SessionId string         `json:"session_id"`
	Failed    bool           `json:"failed"`
	Reply     string         `json:"reply"`
	Plan      directive.Plan `json:"plan"`
	Turns     []TurnResponse `json:"turns,omitempty"`
}
