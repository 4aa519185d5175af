package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateKnowledgeRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Category string   `json:"category" validate:"required,max=100"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"max=50"`
	Source   string   `json:"source" validate:"max=255"`
}

type UpdateKnowledgeRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Category string   `json:"category" validate:"required,max=100"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"max=50"`
	Source   string   `json:"source" validate:"max=255"`
}

type ListKnowledgeRequest struct {
	Query    string `query:"q"`
	Category string `query:"category"`
	Limit    int    `query:"limit" validate:"gte=0,lte=200"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

type KnowledgeResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	Source    string     `json:"source,omitempty"`
	HasAudio  bool       `json:"has_audio"`
	AudioUrl  string     `json:"audio_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ListKnowledgeResponse struct {
	Items []*KnowledgeResponse `json:"items"`
	Total int64                `json:"total"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}
