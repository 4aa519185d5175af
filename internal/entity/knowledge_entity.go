package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeRecord struct {
	Id            uuid.UUID
	Title         string
	Category      string
	Content       string
	Tags          []string
	Source        string
	AudioMimeType string
	AudioSize     int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

func (r *KnowledgeRecord) HasAudio() bool {
	return r.AudioSize > 0
}

// AudioClip is the admin-recorded example attached to a record.
type AudioClip struct {
	RecordId uuid.UUID
	MimeType string
	Data     []byte
}
