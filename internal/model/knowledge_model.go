package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeRecord struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string                      `gorm:"type:varchar(255);not null"`
	Category      string                      `gorm:"type:varchar(100);not null;index"`
	Content       string                      `gorm:"type:text;not null"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Source        string                      `gorm:"type:varchar(255)"`
	AudioData     []byte                      `gorm:"type:bytea"`
	AudioMimeType string                      `gorm:"type:varchar(100)"`
	AudioSize     int                         `gorm:"not null;default:0"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt              `gorm:"index"`
}

func (KnowledgeRecord) TableName() string {
	return "knowledge_records"
}
