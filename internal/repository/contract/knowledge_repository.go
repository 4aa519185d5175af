package contract

import (
	"context"

	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, record *entity.KnowledgeRecord) error
	Update(ctx context.Context, record *entity.KnowledgeRecord) error // leaves the audio columns untouched
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	SaveAudio(ctx context.Context, clip *entity.AudioClip) error
	DeleteAudio(ctx context.Context, id uuid.UUID) error
	FindAudio(ctx context.Context, id uuid.UUID) (*entity.AudioClip, error)
}
