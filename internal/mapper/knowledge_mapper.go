package mapper

import (
	"fmt"
	"time"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/model"
	"tajwid-pintar-be/pkg/knowledge"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(r *model.KnowledgeRecord) *entity.KnowledgeRecord {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)

	return &entity.KnowledgeRecord{
		Id:            r.Id,
		Title:         r.Title,
		Category:      r.Category,
		Content:       r.Content,
		Tags:          tags,
		Source:        r.Source,
		AudioMimeType: r.AudioMimeType,
		AudioSize:     r.AudioSize,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     r.DeletedAt.Valid,
	}
}

// ToModel never carries audio bytes; those are written through SaveAudio.
func (m *KnowledgeMapper) ToModel(r *entity.KnowledgeRecord) *model.KnowledgeRecord {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.KnowledgeRecord{
		Id:            r.Id,
		Title:         r.Title,
		Category:      r.Category,
		Content:       r.Content,
		Tags:          datatypes.JSONSlice[string](append([]string{}, r.Tags...)),
		Source:        r.Source,
		AudioMimeType: r.AudioMimeType,
		AudioSize:     r.AudioSize,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(records []*model.KnowledgeRecord) []*entity.KnowledgeRecord {
	entities := make([]*entity.KnowledgeRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *KnowledgeMapper) ToAudioClip(r *model.KnowledgeRecord) *entity.AudioClip {
	if r == nil || len(r.AudioData) == 0 {
		return nil
	}
	return &entity.AudioClip{RecordId: r.Id, MimeType: r.AudioMimeType, Data: r.AudioData}
}

// AudioURL is the path the clip of record id is served from.
func AudioURL(id string) string {
	return fmt.Sprintf(constant.KnowledgeAudioPathFormat, id)
}

// ToRecord projects a stored record to the dialogue engine's view.
func (m *KnowledgeMapper) ToRecord(r *entity.KnowledgeRecord) knowledge.Record {
	rec := knowledge.Record{
		ID:        r.Id.String(),
		Title:     r.Title,
		Category:  r.Category,
		Content:   r.Content,
		Tags:      knowledge.NormalizeTags(r.Tags),
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
	}
	if r.HasAudio() {
		rec.AudioClipRef = AudioURL(rec.ID)
	}
	return rec
}

func (m *KnowledgeMapper) ToRecords(records []*entity.KnowledgeRecord) []knowledge.Record {
	out := make([]knowledge.Record, 0, len(records))
	for _, r := range records {
		out = append(out, m.ToRecord(r))
	}
	return out
}
