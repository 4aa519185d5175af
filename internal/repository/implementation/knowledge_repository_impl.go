package implementation

import (
	"context"
	"errors"
	"time"

	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/mapper"
	"tajwid-pintar-be/internal/model"
	"tajwid-pintar-be/internal/repository/contract"
	"tajwid-pintar-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("knowledge record not found")

// Listing never loads clip bytes.
var metadataColumns = []string{"audio_data"}

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, record *entity.KnowledgeRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Omit(metadataColumns...).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) Update(ctx context.Context, record *entity.KnowledgeRecord) error {
	m := r.mapper.ToModel(record)
	m.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.KnowledgeRecord{Id: record.Id}).
		Select("title", "category", "content", "tags", "source", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.KnowledgeRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeRecord, error) {
	var m model.KnowledgeRecord
	query := r.applySpecifications(r.db.WithContext(ctx).Omit(metadataColumns...), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeRecord, error) {
	var models []*model.KnowledgeRecord
	query := r.applySpecifications(r.db.WithContext(ctx).Omit(metadataColumns...), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.KnowledgeRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *KnowledgeRepositoryImpl) SaveAudio(ctx context.Context, clip *entity.AudioClip) error {
	res := r.db.WithContext(ctx).
		Model(&model.KnowledgeRecord{Id: clip.RecordId}).
		Updates(map[string]interface{}{
			"audio_data":      clip.Data,
			"audio_mime_type": clip.MimeType,
			"audio_size":      len(clip.Data),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) DeleteAudio(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.KnowledgeRecord{Id: id}).
		Updates(map[string]interface{}{
			"audio_data":      nil,
			"audio_mime_type": "",
			"audio_size":      0,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) FindAudio(ctx context.Context, id uuid.UUID) (*entity.AudioClip, error) {
	var m model.KnowledgeRecord
	err := r.db.WithContext(ctx).
		Select("id", "audio_data", "audio_mime_type").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToAudioClip(&m), nil
}
