package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/mapper"
	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/internal/repository/implementation"
	"tajwid-pintar-be/internal/repository/specification"
	"tajwid-pintar-be/internal/repository/unitofwork"
	"tajwid-pintar-be/pkg/events"
	"tajwid-pintar-be/pkg/knowledge"
	"tajwid-pintar-be/pkg/llm"
	"tajwid-pintar-be/pkg/media"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrKnowledgeNotFound = errors.New("knowledge record not found")
	ErrAudioNotFound     = errors.New("audio clip not found")
	ErrUnknownCategory   = errors.New("unknown category")
)

const (
	snapshotCacheKey = "snapshot"
	defaultListLimit = 50
)

type IKnowledgeService interface {
	knowledge.Store

	List(ctx context.Context, req *dto.ListKnowledgeRequest) (*dto.ListKnowledgeResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeResponse, error)
	Create(ctx context.Context, req *dto.CreateKnowledgeRequest) (*dto.KnowledgeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateKnowledgeRequest) (*dto.KnowledgeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	PutAudio(ctx context.Context, id uuid.UUID, clip media.Payload) error
	DeleteAudio(ctx context.Context, id uuid.UUID) error
	GetAudio(ctx context.Context, id uuid.UUID) (*entity.AudioClip, error)

	Transcribe(ctx context.Context, image media.Payload) (*dto.TranscribeResponse, error)
	Categories() []string
	InvalidateSnapshot()
}

type KnowledgeServiceConfig struct {
	SnapshotTTL       time.Duration
	MaxAudioClipBytes int
	MaxImageBytes     int
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
	completion llm.CompletionService
	publisher  events.Publisher
	snapshots  *cache.Cache
	mapper     *mapper.KnowledgeMapper
	logger     logger.ILogger
	cfg        KnowledgeServiceConfig
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	completion llm.CompletionService,
	publisher events.Publisher,
	log logger.ILogger,
	cfg KnowledgeServiceConfig,
) IKnowledgeService {
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 5 * time.Minute
	}
	return &knowledgeService{
		uowFactory: uowFactory,
		completion: completion,
		publisher:  publisher,
		snapshots:  cache.New(cfg.SnapshotTTL, 2*cfg.SnapshotTTL),
		mapper:     mapper.NewKnowledgeMapper(),
		logger:     log,
		cfg:        cfg,
	}
}

// Snapshot returns the full record set in (created_at, id) order. The cached
// slice is shared, so callers get a copy.
func (s *knowledgeService) Snapshot(ctx context.Context) ([]knowledge.Record, error) {
	if x, found := s.snapshots.Get(snapshotCacheKey); found {
		return slices.Clone(x.([]knowledge.Record)), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.KnowledgeRepository().FindAll(ctx, specification.SnapshotOrder{})
	if err != nil {
		return nil, fmt.Errorf("load knowledge snapshot: %w", err)
	}

	records := s.mapper.ToRecords(rows)
	s.snapshots.Set(snapshotCacheKey, records, cache.DefaultExpiration)
	return slices.Clone(records), nil
}

func (s *knowledgeService) InvalidateSnapshot() {
	s.snapshots.Delete(snapshotCacheKey)
}

func (s *knowledgeService) List(ctx context.Context, req *dto.ListKnowledgeRequest) (*dto.ListKnowledgeResponse, error) {
	filters := []specification.Specification{}
	if req.Category != "" {
		filters = append(filters, specification.ByCategory{Category: req.Category})
	}
	if strings.TrimSpace(req.Query) != "" {
		filters = append(filters, specification.TitleOrContentContains{Query: req.Query})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeRepository()

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}
	page := append(slices.Clone(filters),
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)
	rows, err := repo.FindAll(ctx, page...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.KnowledgeResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toKnowledgeResponse(r))
	}
	return &dto.ListKnowledgeResponse{Items: items, Total: total}, nil
}

func (s *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrKnowledgeNotFound
	}
	return toKnowledgeResponse(rec), nil
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateKnowledgeRequest) (*dto.KnowledgeResponse, error) {
	if !isCategory(req.Category) {
		return nil, ErrUnknownCategory
	}

	rec := &entity.KnowledgeRecord{
		Id:       uuid.New(),
		Title:    strings.TrimSpace(req.Title),
		Category: req.Category,
		Content:  req.Content,
		Tags:     knowledge.NormalizeTags(req.Tags),
		Source:   strings.TrimSpace(req.Source),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeRepository().Create(ctx, rec); err != nil {
		return nil, err
	}

	s.changed(ctx, events.TypeKnowledgeCreated, rec.Id)
	return toKnowledgeResponse(rec), nil
}

func (s *knowledgeService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateKnowledgeRequest) (*dto.KnowledgeResponse, error) {
	if !isCategory(req.Category) {
		return nil, ErrUnknownCategory
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback() }() // fails harmlessly after commit

	repo := uow.KnowledgeRepository()
	rec, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrKnowledgeNotFound
	}

	rec.Title = strings.TrimSpace(req.Title)
	rec.Category = req.Category
	rec.Content = req.Content
	rec.Tags = knowledge.NormalizeTags(req.Tags)
	rec.Source = strings.TrimSpace(req.Source)

	if err := repo.Update(ctx, rec); err != nil {
		return nil, notFoundOr(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.changed(ctx, events.TypeKnowledgeUpdated, id)
	return toKnowledgeResponse(rec), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeRepository().Delete(ctx, id); err != nil {
		return notFoundOr(err)
	}
	s.changed(ctx, events.TypeKnowledgeDeleted, id)
	return nil
}

func (s *knowledgeService) PutAudio(ctx context.Context, id uuid.UUID, clip media.Payload) error {
	inline, err := media.Encode(media.KindAudio, clip, s.cfg.MaxAudioClipBytes)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = uow.KnowledgeRepository().SaveAudio(ctx, &entity.AudioClip{
		RecordId: id,
		MimeType: inline.MimeType,
		Data:     inline.Data,
	})
	if err != nil {
		return notFoundOr(err)
	}

	s.changed(ctx, events.TypeKnowledgeAudioChanged, id)
	return nil
}

func (s *knowledgeService) DeleteAudio(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeRepository().DeleteAudio(ctx, id); err != nil {
		return notFoundOr(err)
	}
	s.changed(ctx, events.TypeKnowledgeAudioChanged, id)
	return nil
}

func (s *knowledgeService) GetAudio(ctx context.Context, id uuid.UUID) (*entity.AudioClip, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	clip, err := uow.KnowledgeRepository().FindAudio(ctx, id)
	if err != nil {
		return nil, err
	}
	if clip == nil {
		return nil, ErrAudioNotFound
	}
	return clip, nil
}

// Transcribe reads the text of a photographed page so an admin can turn it
// into a record.
func (s *knowledgeService) Transcribe(ctx context.Context, image media.Payload) (*dto.TranscribeResponse, error) {
	inline, err := media.Encode(media.KindImage, image, s.cfg.MaxImageBytes)
	if err != nil {
		return nil, err
	}

	text, err := s.completion.Complete(ctx, &llm.Request{Parts: []llm.Part{
		{Text: constant.TranscribeImagePromptV1},
		{Media: inline},
	}}, llm.WithTemperature(0))
	if err != nil {
		s.logger.Error("KNOWLEDGE", "Transcription failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	return &dto.TranscribeResponse{Text: constant.TranscribedContentPrefix + text}, nil
}

func (s *knowledgeService) Categories() []string {
	return slices.Clone(constant.Categories)
}

// changed drops the local snapshot at once and tells every other listener.
func (s *knowledgeService) changed(ctx context.Context, eventType string, id uuid.UUID) {
	s.InvalidateSnapshot()

	if s.publisher == nil {
		return
	}
	event := events.New(eventType, map[string]interface{}{"record_id": id.String()})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("KNOWLEDGE", "Failed to publish change", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func isCategory(c string) bool {
	return slices.Contains(constant.Categories, c)
}

func notFoundOr(err error) error {
	if errors.Is(err, implementation.ErrRecordNotFound) {
		return ErrKnowledgeNotFound
	}
	return err
}

func toKnowledgeResponse(r *entity.KnowledgeRecord) *dto.KnowledgeResponse {
	res := &dto.KnowledgeResponse{
		Id:        r.Id,
		Title:     r.Title,
		Category:  r.Category,
		Content:   r.Content,
		Tags:      r.Tags,
		Source:    r.Source,
		HasAudio:  r.HasAudio(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	if r.HasAudio() {
		res.AudioUrl = mapper.AudioURL(r.Id.String())
	}
	return res
}
