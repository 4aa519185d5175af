package service

import (
	"context"
	"sync"
	"time"

	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/repository/contract"
	"tajwid-pintar-be/internal/repository/implementation"
	"tajwid-pintar-be/internal/repository/specification"
	"tajwid-pintar-be/internal/repository/unitofwork"
	"tajwid-pintar-be/pkg/events"
	"tajwid-pintar-be/pkg/knowledge"
	"tajwid-pintar-be/pkg/llm"

	"github.com/google/uuid"
)

type fakeStore struct {
	records []knowledge.Record
	err     error
}

func (f *fakeStore) Snapshot(context.Context) ([]knowledge.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]knowledge.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

type fakeCompletion struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []*llm.Request
	options  []llm.Options
	block    chan struct{}
	started  chan struct{}
}

func (f *fakeCompletion) Complete(ctx context.Context, req *llm.Request, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.options = append(f.options, llm.ApplyOptions(llm.Options{}, opts...))
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeCompletion) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*entity.ChatSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*entity.ChatSession{}}
}

func (f *fakeSessions) Save(s *entity.ChatSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.Id] = s
}

func (f *fakeSessions) Get(id string) (*entity.ChatSession, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	return s, ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// fakeKnowledgeRepo keeps records in insertion order and only understands the
// ByID specification.
type fakeKnowledgeRepo struct {
	mu       sync.Mutex
	records  []*entity.KnowledgeRecord
	audio    map[uuid.UUID]*entity.AudioClip
	findAlls int
}

func newFakeKnowledgeRepo(records ...*entity.KnowledgeRecord) *fakeKnowledgeRepo {
	return &fakeKnowledgeRepo{records: records, audio: map[uuid.UUID]*entity.AudioClip{}}
}

func (r *fakeKnowledgeRepo) index(id uuid.UUID) int {
	for i, rec := range r.records {
		if rec.Id == id {
			return i
		}
	}
	return -1
}

func byID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if b, ok := s.(specification.ByID); ok {
			return b.ID, true
		}
	}
	return uuid.Nil, false
}

func (r *fakeKnowledgeRepo) Create(_ context.Context, rec *entity.KnowledgeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.CreatedAt = time.Now()
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeKnowledgeRepo) Update(_ context.Context, rec *entity.KnowledgeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(rec.Id)
	if i < 0 {
		return implementation.ErrRecordNotFound
	}
	cp := *rec
	r.records[i] = &cp
	return nil
}

func (r *fakeKnowledgeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return implementation.ErrRecordNotFound
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return nil
}

func (r *fakeKnowledgeRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.KnowledgeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := byID(specs)
	if !ok {
		return nil, nil
	}
	if i := r.index(id); i >= 0 {
		cp := *r.records[i]
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeKnowledgeRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.KnowledgeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAlls++
	out := make([]*entity.KnowledgeRecord, 0, len(r.records))
	for _, rec := range r.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeKnowledgeRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

func (r *fakeKnowledgeRepo) SaveAudio(_ context.Context, clip *entity.AudioClip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(clip.RecordId)
	if i < 0 {
		return implementation.ErrRecordNotFound
	}
	r.audio[clip.RecordId] = clip
	r.records[i].AudioMimeType = clip.MimeType
	r.records[i].AudioSize = len(clip.Data)
	return nil
}

func (r *fakeKnowledgeRepo) DeleteAudio(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return implementation.ErrRecordNotFound
	}
	delete(r.audio, id)
	r.records[i].AudioMimeType = ""
	r.records[i].AudioSize = 0
	return nil
}

func (r *fakeKnowledgeRepo) FindAudio(_ context.Context, id uuid.UUID) (*entity.AudioClip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.audio[id], nil
}

func (r *fakeKnowledgeRepo) snapshotLoads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAlls
}

type fakeUnitOfWork struct {
	repo      *fakeKnowledgeRepo
	committed bool
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { u.committed = true; return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) KnowledgeRepository() contract.KnowledgeRepository {
	return u.repo
}

type fakeRepositoryFactory struct {
	repo *fakeKnowledgeRepo
}

func (f *fakeRepositoryFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}
