package service

import (
	"errors"
	"testing"
	"time"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/pkg/events"
	"tajwid-pintar-be/pkg/media"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKnowledgeFixture(completion *fakeCompletion, records ...*entity.KnowledgeRecord) (IKnowledgeService, *fakeKnowledgeRepo, *recordingPublisher) {
	repo := newFakeKnowledgeRepo(records...)
	pub := &recordingPublisher{}
	svc := NewKnowledgeService(
		&fakeRepositoryFactory{repo: repo},
		completion,
		pub,
		logger.NewNopLogger(),
		KnowledgeServiceConfig{SnapshotTTL: time.Minute, MaxAudioClipBytes: 64},
	)
	return svc, repo, pub
}

func sampleRecord(title string) *entity.KnowledgeRecord {
	return &entity.KnowledgeRecord{
		Id:        uuid.New(),
		Title:     title,
		Category:  "Hukum Mad",
		Content:   "Mad thabi'i dibaca dua harakat.",
		Tags:      []string{"mad"},
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSnapshot_IsCachedUntilChange(t *testing.T) {
	svc, repo, pub := newKnowledgeFixture(&fakeCompletion{}, sampleRecord("Mad Thabi'i"))

	first, err := svc.Snapshot(t.Context())
	require.NoError(t, err)
	require.Len(t, first, 1)

	first[0].Title = "mutated by caller"
	second, err := svc.Snapshot(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Mad Thabi'i", second[0].Title)
	assert.Equal(t, 1, repo.snapshotLoads())

	_, err = svc.Create(t.Context(), &dto.CreateKnowledgeRequest{
		Title:    " Mad Wajib Muttashil ",
		Category: "Hukum Mad",
		Content:  "Mad bertemu hamzah dalam satu kata.",
		Tags:     []string{"Mad", " mad ", "wajib"},
	})
	require.NoError(t, err)

	third, err := svc.Snapshot(t.Context())
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, repo.snapshotLoads())
	assert.Equal(t, "Mad Wajib Muttashil", third[1].Title)
	assert.Equal(t, []string{events.TypeKnowledgeCreated}, pub.types())
}

func TestCreate_RejectsUnknownCategory(t *testing.T) {
	svc, repo, pub := newKnowledgeFixture(&fakeCompletion{})

	_, err := svc.Create(t.Context(), &dto.CreateKnowledgeRequest{Title: "x", Category: "Fiqih", Content: "y"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	n, _ := repo.Count(t.Context())
	assert.Zero(t, n)
	assert.Empty(t, pub.types())
}

func TestUpdateAndDelete(t *testing.T) {
	rec := sampleRecord("Mad Thabi'i")
	svc, _, pub := newKnowledgeFixture(&fakeCompletion{}, rec)

	res, err := svc.Update(t.Context(), rec.Id, &dto.UpdateKnowledgeRequest{
		Title:    "Mad Asli",
		Category: "Hukum Mad",
		Content:  "Dua harakat.",
		Source:   "Hidayatul Mustafid",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mad Asli", res.Title)
	assert.Equal(t, []string{}, res.Tags)

	_, err = svc.Update(t.Context(), uuid.New(), &dto.UpdateKnowledgeRequest{Title: "x", Category: "Hukum Mad", Content: "y"})
	assert.ErrorIs(t, err, ErrKnowledgeNotFound)

	require.NoError(t, svc.Delete(t.Context(), rec.Id))
	assert.ErrorIs(t, svc.Delete(t.Context(), rec.Id), ErrKnowledgeNotFound)

	_, err = svc.Show(t.Context(), rec.Id)
	assert.ErrorIs(t, err, ErrKnowledgeNotFound)
	assert.Equal(t, []string{events.TypeKnowledgeUpdated, events.TypeKnowledgeDeleted}, pub.types())
}

func TestAudioLifecycle(t *testing.T) {
	rec := sampleRecord("Ikhfa Syafawi")
	svc, _, pub := newKnowledgeFixture(&fakeCompletion{}, rec)

	mp3 := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 16)...)
	require.NoError(t, svc.PutAudio(t.Context(), rec.Id, media.Payload{Bytes: mp3}))

	snap, err := svc.Snapshot(t.Context())
	require.NoError(t, err)
	assert.True(t, snap[0].HasAudio())
	assert.Equal(t, "/api/knowledge/v1/"+rec.Id.String()+"/audio", snap[0].AudioClipRef)

	clip, err := svc.GetAudio(t.Context(), rec.Id)
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", clip.MimeType)

	tooLarge := append(mp3, make([]byte, 64)...)
	var encErr *media.EncodingError
	assert.ErrorAs(t, svc.PutAudio(t.Context(), rec.Id, media.Payload{Bytes: tooLarge}), &encErr)
	assert.ErrorIs(t, svc.PutAudio(t.Context(), uuid.New(), media.Payload{Bytes: mp3}), ErrKnowledgeNotFound)

	require.NoError(t, svc.DeleteAudio(t.Context(), rec.Id))
	_, err = svc.GetAudio(t.Context(), rec.Id)
	assert.ErrorIs(t, err, ErrAudioNotFound)

	snap, err = svc.Snapshot(t.Context())
	require.NoError(t, err)
	assert.False(t, snap[0].HasAudio())
	assert.Equal(t, []string{events.TypeKnowledgeAudioChanged, events.TypeKnowledgeAudioChanged}, pub.types())
}

func TestTranscribe(t *testing.T) {
	completion := &fakeCompletion{reply: "مِنْ بَعْدِ"}
	svc, _, _ := newKnowledgeFixture(completion)

	res, err := svc.Transcribe(t.Context(), media.Payload{Bytes: testPNG})
	require.NoError(t, err)
	assert.Equal(t, constant.TranscribedContentPrefix+"مِنْ بَعْدِ", res.Text)

	require.Equal(t, 1, completion.calls())
	assert.Equal(t, constant.TranscribeImagePromptV1, completion.requests[0].Parts[0].Text)
	assert.Equal(t, "image/png", completion.requests[0].Parts[1].Media.MimeType)
	assert.Zero(t, completion.options[0].Temperature)

	failing := &fakeCompletion{err: errors.New("quota")}
	svc, _, _ = newKnowledgeFixture(failing)
	_, err = svc.Transcribe(t.Context(), media.Payload{Bytes: testPNG})
	assert.Error(t, err)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	svc, _, _ := newKnowledgeFixture(&fakeCompletion{})

	cats := svc.Categories()
	require.Len(t, cats, len(constant.Categories))
	cats[0] = "changed"
	assert.NotEqual(t, "changed", constant.Categories[0])
}
