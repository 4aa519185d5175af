package specification

import (
	"strings"

	"tajwid-pintar-be/internal/repository/scope"

	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// TitleOrContentContains is a case-insensitive substring search.
type TitleOrContentContains struct {
	Query string
}

func (s TitleOrContentContains) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	pattern := "%" + escapeLike(q) + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}

// SnapshotOrder is the stable order grounding context is built in.
type SnapshotOrder struct{}

func (SnapshotOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedAsc, scope.OrderByIDAsc)
}

type WithAudio struct{}

func (WithAudio) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("audio_size > 0")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
