package knowledge

import (
	"context"
	"time"
)

// Record is one curated tajwid knowledge entry as seen by the dialogue engine.
type Record struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Category     string    `json:"category" yaml:"category"`
	Content      string    `json:"content" yaml:"content"`
	Tags         []string  `json:"tags" yaml:"tags"`
	Source       string    `json:"source,omitempty" yaml:"source,omitempty"`
	AudioClipRef string    `json:"audio_clip_ref,omitempty" yaml:"audio_clip_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// HasAudio reports whether the record points at a stored example clip.
func (r Record) HasAudio() bool {
	return r.AudioClipRef != ""
}

// Store is the read side of the knowledge store. Snapshot must return a
// point-in-time copy that the caller may keep for the whole turn.
type Store interface {
	Snapshot(ctx context.Context) ([]Record, error)
}

// Snapshot indexes a record list for exact, case-sensitive id lookup.
type Snapshot struct {
	records []Record
	byID    map[string]int
}

// NewSnapshot copies records into an immutable lookup view.
func NewSnapshot(records []Record) *Snapshot {
	s := &Snapshot{
		records: make([]Record, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(s.records, records)
	for i, r := range s.records {
		if _, dup := s.byID[r.ID]; !dup {
			s.byID[r.ID] = i
		}
	}
	return s
}

// Lookup returns the record with exactly this id.
func (s *Snapshot) Lookup(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Records returns the snapshot contents in store order.
func (s *Snapshot) Records() []Record {
	if s == nil {
		return nil
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// IDs lists every record id in store order.
func (s *Snapshot) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.ID
	}
	return ids
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}
