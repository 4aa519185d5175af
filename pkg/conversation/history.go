package conversation

import (
	"strings"
	"sync"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Labels used in the textual history projection.
const (
	UserLabel      = "USER"
	AssistantLabel = "ASSISTANT"
)

// Turn is one message of a chat session.
type Turn struct {
	Role            Role      `json:"role"`
	Text            string    `json:"text"`
	ImagePreviewRef string    `json:"image_preview_ref,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Window is the append-only turn history of one session.
type Window struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewWindow() *Window {
	return &Window{}
}

// Append adds turns at the end of the history.
func (w *Window) Append(turns ...Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = append(w.turns, turns...)
}

// Turns returns a copy of the full history.
func (w *Window) Turns() []Turn {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.turns)
}

// RecentAsText renders the last n turns, oldest first, one "LABEL: text" line
// per turn. Media never appears here.
func (w *Window) RecentAsText(n int) string {
	if n <= 0 {
		return ""
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	start := len(w.turns) - n
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, len(w.turns)-start)
	for _, t := range w.turns[start:] {
		lines = append(lines, label(t.Role)+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}

func label(r Role) string {
	if r == RoleAssistant {
		return AssistantLabel
	}
	return UserLabel
}
