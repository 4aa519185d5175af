package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seededWindow() *Window {
	now := time.Now()
	w := NewWindow()
	w.Append(
		Turn{Role: RoleAssistant, Text: "Assalamu'alaikum", Timestamp: now},
		Turn{Role: RoleUser, Text: "Apa itu ikhfa?", Timestamp: now},
		Turn{Role: RoleAssistant, Text: "Ikhfa artinya samar.", Timestamp: now},
		Turn{Role: RoleUser, Text: "", ImagePreviewRef: "mushaf.jpg", Timestamp: now},
	)
	return w
}

func TestRecentAsText(t *testing.T) {
	w := seededWindow()

	tests := []struct {
		name string
		n    int
		want string
	}{
		{name: "zero", n: 0, want: ""},
		{name: "negative", n: -3, want: ""},
		{name: "last two", n: 2, want: "ASSISTANT: Ikhfa artinya samar.\nUSER: "},
		{
			name: "more than available",
			n:    10,
			want: "ASSISTANT: Assalamu'alaikum\nUSER: Apa itu ikhfa?\nASSISTANT: Ikhfa artinya samar.\nUSER: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.RecentAsText(tt.n))
		})
	}
}

func TestRecentAsText_NeverIncludesMedia(t *testing.T) {
	w := seededWindow()
	assert.NotContains(t, w.RecentAsText(10), "mushaf.jpg")
}

func TestTurnsIsACopy(t *testing.T) {
	w := seededWindow()
	turns := w.Turns()
	turns[0].Text = "changed"

	assert.Equal(t, "Assalamu'alaikum", w.Turns()[0].Text)
	assert.Equal(t, 4, w.Len())
}

func TestEmptyWindow(t *testing.T) {
	w := NewWindow()
	assert.Equal(t, "", w.RecentAsText(5))
	assert.Empty(t, w.Turns())
}
