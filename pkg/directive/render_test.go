package directive

import (
	"testing"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() *knowledge.Snapshot {
	return knowledge.NewSnapshot([]knowledge.Record{
		{ID: "k1", Title: "Ikhfa Syafawi", AudioClipRef: "/api/knowledge/v1/k1/audio"},
		{ID: "k2", Title: "Qalqalah Sugra"},
		{ID: "12:3", Title: "Colon id", AudioClipRef: "/api/knowledge/v1/12:3/audio"},
	})
}

func TestRender_DirectiveFreeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Idzhar dibaca jelas.",
		"Hukum **Ikhfa** dan **Idgham** berbeda.",
		"Bintang **tunggal tanpa pasangan",
		"**a** **b",
		"****",
		"multi\nline **bold**\n",
		"[[VIDEO:k1]] tetap teks",
	}
	r := NewRenderer()
	for _, in := range inputs {
		plan := r.Render(in, snapshot())
		assert.Equal(t, in, plan.Markdown(), "input %q", in)
		assert.Empty(t, plan.Directives())
	}
}

func TestRender_Bold(t *testing.T) {
	plan := NewRenderer().Render("Hukum **Ikhfa** ya", nil)
	assert.Equal(t, []Item{
		{Kind: ItemText, Text: "Hukum "},
		{Kind: ItemBold, Text: "Ikhfa"},
		{Kind: ItemText, Text: " ya"},
	}, plan.Items)
}

func TestRender_OddBoldMarkersStayLiteral(t *testing.T) {
	plan := NewRenderer().Render("a **b** c **d", nil)
	require.Len(t, plan.Items, 3)
	assert.Equal(t, Item{Kind: ItemText, Text: " c **d"}, plan.Items[2])
}

func TestRender_Recitation(t *testing.T) {
	plan := NewRenderer().Render("Dengarkan [[RECITE:3:5]]", nil)

	dirs := plan.Directives()
	require.Len(t, dirs, 1)
	assert.Equal(t, ItemRecitation, dirs[0].Kind)
	assert.Equal(t, "https://everyayah.com/data/Alafasy_128kbps/003005.mp3", dirs[0].URL)
	assert.Equal(t, 3, dirs[0].Chapter)
	assert.Equal(t, 5, dirs[0].Verse)
}

func TestRender_RecitationCustomReciter(t *testing.T) {
	r := NewRenderer(WithReciterBaseURL("https://cdn.example.org/husary/"))
	assert.Equal(t, "https://cdn.example.org/husary/114006.mp3", r.RecitationURL(114, 6))
}

func TestRender_AudioTrailingPunctuationResolvesSame(t *testing.T) {
	r := NewRenderer()
	plain := r.Render("[[AUDIO:k1]]", snapshot()).Directives()
	dotted := r.Render("[[AUDIO:k1.]]", snapshot()).Directives()

	require.Len(t, plain, 1)
	assert.Equal(t, plain, dotted)
	assert.Equal(t, ItemAudio, plain[0].Kind)
	assert.Equal(t, constant.AdminAudioLabel, plain[0].Label)
	assert.Equal(t, "/api/knowledge/v1/k1/audio", plain[0].URL)
}

func TestRender_AudioUnavailable(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"absent id", "[[AUDIO:k9]]"},
		{"record without clip", "[[AUDIO:k2]]"},
		{"case differs", "[[AUDIO:K1]]"},
		{"near miss", "[[AUDIO:k1x]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := NewRenderer().Render("sebelum "+tt.text+" sesudah", snapshot()).Directives()
			require.Len(t, dirs, 1)
			assert.Equal(t, ItemAudioUnavailable, dirs[0].Kind)
			assert.Equal(t, constant.AudioUnavailableNotice, dirs[0].Text)
		})
	}
}

func TestRender_ColonIDIsAudioNotRecitation(t *testing.T) {
	dirs := NewRenderer().Render("[[AUDIO:12:3]]", snapshot()).Directives()
	require.Len(t, dirs, 1)
	assert.Equal(t, ItemAudio, dirs[0].Kind)
	assert.Equal(t, "12:3", dirs[0].RecordID)
}

func TestRender_RegistrationCTA(t *testing.T) {
	r := NewRenderer(WithRegistrationURL("https://markaz.example/daftar"))
	dirs := r.Render("Yuk belajar! [[DAFTAR_KELAS]]", nil).Directives()
	require.Len(t, dirs, 1)
	assert.Equal(t, Item{
		Kind:  ItemRegistrationCTA,
		Text:  constant.RegistrationDisclaimer,
		Label: constant.RegistrationAction,
		URL:   "https://markaz.example/daftar",
	}, dirs[0])
}

func TestRender_PlainTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"[[[[DAFTAR_KELAS]]DAFTAR_KELAS]]",
		"[[AUD[[AUDIO:k1]]IO:k1]]",
		"[[RE[[DAFTAR_KELAS]]CITE:1:1]] **x**",
		"a [[AUDIO:k1]] b [[RECITE:2:255]] c",
	}
	r := NewRenderer()
	for _, in := range inputs {
		plain := r.Render(in, snapshot()).PlainText()
		for _, seg := range Parse(plain) {
			assert.Nil(t, seg.Directive, "input %q produced %q", in, plain)
		}
		again := r.Render(plain, snapshot())
		assert.Equal(t, plain, again.PlainText())
	}
}

func TestRender_NeverReturnsNilItems(t *testing.T) {
	plan := NewRenderer().Render("", nil)
	assert.NotNil(t, plan.Items)
}
