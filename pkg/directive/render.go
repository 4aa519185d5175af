package directive

import (
	"fmt"
	"strings"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/pkg/knowledge"
)

type ItemKind string

const (
	ItemText             ItemKind = "text"
	ItemBold             ItemKind = "bold"
	ItemAudio            ItemKind = "audio"
	ItemAudioUnavailable ItemKind = "audio_unavailable"
	ItemRecitation       ItemKind = "recitation"
	ItemRegistrationCTA  ItemKind = "registration_cta"
)

// Item is one element the client draws, in order.
type Item struct {
	Kind     ItemKind `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Label    string   `json:"label,omitempty"`
	URL      string   `json:"url,omitempty"`
	RecordID string   `json:"record_id,omitempty"`
	Chapter  int      `json:"chapter,omitempty"`
	Verse    int      `json:"verse,omitempty"`
}

type Plan struct {
	Items []Item `json:"items"`
}

// Markdown rebuilds the prose with bold spans re-wrapped and directives
// dropped. For directive-free input it equals the rendered text.
func (p Plan) Markdown() string {
	var sb strings.Builder
	for _, it := range p.Items {
		switch it.Kind {
		case ItemText:
			sb.WriteString(it.Text)
		case ItemBold:
			sb.WriteString("**")
			sb.WriteString(it.Text)
			sb.WriteString("**")
		}
	}
	return Strip(sb.String())
}

// PlainText is the prose without formatting or directives. Parsing it again
// never yields a directive.
func (p Plan) PlainText() string {
	var sb strings.Builder
	for _, it := range p.Items {
		if it.Kind == ItemText || it.Kind == ItemBold {
			sb.WriteString(it.Text)
		}
	}
	return Strip(sb.String())
}

// Directives returns the directive items only.
func (p Plan) Directives() []Item {
	var out []Item
	for _, it := range p.Items {
		if it.Kind != ItemText && it.Kind != ItemBold {
			out = append(out, it)
		}
	}
	return out
}

type Renderer struct {
	reciterBaseURL  string
	registrationURL string
}

type Option func(*Renderer)

func WithReciterBaseURL(u string) Option {
	return func(r *Renderer) {
		if u != "" {
			r.reciterBaseURL = u
		}
	}
}

func WithRegistrationURL(u string) Option {
	return func(r *Renderer) {
		r.registrationURL = u
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{reciterBaseURL: constant.DefaultReciterBaseURL}
	for _, opt := range opts {
		opt(r)
	}
	r.reciterBaseURL = strings.TrimRight(r.reciterBaseURL, "/")
	return r
}

// Render turns generated text into a render plan. Lookups go against snap
// only; a nil snapshot resolves every audio directive as unavailable.
func (r *Renderer) Render(text string, snap *knowledge.Snapshot) Plan {
	plan := Plan{Items: []Item{}}
	for _, seg := range Parse(text) {
		switch d := seg.Directive.(type) {
		case nil:
			plan.Items = append(plan.Items, splitBold(seg.Raw)...)
		case AudioRef:
			plan.Items = append(plan.Items, r.audio(d, snap))
		case Recitation:
			plan.Items = append(plan.Items, Item{
				Kind:    ItemRecitation,
				Label:   constant.RecitationLabel,
				URL:     r.RecitationURL(d.Chapter, d.Verse),
				Chapter: d.Chapter,
				Verse:   d.Verse,
			})
		case RegistrationCTA:
			plan.Items = append(plan.Items, Item{
				Kind:  ItemRegistrationCTA,
				Text:  constant.RegistrationDisclaimer,
				Label: constant.RegistrationAction,
				URL:   r.registrationURL,
			})
		}
	}
	return plan
}

func (r *Renderer) audio(d AudioRef, snap *knowledge.Snapshot) Item {
	rec, ok := snap.Lookup(d.ID)
	if !ok || !rec.HasAudio() {
		return Item{Kind: ItemAudioUnavailable, Text: constant.AudioUnavailableNotice, RecordID: d.ID}
	}
	return Item{
		Kind:     ItemAudio,
		Text:     rec.Title,
		Label:    constant.AdminAudioLabel,
		URL:      rec.AudioClipRef,
		RecordID: rec.ID,
	}
}

// RecitationURL builds <base>/<SSS><AAA>.mp3.
func (r *Renderer) RecitationURL(chapter, verse int) string {
	return fmt.Sprintf("%s/%03d%03d.mp3", r.reciterBaseURL, chapter, verse)
}

// splitBold expands **bold** spans. Unpaired markers stay literal.
func splitBold(text string) []Item {
	var items []Item
	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			items = append(items, Item{Kind: ItemText, Text: text[last:m[0]]})
		}
		items = append(items, Item{Kind: ItemBold, Text: text[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(text) {
		items = append(items, Item{Kind: ItemText, Text: text[last:]})
	}
	return items
}
