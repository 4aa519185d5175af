package directive

import (
	"regexp"
	"strconv"
	"strings"
)

// One alternation so that segments come out in text order. Submatch groups:
// 1 audio id, 2 chapter, 3 verse. DAFTAR_KELAS has no group.
var directivePattern = regexp.MustCompile(`\[\[AUDIO:\s*([^\]]+)\]\]|\[\[RECITE:(\d+):(\d+)\]\]|\[\[DAFTAR_KELAS\]\]`)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

const trailingPunctuation = ".,!?;:"

// Segment is a slice of the original text. Directive is nil for plain text.
// Concatenating Raw over all segments yields the input exactly.
type Segment struct {
	Raw       string
	Directive Directive
}

// Parse splits text into plain and directive segments. It never fails:
// anything that does not match the grammar stays plain text.
func Parse(text string) []Segment {
	var segments []Segment
	last := 0
	for _, m := range directivePattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		raw := text[start:end]

		d, ok := classify(text, m)
		if !ok {
			// stays in the next plain run
			continue
		}
		if start > last {
			segments = append(segments, Segment{Raw: text[last:start]})
		}
		segments = append(segments, Segment{Raw: raw, Directive: d})
		last = end
	}
	if last < len(text) {
		segments = append(segments, Segment{Raw: text[last:]})
	}
	return segments
}

func classify(text string, m []int) (Directive, bool) {
	switch {
	case m[2] >= 0:
		return AudioRef{ID: NormalizeID(text[m[2]:m[3]])}, true
	case m[4] >= 0:
		chapter, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			return nil, false
		}
		verse, err := strconv.Atoi(text[m[6]:m[7]])
		if err != nil {
			return nil, false
		}
		return Recitation{Chapter: chapter, Verse: verse}, true
	default:
		return RegistrationCTA{}, true
	}
}

// NormalizeID trims whitespace and drops one trailing punctuation character.
func NormalizeID(raw string) string {
	id := strings.TrimSpace(raw)
	if id != "" && strings.ContainsRune(trailingPunctuation, rune(id[len(id)-1])) {
		id = id[:len(id)-1]
	}
	return id
}

// Strip removes directive markers until none remain. Removing one marker can
// join its neighbours into a new one, hence the loop.
func Strip(text string) string {
	for {
		stripped := directivePattern.ReplaceAllString(text, "")
		if stripped == text {
			return text
		}
		text = stripped
	}
}
