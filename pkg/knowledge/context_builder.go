package knowledge

import (
	"fmt"
	"strings"
)

const (
	SourceNotSpecified = "not specified"
	NoAudioMarker      = "[no audio]"
	recordSeparator    = "---"
)

// AudioMarker is the marker written for a record that has a stored clip.
// The model is told to only emit [[AUDIO:<id>]] for ids carrying it.
func AudioMarker(id string) string {
	return fmt.Sprintf("[audio available, id=%s]", id)
}

// OmittedNotice closes a bounded context that had to drop records.
func OmittedNotice(n int) string {
	return fmt.Sprintf("[%d more records omitted]", n)
}

// Build renders every record into the grounding block, in input order.
func Build(records []Record) string {
	return BuildBounded(records, 0)
}

// BuildBounded renders whole records in input order while the output stays
// within maxBytes. Records are never cut, so each emitted record keeps its
// audio marker. maxBytes <= 0 disables the bound.
func BuildBounded(records []Record, maxBytes int) string {
	var sb strings.Builder

	for i, r := range records {
		block := renderRecord(r)
		if maxBytes > 0 && sb.Len()+len(block) > maxBytes {
			sb.WriteString(OmittedNotice(len(records) - i))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(block)
	}

	return sb.String()
}

func renderRecord(r Record) string {
	var sb strings.Builder

	source := strings.TrimSpace(r.Source)
	if source == "" {
		source = SourceNotSpecified
	}

	sb.WriteString("TITLE: ")
	sb.WriteString(r.Title)
	sb.WriteString("\nCATEGORY: ")
	sb.WriteString(r.Category)
	sb.WriteString("\nSOURCE: ")
	sb.WriteString(source)
	sb.WriteString("\nCONTENT: ")
	sb.WriteString(r.Content)
	sb.WriteString("\nTAGS: ")
	sb.WriteString(strings.Join(NormalizeTags(r.Tags), ", "))
	sb.WriteString("\n")

	// Absence of the no-audio marker reads as permission to invent a clip id.
	if r.HasAudio() {
		sb.WriteString(AudioMarker(r.ID))
	} else {
		sb.WriteString(NoAudioMarker)
	}
	sb.WriteString("\n")
	sb.WriteString(recordSeparator)
	sb.WriteString("\n")

	return sb.String()
}

// NormalizeTags trims tags, drops empties and duplicates, keeping the order of
// first occurrence.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ParseTags splits a comma separated tag field as typed in the admin form.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}
