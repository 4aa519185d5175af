package prompt

import (
	"strings"

	"tajwid-pintar-be/internal/constant"
)

// LeakedPhrases lists the forbidden phrases and internal record ids found in
// a visible answer. answer should already have its directives stripped, since
// AUDIO directives legitimately carry record ids.
func LeakedPhrases(answer string, recordIDs []string) []string {
	var leaks []string
	lower := strings.ToLower(answer)
	for _, phrase := range constant.LeakPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			leaks = append(leaks, phrase)
		}
	}
	for _, id := range recordIDs {
		if id != "" && strings.Contains(answer, id) {
			leaks = append(leaks, id)
		}
	}
	return leaks
}
