package prompt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/pkg/directive"
	"tajwid-pintar-be/pkg/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var goldenRecordIDs = []string{
	"7f9c2a4e-1b3d-4c5e-9a8b-2d1f0e3c4b5a",
	"0b8e6f1c-5d4a-4e2b-8c7d-9f3a2b1c0d4e",
}

func goldenAnswers(t *testing.T, pattern string) map[string]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", pattern))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	out := make(map[string]string, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		out[filepath.Base(f)] = string(b)
	}
	return out
}

func TestGolden_CleanAnswersLeakNothing(t *testing.T) {
	renderer := directive.NewRenderer()
	for name, answer := range goldenAnswers(t, "clean_*.golden") {
		t.Run(name, func(t *testing.T) {
			visible := renderer.Render(answer, nil).PlainText()
			assert.Empty(t, prompt.LeakedPhrases(visible, goldenRecordIDs))
		})
	}
}

func TestGolden_LeakyAnswersAreReported(t *testing.T) {
	renderer := directive.NewRenderer()
	for name, answer := range goldenAnswers(t, "leaky_*.golden") {
		t.Run(name, func(t *testing.T) {
			visible := renderer.Render(answer, nil).PlainText()
			assert.NotEmpty(t, prompt.LeakedPhrases(visible, goldenRecordIDs))
		})
	}
}

func TestLeakedPhrases_IgnoresIDsInsideDirectives(t *testing.T) {
	answer := "Contoh bacaan: [[AUDIO:" + goldenRecordIDs[0] + "]]"
	assert.NotEmpty(t, prompt.LeakedPhrases(answer, goldenRecordIDs))

	visible := directive.NewRenderer().Render(answer, nil).PlainText()
	assert.Empty(t, prompt.LeakedPhrases(visible, goldenRecordIDs))
}

func TestInstructionContract_ForbidsLeakPhrases(t *testing.T) {
	rules := strings.ToLower(constant.TajwidKnowledgeRulesPromptV1)
	assert.Contains(t, rules, "based on the provided data")
	assert.Contains(t, rules, "id materi")
}
