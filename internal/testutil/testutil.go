// Package testutil provides shared test helpers for creating config files and catalog fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

// CatalogFixture returns a small catalog in the raw shape of words.json.
func CatalogFixture() []vocabulary.RawWord {
	return []vocabulary.RawWord{
		{
			"id":            "w1",
			"word":          "寡黙",
			"reading":       "かもく",
			"meaning_short": "口数が少ない",
			"meaning_long":  "口数が少なく、あまりしゃべらないこと",
			"synonyms":      []any{"無口"},
			"antonyms":      []any{"饒舌"},
			"example":       "彼は寡黙な人だ。",
			"difficulty":    2,
			"tags":          []any{"性格"},
		},
		{
			"id":            "w2",
			"word":          "冗長",
			"reading":       "じょうちょう",
			"meaning_short": "無駄が多くて長い",
			"synonyms":      []any{"冗漫"},
			"antonyms":      []any{"簡潔"},
			"quiz_antonyms": map[string]any{
				"correct":     "簡潔",
				"distractors": []any{"緻密", "煩雑"},
			},
		},
		{
			"id":            "w3",
			"word":          "緻密",
			"reading":       "ちみつ",
			"meaning_short": "細かく行き届いている",
			"synonyms":      []any{"精密"},
			"antonyms":      []any{"粗雑"},
		},
	}
}

// CatalogFixtureWords returns CatalogFixture normalized.
func CatalogFixtureWords() []vocabulary.Word {
	return vocabulary.Normalize(CatalogFixture())
}

// WriteCatalog writes raws as a JSON catalog file and returns its path.
func WriteCatalog(t *testing.T, dir string, raws []vocabulary.RawWord) string {
	t.Helper()

	contents, err := json.Marshal(raws)
	require.NoError(t, err)

	path := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(path, contents, 0644))
	return path
}

// SetupTestConfig creates a config file with the fixture catalog and file storage under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	catalogPath := WriteCatalog(t, tmpDir, CatalogFixture())
	configContent := fmt.Sprintf(`catalog:
  path: %s
  cache_directory: %s
storage:
  backend: file
  file_path: %s
database:
  path: %s
outputs:
  word_sheet_directory: %s
`,
		catalogPath,
		filepath.Join(tmpDir, "cache"),
		filepath.Join(tmpDir, "data", "attempts.json"),
		filepath.Join(tmpDir, "data", "spivocab.db"),
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// FontPath returns a UTF-8 TrueType font for PDF rendering tests.
func FontPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "testdata", "DejaVuSansCondensed.ttf")
}
