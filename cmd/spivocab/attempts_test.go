package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spivocab/internal/attempt"
	"github.com/at-ishikawa/spivocab/internal/bootstrap"
	"github.com/at-ishikawa/spivocab/internal/config"
	"github.com/at-ishikawa/spivocab/internal/testutil"
)

const attemptLog = `[
	{"wordId":"w1","mode":"memorize","selfRating":2,"answeredAt":"2026-01-02T03:04:05.000Z"},
	{"wordId":"w2","mode":"quiz","selfRating":1,"answeredAt":"2026-01-02T03:04:06.000Z"},
	{"wordId":"w3","mode":"memorize","selfRating":0,"answeredAt":"2026-01-02T03:04:07.000Z"}
]`

func setupAttemptLog(t *testing.T) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	logPath := filepath.Join(tmpDir, "data", "attempts.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0755))
	require.NoError(t, os.WriteFile(logPath, []byte(attemptLog), 0644))
	return tmpDir, cfgPath
}

func TestBackendFlag_Set(t *testing.T) {
	tests := []struct {
		value   string
		want    BackendFlag
		wantErr bool
	}{
		{value: "file", want: "file"},
		{value: "sqlite", want: "sqlite"},
		{value: "mysql", want: "mysql"},
		{value: "postgres", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var got BackendFlag
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.value, got.String())
		})
	}
}

func TestNewAttemptsExportCommand(t *testing.T) {
	tmpDir, cfgPath := setupAttemptLog(t)
	setConfigFile(t, cfgPath)
	outputPath := filepath.Join(tmpDir, "attempts.yml")

	output, err := executeCommand(t, newAttemptsCommand(), "export", "--output", outputPath)
	require.NoError(t, err)
	assert.Contains(t, output, "Exported 2 attempts")

	contents, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, `- word_id: w1
  mode: memorize
  self_rating: 2
  answered_at: "2026-01-02T03:04:05.000Z"
- word_id: w3
  mode: memorize
  self_rating: 0
  answered_at: "2026-01-02T03:04:07.000Z"
`, string(contents))
}

func TestNewAttemptsCopyCommand(t *testing.T) {
	_, cfgPath := setupAttemptLog(t)
	setConfigFile(t, cfgPath)

	output, err := executeCommand(t, newAttemptsCommand(), "copy", "--to", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, output, "Copied 2 attempts from file to sqlite")

	loader, err := config.NewConfigLoader(cfgPath)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	app := bootstrap.New()
	defer func() {
		_ = app.Shutdown(context.Background())
	}()
	slot, err := app.OpenSlot(context.Background(), afero.NewOsFs(), cfg, config.StorageBackendSQLite)
	require.NoError(t, err)
	got, err := attempt.NewStore(slot).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []attempt.Attempt{
		{WordID: "w1", Mode: attempt.ModeMemorize, SelfRating: attempt.RatingRemembered, AnsweredAt: "2026-01-02T03:04:05.000Z"},
		{WordID: "w3", Mode: attempt.ModeMemorize, SelfRating: attempt.RatingForgotten, AnsweredAt: "2026-01-02T03:04:07.000Z"},
	}, got)
}

func TestNewAttemptsCommand_Errors(t *testing.T) {
	_, cfgPath := setupAttemptLog(t)

	tests := []struct {
		name    string
		cfgPath string
		args    []string
		wantErr string
	}{
		{
			name:    "copy into the configured backend",
			cfgPath: cfgPath,
			args:    []string{"copy", "--to", "file"},
			wantErr: "is the configured backend",
		},
		{
			name:    "unknown backend",
			cfgPath: cfgPath,
			args:    []string{"copy", "--to", "postgres"},
			wantErr: "invalid value",
		},
		{
			name:    "export without output",
			cfgPath: cfgPath,
			args:    []string{"export"},
			wantErr: `required flag(s) "output" not set`,
		},
		{
			name:    "invalid config",
			cfgPath: setupBrokenConfigFile(t),
			args:    []string{"export", "--output", filepath.Join(t.TempDir(), "a.yml")},
			wantErr: "configuration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setConfigFile(t, tt.cfgPath)

			_, err := executeCommand(t, newAttemptsCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
