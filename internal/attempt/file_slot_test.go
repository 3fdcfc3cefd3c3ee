package attempt

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlot(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	slot := NewFileSlot(fs, "/data/spivocab/attempts.json")

	_, ok, err := slot.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Set(ctx, `[]`))
	got, ok, err := slot.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, got)

	require.NoError(t, slot.Set(ctx, `[1]`))
	got, _, err = slot.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, got)
}

func TestFileSlot_ReadOnlyFs(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/attempts.json", []byte("[]"), 0o644))
	slot := NewFileSlot(afero.NewReadOnlyFs(base), "/attempts.json")

	got, ok, err := slot.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", got)

	assert.Error(t, slot.Set(ctx, "[1]"))
}

func TestFileSlot_WithStore(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/attempts.json", []byte("garbage"), 0o644))
	store := NewStore(NewFileSlot(fs, "/attempts.json"))

	got, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	a := Attempt{WordID: "w1", Mode: ModeMemorize, SelfRating: RatingRemembered, AnsweredAt: "2024-05-01T00:00:00.000Z"}
	require.NoError(t, store.Append(ctx, a))

	contents, err := afero.ReadFile(fs, "/attempts.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"wordId":"w1","mode":"memorize","selfRating":2,"answeredAt":"2024-05-01T00:00:00.000Z"}]`, string(contents))
}
