package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRemove(t *testing.T) {
	store := NewStore(t.TempDir())

	_, ok := store.Load()
	assert.False(t, ok)

	require.NoError(t, store.Save("tok-1"))
	tok, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)

	require.NoError(t, store.Remove())
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestLoadHonorsLegacyKey(t *testing.T) {
	dir := t.TempDir()
	raw, _ := json.Marshal(map[string]string{"token": "legacy-tok"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), raw, 0o600))

	store := NewStore(dir)
	tok, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "legacy-tok", tok)

	// Removal clears the legacy key too.
	require.NoError(t, store.Remove())
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Remove())
	require.NoError(t, store.Remove())
}
