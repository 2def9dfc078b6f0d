package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papersmith/papersmith/internal/core/ports/driven"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvConfigDir, tmpDir)

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set(driven.KeyModel, "gpt-4o-mini")
	require.NoError(t, err)

	val, ok := store.Get(driven.KeyModel)
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set(driven.KeyGlobPattern, "~/scans/*.pdf")
	require.NoError(t, err)

	assert.Equal(t, "~/scans/*.pdf", store.GetString(driven.KeyGlobPattern))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("int_key", 42))
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.KeyRequestsPerSecond, 0.5))
	assert.Equal(t, 0.5, store.GetFloat(driven.KeyRequestsPerSecond))

	// Integers coerce
	require.NoError(t, store.Set("whole", 2))
	assert.Equal(t, 2.0, store.GetFloat("whole"))

	assert.Equal(t, 0.0, store.GetFloat("nonexistent"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("flag", true))
	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.KeyAPIKey, "sk-test"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", reloaded.GetString(driven.KeyAPIKey))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	config := "[openai]\nmodel = \"gpt-4o-mini\"\napi_key = \"sk-test\"\n\n[rename]\nfallback_label = \"misc\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(config), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", store.GetString(driven.KeyModel))
	assert.Equal(t, "sk-test", store.GetString(driven.KeyAPIKey))
	assert.Equal(t, "misc", store.GetString(driven.KeyFallbackLabel))
}

func TestConfigStore_RestrictedPermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.KeyAPIKey, "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
