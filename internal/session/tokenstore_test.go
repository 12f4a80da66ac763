package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	require.NoError(t, store.Save("tok-abc"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestFileTokenStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token")
	store := NewFileTokenStore(path)

	require.NoError(t, store.Save("tok-abc"))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileTokenStoreLoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "absent"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileTokenStoreLoadTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  tok-abc\n"), 0600))
	store := NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestFileTokenStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)
	require.NoError(t, store.Save("tok-abc"))

	require.NoError(t, store.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileTokenStoreClearIsIdempotent(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "absent"))

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Clear())
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore("seed")

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "seed", token)

	require.NoError(t, store.Save("tok-new"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
