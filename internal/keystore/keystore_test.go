package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.enc")
	store, err := Open(path, "test-passphrase")
	require.NoError(t, err)
	return store, path
}

func TestSetGet(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Set("session_token", "abc123"))

	value, err := store.Get("session_token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestGetAbsentKey(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Get("session_token")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Set("session_token", "abc123"))
	require.NoError(t, store.Delete("session_token"))

	_, err := store.Get("session_token")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAbsentKeyIsNil(t *testing.T) {
	store, _ := openTestStore(t)
	assert.NoError(t, store.Delete("never-stored"))
}

func TestValueSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")

	store, err := Open(path, "test-passphrase")
	require.NoError(t, err)
	require.NoError(t, store.Set("session_token", "abc123"))

	reopened, err := Open(path, "test-passphrase")
	require.NoError(t, err)

	value, err := reopened.Get("session_token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestValueIsEncryptedOnDisk(t *testing.T) {
	store, path := openTestStore(t)
	require.NoError(t, store.Set("session_token", "super-secret-token"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret-token")
}

func TestWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")

	store, err := Open(path, "right-passphrase")
	require.NoError(t, err)
	require.NoError(t, store.Set("session_token", "abc123"))

	reopened, err := Open(path, "wrong-passphrase")
	require.NoError(t, err)

	// Decryption fails, which is a storage failure, not absence.
	_, err = reopened.Get("session_token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, errors.ErrCodeStoreCorrupt, errors.CodeOf(err))
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	_, err := Open(path, "test-passphrase")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStoreCorrupt, errors.CodeOf(err))
}

func TestFilePermissions(t *testing.T) {
	store, path := openTestStore(t)
	require.NoError(t, store.Set("session_token", "abc123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetOverwrites(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Set("session_token", "first"))
	require.NoError(t, store.Set("session_token", "second"))

	value, err := store.Get("session_token")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestNoPartialWriteObservable(t *testing.T) {
	store, path := openTestStore(t)
	require.NoError(t, store.Set("session_token", "abc123"))

	// Whatever is on disk must always be a complete JSON document.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var file storeFile
	require.NoError(t, json.Unmarshal(data, &file))
	assert.NotEmpty(t, file.Salt)

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".session-"), "temp file left behind: %s", e.Name())
	}
}
