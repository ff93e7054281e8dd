package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("abc/report.csv", []byte("Code,Indicator\n")))
	data, err := store.Read("abc/report.csv")
	require.NoError(t, err)
	assert.Equal(t, "Code,Indicator\n", string(data))

	require.NoError(t, store.Delete("abc/report.csv"))
	_, err = store.Read("abc/report.csv")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete("abc/report.csv"))
}

func TestLocalStorageRejectsEscapingNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../x", "/etc/passwd"} {
		assert.Error(t, store.Save(name, []byte("x")), name)
	}
}

func TestCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("old/a.csv", []byte("a")))
	require.NoError(t, store.Save("new/b.csv", []byte("b")))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old", "a.csv"), past, past))

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old/a.csv"}, deleted)

	_, err = os.Stat(filepath.Join(dir, "old"))
	assert.True(t, os.IsNotExist(err))
	_, err = store.Read("new/b.csv")
	assert.NoError(t, err)
}
