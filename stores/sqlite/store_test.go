package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReturnsEmptyWhenUnset(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestSaveThenLoadSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(path)
	require.NoError(t, store.Save(context.Background(), "folder-123"))

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "folder-123", id)

	reopened := NewStore(path)
	id, err = reopened.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "folder-123", id)
}

func TestSaveOverwrites(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))

	require.NoError(t, store.Save(context.Background(), "first"))
	require.NoError(t, store.Save(context.Background(), "second"))

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "second", id)
}
