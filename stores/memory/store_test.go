package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveThenLoad(t *testing.T) {
	store := NewStore()

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, id)

	require.NoError(t, store.Save(context.Background(), "folder-123"))

	id, err = store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "folder-123", id)
}
