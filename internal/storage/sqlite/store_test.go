package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/sqlite"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/storagetest"
)

func TestSQLiteStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (storage.KV, func()) {
		store, err := sqlite.Open(filepath.Join(t.TempDir(), "tracker.db"))
		require.NoError(t, err)
		return store, func() { _ = store.Close() }
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ")
	require.Error(t, err)
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, storage.KeyHomeTeamName, []byte("Eagles")))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Load(ctx, storage.KeyHomeTeamName)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Eagles", string(got))
}
