package characters_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/repositories/characters"
	"github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
	"github.com/KirkDiggler/dungeon-saves/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempSQLite(t *testing.T) (*characters.SQLiteRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dungeon.db")
	repo, err := characters.OpenSQLite(&characters.SQLiteRepoConfig{
		Path:          path,
		UUIDGenerator: &sequenceIDs{},
		TimeProvider:  newSteppingClock(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo, path
}

func TestSQLiteRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) characters.Repository {
		repo, _ := openTempSQLite(t)
		return repo
	})
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := characters.OpenSQLite(&characters.SQLiteRepoConfig{})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = characters.OpenSQLite(nil)
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestSQLiteRepository_SharesFileWithSaves(t *testing.T) {
	ctx := context.Background()
	repo, path := openTempSQLite(t)

	record := newRecord("user-1", "アリス")
	require.NoError(t, repo.Create(ctx, record))

	saveRepo, err := saves.OpenSQLite(&saves.SQLiteRepoConfig{Path: path})
	require.NoError(t, err)
	defer saveRepo.Close()

	require.NoError(t, saveRepo.Create(ctx, &saves.SaveRecord{
		UserID:    "user-1",
		SaveState: testutils.CreateTestSave(record.ID, record.Name),
	}))

	require.NoError(t, repo.Close())
	reopened, err := characters.OpenSQLite(&characters.SQLiteRepoConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "user-1", record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestSQLiteRepository_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	repo, path := openTempSQLite(t)

	record := newRecord("user-1", "アリス")
	require.NoError(t, repo.Create(ctx, record))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.ExecContext(ctx, `UPDATE characters SET payload = '{' WHERE id = ?`, record.ID)
	require.NoError(t, err)

	_, err = repo.Get(ctx, "user-1", record.ID)
	require.Error(t, err)
	assert.True(t, dnderr.IsValidation(err))
}
