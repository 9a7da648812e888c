package characters_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/repositories/characters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances one second per reading
type steppingClock struct {
	mu   sync.Mutex
	next time.Time
}

func newSteppingClock() *steppingClock {
	return &steppingClock{next: time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC)}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}

// sequenceIDs hands out char-1, char-2, ...
type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("char-%d", g.n)
}

func newRecord(userID, name string) *characters.CharacterRecord {
	return &characters.CharacterRecord{
		Character: character.Character{
			UserID:    userID,
			Name:      name,
			Level:     1,
			ExpToNext: 100,
			HP:        50,
			MaxHP:     50,
			Attack:    10,
			Defense:   5,
		},
	}
}

// runRepositoryContract checks the behavior every Repository implementation shares
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) characters.Repository) {
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")

		require.NoError(t, repo.Create(ctx, record))
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.CreatedAt.IsZero())
		assert.Equal(t, record.CreatedAt, record.UpdatedAt)

		got, err := repo.Get(ctx, "user-1", record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)
	})

	t.Run("create keeps a given id once", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")
		record.ID = "hero"
		require.NoError(t, repo.Create(ctx, record))
		assert.Equal(t, "hero", record.ID)

		twin := newRecord("user-1", "ボブ")
		twin.ID = "hero"
		err := repo.Create(ctx, twin)
		require.Error(t, err)
		assert.True(t, dnderr.IsAlreadyExists(err))
	})

	t.Run("characters are scoped to their user", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")
		require.NoError(t, repo.Create(ctx, record))

		_, err := repo.Get(ctx, "user-2", record.ID)
		assert.True(t, dnderr.IsNotFound(err))
		_, err = repo.Get(ctx, "user-1", "nope")
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("returned records are detached", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")
		require.NoError(t, repo.Create(ctx, record))

		got, err := repo.Get(ctx, "user-1", record.ID)
		require.NoError(t, err)
		got.Gold = 999

		again, err := repo.Get(ctx, "user-1", record.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, again.Gold)
	})

	t.Run("update replaces the character", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")
		require.NoError(t, repo.Create(ctx, record))
		createdAt := record.CreatedAt

		record.Character = record.Character.GainExpAndGold(30, 12)
		require.NoError(t, repo.Update(ctx, record))
		assert.Equal(t, createdAt, record.CreatedAt)
		assert.True(t, record.UpdatedAt.After(createdAt))

		got, err := repo.Get(ctx, "user-1", record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)
		assert.Equal(t, 12, got.Gold)
	})

	t.Run("update requires an owned character", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")
		require.NoError(t, repo.Create(ctx, record))

		stranger := record.Clone()
		stranger.UserID = "user-2"
		assert.True(t, dnderr.IsNotFound(repo.Update(ctx, stranger)))

		missing := newRecord("user-1", "ボブ")
		missing.ID = "nope"
		assert.True(t, dnderr.IsNotFound(repo.Update(ctx, missing)))

		assert.True(t, dnderr.IsInvalidArgument(repo.Update(ctx, newRecord("user-1", "ボブ"))))
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "アリス")
		require.NoError(t, repo.Create(ctx, record))

		assert.True(t, dnderr.IsNotFound(repo.Delete(ctx, "user-2", record.ID)))
		require.NoError(t, repo.Delete(ctx, "user-1", record.ID))

		_, err := repo.Get(ctx, "user-1", record.ID)
		assert.True(t, dnderr.IsNotFound(err))
		assert.True(t, dnderr.IsNotFound(repo.Delete(ctx, "user-1", record.ID)))

		list, err := repo.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("list by user is newest first", func(t *testing.T) {
		repo := newRepo(t)
		first := newRecord("user-1", "アリス")
		second := newRecord("user-1", "ボブ")
		other := newRecord("user-2", "キャロル")
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, other))

		list, err := repo.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)

		none, err := repo.ListByUser(ctx, "user-9")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("rejects incomplete records", func(t *testing.T) {
		repo := newRepo(t)

		assert.True(t, dnderr.IsInvalidArgument(repo.Create(ctx, nil)))
		assert.True(t, dnderr.IsInvalidArgument(repo.Create(ctx, newRecord("", "アリス"))))
	})
}
