package saves_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
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

// sequenceIDs hands out save-1, save-2, ...
type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("save-%d", g.n)
}

func testCharacter(id, name string) character.Character {
	return character.Character{
		ID:        id,
		Name:      name,
		Level:     1,
		ExpToNext: 100,
		HP:        50,
		MaxHP:     50,
		Attack:    10,
		Defense:   5,
	}
}

func newRecord(userID, characterID string) *saves.SaveRecord {
	return &saves.SaveRecord{
		UserID:    userID,
		SaveState: save.NewDefault(testCharacter(characterID, "アリス")),
	}
}

// runRepositoryContract checks the behavior every Repository implementation shares
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) saves.Repository) {
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "char-1")

		require.NoError(t, repo.Create(ctx, record))
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.CreatedAt.IsZero())
		assert.Equal(t, record.CreatedAt, record.UpdatedAt)

		got, err := repo.Get(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)

		byCharacter, err := repo.GetByCharacter(ctx, "user-1", "char-1")
		require.NoError(t, err)
		assert.Equal(t, record, byCharacter)
	})

	t.Run("returned records are detached", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "char-1")
		require.NoError(t, repo.Create(ctx, record))

		got, err := repo.Get(ctx, record.ID)
		require.NoError(t, err)
		got.Potions = 99
		got.Messages[0] = "changed"

		again, err := repo.Get(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, again.Potions)
		assert.Equal(t, "アリスがダンジョンに入りました！", again.Messages[0])
	})

	t.Run("one save per user and character", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newRecord("user-1", "char-1")))

		err := repo.Create(ctx, newRecord("user-1", "char-1"))
		require.Error(t, err)
		assert.True(t, dnderr.IsAlreadyExists(err))

		require.NoError(t, repo.Create(ctx, newRecord("user-2", "char-1")))
	})

	t.Run("missing saves", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByCharacter(ctx, "user-1", "char-1")
		assert.NoError(t, err)
		assert.Nil(t, got)

		_, err = repo.Get(ctx, "nope")
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("update replaces the snapshot", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "char-1")
		require.NoError(t, repo.Create(ctx, record))
		createdAt := record.CreatedAt

		record.SaveState = record.SaveState.
			WithPlayerPosition(1, 2, 6).
			WithMessage("moved", 10)
		require.NoError(t, repo.Update(ctx, record))
		assert.Equal(t, createdAt, record.CreatedAt)
		assert.True(t, record.UpdatedAt.After(createdAt))

		got, err := repo.GetByCharacter(ctx, "user-1", "char-1")
		require.NoError(t, err)
		assert.Equal(t, record, got)
		assert.Equal(t, 2, got.PlayerX)
	})

	t.Run("update requires an owned record", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "char-1")
		require.NoError(t, repo.Create(ctx, record))

		stranger := record.Clone()
		stranger.UserID = "user-2"
		assert.True(t, dnderr.IsNotFound(repo.Update(ctx, stranger)))

		missing := newRecord("user-1", "char-1")
		missing.ID = "nope"
		assert.True(t, dnderr.IsNotFound(repo.Update(ctx, missing)))
	})

	t.Run("update cannot move onto a taken character", func(t *testing.T) {
		repo := newRepo(t)
		first := newRecord("user-1", "char-1")
		second := newRecord("user-1", "char-2")
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		moved := second.Clone()
		moved.SaveState = save.NewDefault(testCharacter("char-1", "アリス"))
		err := repo.Update(ctx, moved)
		require.Error(t, err)
		assert.True(t, dnderr.IsAlreadyExists(err))

		got, err := repo.GetByCharacter(ctx, "user-1", "char-1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID, "the index still points at the original save")

		free := second.Clone()
		free.SaveState = save.NewDefault(testCharacter("char-3", "アリス"))
		require.NoError(t, repo.Update(ctx, free))
		gone, err := repo.GetByCharacter(ctx, "user-1", "char-2")
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		record := newRecord("user-1", "char-1")
		require.NoError(t, repo.Create(ctx, record))

		assert.True(t, dnderr.IsNotFound(repo.Delete(ctx, "user-2", record.ID)))
		require.NoError(t, repo.Delete(ctx, "user-1", record.ID))

		got, err := repo.GetByCharacter(ctx, "user-1", "char-1")
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.True(t, dnderr.IsNotFound(repo.Delete(ctx, "user-1", record.ID)))

		require.NoError(t, repo.Create(ctx, newRecord("user-1", "char-1")), "slot is free again")
	})

	t.Run("list by user", func(t *testing.T) {
		repo := newRepo(t)
		first := newRecord("user-1", "char-1")
		second := newRecord("user-1", "char-2")
		other := newRecord("user-2", "char-3")
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, other))

		list, err := repo.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)

		none, err := repo.ListByUser(ctx, "user-9")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("rejects incomplete records", func(t *testing.T) {
		repo := newRepo(t)

		assert.True(t, dnderr.IsInvalidArgument(repo.Create(ctx, nil)))
		assert.True(t, dnderr.IsInvalidArgument(repo.Create(ctx, &saves.SaveRecord{UserID: "user-1"})))
		assert.True(t, dnderr.IsInvalidArgument(repo.Create(ctx, newRecord("", "char-1"))))
	})
}
