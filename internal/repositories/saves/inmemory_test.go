package saves_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/KirkDiggler/dungeon-saves/internal/repositories/saves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInMemory(t *testing.T) saves.Repository {
	return saves.NewInMemoryRepository(&saves.Config{
		UUIDGenerator: &sequenceIDs{},
		TimeProvider:  newSteppingClock(),
	})
}

func TestInMemoryRepository_Contract(t *testing.T) {
	runRepositoryContract(t, newInMemory)
}

func TestInMemoryRepository_DefaultsToRandomIDs(t *testing.T) {
	repo := saves.NewInMemoryRepository(nil)
	record := newRecord("user-1", "char-1")

	require.NoError(t, repo.Create(context.Background(), record))
	assert.Len(t, record.ID, 36)
}

func TestInMemoryRepository_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	repo := newInMemory(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := newRecord("user-1", fmt.Sprintf("char-%d", i))
			assert.NoError(t, repo.Create(ctx, record))
			record.SaveState = record.SaveState.WithMessage("tick", 10)
			assert.NoError(t, repo.Update(ctx, record))
		}(i)
	}
	wg.Wait()

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
