package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	a, b := gen.New(), gen.New()

	assert.True(t, uuid.Valid(a))
	assert.True(t, uuid.Valid(b))
	assert.NotEqual(t, a, b)
	assert.False(t, uuid.Valid("save-1"))
}
