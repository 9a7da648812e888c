package errors_test

import (
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.OutOfBoundsf("cell (%d,%d) is outside floor %d", 9, 0, 1).
		WithMeta("floor", 1)

	wrapped := dnderr.Wrap(base, "lookup failed")

	assert.Equal(t, dnderr.CodeOutOfBounds, wrapped.Code)
	assert.True(t, dnderr.IsOutOfBounds(wrapped))
	assert.Equal(t, 1, dnderr.GetMeta(wrapped)["floor"])
	assert.Equal(t, "lookup failed: cell (9,0) is outside floor 1", wrapped.Error())
}

func TestWrap_UnknownForPlainErrors(t *testing.T) {
	wrapped := dnderr.Wrap(fmt.Errorf("boom"), "context")

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestWrapWithCode(t *testing.T) {
	wrapped := dnderr.WrapWithCode(fmt.Errorf("redis down"), dnderr.CodeInternal, "failed to store save")

	assert.Equal(t, dnderr.CodeInternal, wrapped.Code)
	assert.ErrorContains(t, wrapped, "redis down")
}

func TestCodeCheckers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "not found", err: dnderr.NotFound("save"), check: dnderr.IsNotFound},
		{name: "invalid argument", err: dnderr.InvalidArgument("blocked"), check: dnderr.IsInvalidArgument},
		{name: "already exists", err: dnderr.AlreadyExistsf("save %s", "x"), check: dnderr.IsAlreadyExists},
		{name: "unauthenticated", err: dnderr.Unauthenticated("login"), check: dnderr.IsUnauthenticated},
		{name: "validation", err: dnderr.Validation("bad"), check: dnderr.IsValidation},
		{name: "insufficient", err: dnderr.InsufficientResourcef("need %d gold", 5), check: dnderr.IsInsufficientResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("outer: %w", tt.err)))
		})
	}
}
