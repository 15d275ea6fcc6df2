package mustache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget(t *testing.T) {
	b := newBudget(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.spend(), "token %d", i)
	}
	assert.Equal(t, uint64(3), b.used())

	err := b.spend()
	assert.ErrorIs(t, err, NewError(ErrOutOfFuel, ""))
	assert.Contains(t, err.Error(), "more than 3 tokens")
	assert.Equal(t, uint64(3), b.used(), "a refused token is not charged")
}

func TestNilBudget(t *testing.T) {
	var b *budget
	for i := 0; i < 1000; i++ {
		require.NoError(t, b.spend())
	}
	assert.Zero(t, b.used())
}
