package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDistinctAndFromPool(t *testing.T) {
	inPool := make(map[string]bool, len(Pool))
	for _, w := range Pool {
		inPool[w] = true
	}
	for i := 0; i < 20; i++ {
		opts := Options(3)
		assert.Len(t, opts, 3)
		seen := make(map[string]bool)
		for _, w := range opts {
			assert.True(t, inPool[w], "unknown word %q", w)
			assert.False(t, seen[w], "duplicate option %q", w)
			seen[w] = true
		}
	}
}

func TestHint(t *testing.T) {
	assert.Equal(t, "_ _ _", Hint("cat", nil))
	assert.Equal(t, "C _ _", Hint("cat", []int{0}))
	assert.Equal(t, "_ _ _   _ _ _ _", Hint("ice cold", nil))
	assert.Equal(t, "I _ _   _ O _ _", Hint("ice cold", []int{0, 5}))
}

func TestIsCorrect(t *testing.T) {
	assert.True(t, IsCorrect("Cat", "cat"))
	assert.True(t, IsCorrect("  cat  ", "cat"))
	assert.False(t, IsCorrect("cats", "cat"))
}

func TestIsClose(t *testing.T) {
	// Exact matches are correct, not close.
	assert.False(t, IsClose("cat", "cat"))
	// Short words allow one edit.
	assert.True(t, IsClose("car", "cat"))
	assert.True(t, IsClose("cats", "cat"))
	assert.False(t, IsClose("cow", "cat"))
	// Longer words allow two.
	assert.True(t, IsClose("elefant", "elephant"))
	assert.True(t, IsClose("girafe", "giraffe"))
	assert.False(t, IsClose("parrot", "penguin"))
}
