package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateUniqueCodes(t *testing.T) {
	g := newRegistry(64, time.Minute)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := g.create("conn", "key")
		require.NoError(t, err)
		require.Len(t, room.Code, 4)
		for _, r := range room.Code {
			assert.True(t, r >= 'A' && r <= 'Z', "code %q", room.Code)
		}
		assert.False(t, seen[room.Code], "code %q issued twice", room.Code)
		seen[room.Code] = true
	}
}

func TestClosedCodeCooldown(t *testing.T) {
	g := newRegistry(16, 50*time.Millisecond)
	room, err := g.create("conn", "key")
	require.NoError(t, err)
	code := room.Code

	g.remove(code)
	assert.False(t, g.usable(code), "code must rest for the cooldown window")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, g.usable(code), "cooldown elapsed")
}

func TestLiveCodeNeverReissued(t *testing.T) {
	g := newRegistry(16, time.Minute)
	room, err := g.create("conn", "key")
	require.NoError(t, err)
	assert.False(t, g.usable(room.Code))
}

func TestRemoveUnknownCodeIsNoop(t *testing.T) {
	g := newRegistry(16, time.Minute)
	g.remove("ZZZZ")
	assert.True(t, g.usable("ZZZZ"))
}
