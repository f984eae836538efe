package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDecks(t *testing.T) {
	assert.Equal(t, 1, SourceDecks(2))
	assert.Equal(t, 2, SourceDecks(3))
	assert.Equal(t, 2, SourceDecks(4))
	assert.Equal(t, 3, SourceDecks(5))
	assert.Equal(t, 4, SourceDecks(8))
	// Degenerate player counts still build a playable deck.
	assert.Equal(t, 1, SourceDecks(1))
	assert.Equal(t, 1, SourceDecks(0))
}

func TestDeckComposition(t *testing.T) {
	for _, tc := range []struct {
		players int
		total   int
	}{
		{2, 108},
		{4, 216},
		{5, 324},
	} {
		d := New(tc.players, rand.New(rand.NewSource(1)))
		require.Equal(t, tc.total, d.DrawSize(), "players=%d", tc.players)

		n := SourceDecks(tc.players)
		kinds := make(map[Kind]int)
		zeroes := 0
		ids := make(map[string]bool)
		for _, c := range d.draw {
			kinds[c.Kind]++
			if c.Kind == Number && c.Value == 0 {
				zeroes++
			}
			assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
			ids[c.ID] = true
		}
		assert.Equal(t, 76*n, kinds[Number])
		assert.Equal(t, 8*n, kinds[Skip])
		assert.Equal(t, 8*n, kinds[Reverse])
		assert.Equal(t, 8*n, kinds[DrawTwo])
		assert.Equal(t, 4*n, kinds[Wild])
		assert.Equal(t, 4*n, kinds[WildDrawFour])
		assert.Equal(t, 4*n, zeroes)
	}
}

// Cards are conserved across draws, discards and recycling: nothing is
// created or destroyed over a full cycle of the pile.
func TestDeckConservation(t *testing.T) {
	d := New(2, rand.New(rand.NewSource(7)))

	_, ok := d.Flip()
	require.True(t, ok)

	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		d.Discard(c)
		if d.DrawSize() == 0 {
			break
		}
	}
	require.Equal(t, 108, d.DrawSize()+d.DiscardSize())

	// The empty draw pile refills from the discard pile minus its top.
	top, _ := d.Top()
	c, ok := d.Draw()
	require.True(t, ok)
	assert.NotEqual(t, top.ID, c.ID)
	newTop, _ := d.Top()
	assert.Equal(t, top.ID, newTop.ID, "recycling must keep the active card")
	assert.Equal(t, 108, d.DrawSize()+d.DiscardSize()+1)
}

func TestFlipNeverOpensWithWildDrawFour(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		d := New(2, rand.New(rand.NewSource(seed)))
		c, ok := d.Flip()
		require.True(t, ok)
		assert.NotEqual(t, WildDrawFour, c.Kind, "seed=%d", seed)
	}
}

func TestDrawNShortWhenExhausted(t *testing.T) {
	d := New(2, rand.New(rand.NewSource(3)))
	all := d.DrawN(200)
	assert.Len(t, all, 108)
	assert.Empty(t, d.DrawN(2), "no discard pile to recycle from")
}
