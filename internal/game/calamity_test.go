package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calamity-games/party-backend/internal/cards"
)

func freshCalamity(stacking bool) *CalamityState {
	return &CalamityState{
		Direction: 1,
		Stacking:  stacking,
	}
}

func TestApplyOpeningCard(t *testing.T) {
	tests := []struct {
		name      string
		opening   cards.Card
		seats     int
		wantTurn  int
		wantDir   int
		wantStack int
	}{
		{"number sets color only", cards.Card{Kind: cards.Number, Color: cards.Red, Value: 5}, 4, 0, 1, 0},
		{"skip passes first seat", cards.Card{Kind: cards.Skip, Color: cards.Blue}, 4, 1, 1, 0},
		{"skip passes first seat heads-up", cards.Card{Kind: cards.Skip, Color: cards.Blue}, 2, 1, 1, 0},
		{"reverse flips direction", cards.Card{Kind: cards.Reverse, Color: cards.Green}, 4, 0, -1, 0},
		{"reverse acts as skip heads-up", cards.Card{Kind: cards.Reverse, Color: cards.Green}, 2, 1, -1, 0},
		{"draw two seeds the stack", cards.Card{Kind: cards.DrawTwo, Color: cards.Yellow}, 4, 0, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := freshCalamity(true)
			applyOpeningCard(c, tt.opening, tt.seats)
			assert.Equal(t, tt.wantTurn, c.Turn)
			assert.Equal(t, tt.wantDir, c.Direction)
			assert.Equal(t, tt.wantStack, c.DrawStack)
			assert.Equal(t, tt.opening.Color, c.ActiveColor)
		})
	}
}

func TestApplyOpeningWildAssignsColor(t *testing.T) {
	c := freshCalamity(true)
	applyOpeningCard(c, cards.Card{Kind: cards.Wild}, 4)
	assert.True(t, cards.ValidColor(c.ActiveColor), "wild opening must land on a real color")
	assert.Zero(t, c.Turn)
	assert.Zero(t, c.DrawStack)
}

// With two seats, skip and reverse openings must hand the first move to
// the same player.
func TestOpeningSkipAndReverseAgreeHeadsUp(t *testing.T) {
	skip := freshCalamity(true)
	applyOpeningCard(skip, cards.Card{Kind: cards.Skip, Color: cards.Red}, 2)

	rev := freshCalamity(true)
	applyOpeningCard(rev, cards.Card{Kind: cards.Reverse, Color: cards.Red}, 2)

	assert.Equal(t, skip.Turn, rev.Turn)
}
