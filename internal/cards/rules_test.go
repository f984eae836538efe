package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func card(color Color, kind Kind, value int) Card {
	return Card{ID: "t", Color: color, Kind: kind, Value: value}
}

func TestPlayable(t *testing.T) {
	redFive := card(Red, Number, 5)
	blueFive := card(Blue, Number, 5)
	redSkip := card(Red, Skip, 0)
	blueSkip := card(Blue, Skip, 0)
	drawTwo := card(Blue, DrawTwo, 0)
	wild := card("", Wild, 0)
	wildFour := card("", WildDrawFour, 0)

	for _, tc := range []struct {
		name      string
		candidate Card
		top       Card
		active    Color
		stack     int
		stacking  bool
		want      bool
	}{
		{"same color", card(Red, Number, 9), redFive, Red, 0, true, true},
		{"same value across colors", blueFive, redFive, Red, 0, true, true},
		{"same kind across colors", blueSkip, redSkip, Red, 0, true, true},
		{"wild on anything", wild, redFive, Red, 0, true, true},
		{"wild draw four on anything", wildFour, redFive, Red, 0, true, true},
		{"no match", card(Green, Number, 2), redFive, Red, 0, true, false},
		{"active color from wild, not top color", card(Green, Number, 2), wild, Green, 0, true, true},
		{"number kind needs number top for value match", blueFive, redSkip, Red, 0, true, false},

		{"stack blocks everything without stacking", drawTwo, card(Red, DrawTwo, 0), Red, 2, false, false},
		{"stack blocks wilds too", wild, card(Red, DrawTwo, 0), Red, 2, true, false},
		{"stack allows same draw type", drawTwo, card(Red, DrawTwo, 0), Red, 2, true, true},
		{"stack rejects other draw type", drawTwo, wildFour, Red, 4, true, false},
		{"stack allows wild four on wild four", wildFour, wildFour, Red, 4, true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Playable(tc.candidate, tc.top, tc.active, tc.stack, tc.stacking)
			assert.Equal(t, tc.want, got)
			// Purity: asking again changes nothing.
			assert.Equal(t, got, Playable(tc.candidate, tc.top, tc.active, tc.stack, tc.stacking))
		})
	}
}

func TestTurnStepsTwoPlayerReverseActsAsSkip(t *testing.T) {
	assert.Equal(t, TurnSteps(Skip, 2), TurnSteps(Reverse, 2))
	assert.Equal(t, 2, TurnSteps(Reverse, 2))
	assert.Equal(t, 1, TurnSteps(Reverse, 3))
	assert.Equal(t, 2, TurnSteps(Skip, 5))
	assert.Equal(t, 1, TurnSteps(Number, 5))
}

func TestAdvanceWrapsBothDirections(t *testing.T) {
	assert.Equal(t, 0, Advance(3, 1, 1, 4))
	assert.Equal(t, 3, Advance(0, -1, 1, 4))
	assert.Equal(t, 2, Advance(0, -1, 2, 4))
	assert.Equal(t, 1, Advance(3, 1, 2, 4))
	assert.Equal(t, 0, Advance(0, 1, 4, 4))
}

func TestStackDelta(t *testing.T) {
	assert.Equal(t, 2, StackDelta(DrawTwo))
	assert.Equal(t, 4, StackDelta(WildDrawFour))
	assert.Equal(t, 0, StackDelta(Skip))
	assert.Equal(t, 0, StackDelta(Number))
}

func TestHandValue(t *testing.T) {
	hand := []Card{
		card(Red, Number, 7),
		card(Blue, Number, 0),
		card(Green, Skip, 0),
		card(Yellow, DrawTwo, 0),
		card("", Wild, 0),
		card("", WildDrawFour, 0),
	}
	assert.Equal(t, 7+0+20+20+50+50, HandValue(hand))
	assert.Zero(t, HandValue(nil))
}
