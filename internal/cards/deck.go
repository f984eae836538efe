package cards

import (
	"fmt"
	"math/rand"
)

// SourceDecks returns how many physical decks are mixed together for a
// game of n players: one deck per two players, rounded up.
func SourceDecks(n int) int {
	if n < 2 {
		n = 2
	}
	return (n + 1) / 2
}

// Deck holds the draw pile and the discard pile. The top of the discard
// pile is the active card. The rng is injected so games and tests can be
// made deterministic.
type Deck struct {
	draw    []Card
	discard []Card
	rng     *rand.Rand
}

// New builds and shuffles a fresh draw pile sized for playerCount players.
// One source deck contributes, per color: one 0, two of each 1-9, and two
// each of skip/reverse/draw-two; plus four wilds and four wild-draw-fours.
func New(playerCount int, rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	seq := 0
	add := func(color Color, kind Kind, value int) {
		seq++
		d.draw = append(d.draw, Card{
			ID:    fmt.Sprintf("c%d", seq),
			Color: color,
			Kind:  kind,
			Value: value,
		})
	}

	for deck := 0; deck < SourceDecks(playerCount); deck++ {
		for _, color := range Colors {
			add(color, Number, 0)
			for v := 1; v <= 9; v++ {
				add(color, Number, v)
				add(color, Number, v)
			}
			for _, kind := range []Kind{Skip, Reverse, DrawTwo} {
				add(color, kind, 0)
				add(color, kind, 0)
			}
		}
		for i := 0; i < 4; i++ {
			add("", Wild, 0)
			add("", WildDrawFour, 0)
		}
	}

	d.shuffle()
	return d
}

// shuffle is a Fisher-Yates permutation of the draw pile.
func (d *Deck) shuffle() {
	for i := len(d.draw) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	}
}

// Draw removes the top card of the draw pile. When the pile is empty the
// discard pile (minus its top card) is recycled first. Returns false only
// when no card remains anywhere to draw.
func (d *Deck) Draw() (Card, bool) {
	if len(d.draw) == 0 {
		d.recycle()
	}
	if len(d.draw) == 0 {
		return Card{}, false
	}
	c := d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return c, true
}

// DrawN draws up to n cards; fewer are returned when the game has run out
// of cards entirely.
func (d *Deck) DrawN(n int) []Card {
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, ok := d.Draw()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

// Discard places a card on top of the discard pile.
func (d *Deck) Discard(c Card) {
	d.discard = append(d.discard, c)
}

// Top returns the active card without removing it.
func (d *Deck) Top() (Card, bool) {
	if len(d.discard) == 0 {
		return Card{}, false
	}
	return d.discard[len(d.discard)-1], true
}

// Flip draws the opening card onto the discard pile. A wild-draw-four is
// returned to the pile and the pile reshuffled until something else comes
// up, per the table rules.
func (d *Deck) Flip() (Card, bool) {
	if !d.hasFlippable() {
		return Card{}, false
	}
	for {
		c, ok := d.Draw()
		if !ok {
			return Card{}, false
		}
		if c.Kind == WildDrawFour {
			d.draw = append(d.draw, c)
			d.shuffle()
			continue
		}
		d.Discard(c)
		return c, true
	}
}

func (d *Deck) hasFlippable() bool {
	for _, c := range d.draw {
		if c.Kind != WildDrawFour {
			return true
		}
	}
	return false
}

// DrawSize reports the number of cards left in the draw pile.
func (d *Deck) DrawSize() int { return len(d.draw) }

// DiscardSize reports the number of cards in the discard pile.
func (d *Deck) DiscardSize() int { return len(d.discard) }

func (d *Deck) recycle() {
	if len(d.discard) <= 1 {
		return
	}
	top := d.discard[len(d.discard)-1]
	d.draw = append(d.draw, d.discard[:len(d.discard)-1]...)
	d.discard = append(d.discard[:0], top)
	d.shuffle()
}
