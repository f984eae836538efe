// Package cards implements the Card Calamity deck model and play rules.
// Everything here is pure state plus arithmetic; the game package owns
// timers, turns and broadcasting.
package cards

import "fmt"

type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// Colors lists the four playable colors in a stable order.
var Colors = [...]Color{Red, Blue, Green, Yellow}

func ValidColor(c Color) bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

type Kind string

const (
	Number       Kind = "number"
	Skip         Kind = "skip"
	Reverse      Kind = "reverse"
	DrawTwo      Kind = "draw2"
	Wild         Kind = "wild"
	WildDrawFour Kind = "wild4"
)

// Card is a single card. Color is empty for wild cards; Value is only
// meaningful for number cards.
type Card struct {
	ID    string `json:"id"`
	Color Color  `json:"color,omitempty"`
	Kind  Kind   `json:"type"`
	Value int    `json:"value"`
}

func (c Card) IsWild() bool {
	return c.Kind == Wild || c.Kind == WildDrawFour
}

// Points is the card's value when it is left in a losing hand:
// face value for numbers, 20 for colored action cards, 50 for wilds.
func (c Card) Points() int {
	switch c.Kind {
	case Number:
		return c.Value
	case Skip, Reverse, DrawTwo:
		return 20
	default:
		return 50
	}
}

func (c Card) String() string {
	switch c.Kind {
	case Number:
		return fmt.Sprintf("%s %d", c.Color, c.Value)
	case Wild, WildDrawFour:
		return string(c.Kind)
	default:
		return fmt.Sprintf("%s %s", c.Color, c.Kind)
	}
}

// HandValue sums the point values of every card in a hand.
func HandValue(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Points()
	}
	return total
}
