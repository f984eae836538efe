package cards

// Playable decides whether a candidate card may legally be played on the
// active card. active is the color a wild assigned (or the top card's own
// color), stack is the accumulated forced-draw count, and stacking says
// whether same-type stacking of draw cards is allowed in this room.
//
// The predicate is pure: identical inputs always give identical results.
func Playable(candidate, top Card, active Color, stack int, stacking bool) bool {
	if stack > 0 {
		if !stacking {
			return false
		}
		// Only stacking the exact same draw type is allowed.
		return (top.Kind == DrawTwo || top.Kind == WildDrawFour) && candidate.Kind == top.Kind
	}
	if candidate.IsWild() {
		return true
	}
	if candidate.Color == active {
		return true
	}
	if candidate.Kind == Number {
		return top.Kind == Number && candidate.Value == top.Value
	}
	return candidate.Kind == top.Kind
}

// HasPlayable reports whether any card in hand passes Playable.
func HasPlayable(hand []Card, top Card, active Color, stack int, stacking bool) bool {
	for _, c := range hand {
		if Playable(c, top, active, stack, stacking) {
			return true
		}
	}
	return false
}

// StackDelta is how much a draw card adds to the pending draw stack.
func StackDelta(kind Kind) int {
	switch kind {
	case DrawTwo:
		return 2
	case WildDrawFour:
		return 4
	default:
		return 0
	}
}

// Advance moves an index around a ring of n seats, steps direction-steps
// at a time. dir must be +1 or -1.
func Advance(idx, dir, steps, n int) int {
	if n <= 0 {
		return 0
	}
	idx = (idx + dir*steps) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// TurnSteps returns how far the turn pointer moves after a card is
// played: skip always jumps a seat, and with exactly two players reverse
// behaves the same way.
func TurnSteps(kind Kind, playerCount int) int {
	switch kind {
	case Skip:
		return 2
	case Reverse:
		if playerCount == 2 {
			return 2
		}
		return 1
	default:
		return 1
	}
}
