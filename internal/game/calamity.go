package game

import (
	"math/rand"
	"time"

	"github.com/valyala/fastrand"

	"github.com/calamity-games/party-backend/internal/cards"
)

// Card Calamity: a shedding card game on a merged multi-deck pile. The
// deck math and move legality live in internal/cards; this file binds
// them to the room loop, the turn timer and the private hand channel.

func (o *Orchestrator) startCalamity(room *Room) {
	active := room.ActivePlayers()
	order := make([]string, len(active))
	for i, p := range active {
		order[i] = p.ID
	}
	deck := cards.New(len(order), rand.New(rand.NewSource(time.Now().UnixNano())))

	c := &CalamityState{
		Deck:      deck,
		Hands:     make(map[string][]cards.Card, len(order)),
		TurnOrder: order,
		Direction: 1,
		Stacking:  room.CCStacking,
	}
	for _, id := range order {
		c.Hands[id] = deck.DrawN(7)
	}

	opening, _ := deck.Flip()
	applyOpeningCard(c, opening, len(order))

	room.Calamity = c
	room.Phase = PhaseCCPlaying
	for _, id := range order {
		o.sendHand(room, id)
	}
	o.broadcastState(room)
	o.startCardTurnTimer(room)
}

// applyOpeningCard settles the flipped card's side effects as if the
// dealer had played it: a wild gets a random color, a skip passes the
// first seat, a reverse flips direction and with two seats also acts as
// a skip, a draw-two seeds the stack.
func applyOpeningCard(c *CalamityState, opening cards.Card, seats int) {
	c.ActiveColor = opening.Color
	switch opening.Kind {
	case cards.Wild:
		c.ActiveColor = cards.Colors[fastrand.Uint32n(uint32(len(cards.Colors)))]
	case cards.Reverse:
		c.Direction = -1
		if seats == 2 {
			c.Turn = cards.Advance(c.Turn, c.Direction, 1, seats)
		}
	case cards.Skip:
		c.Turn = cards.Advance(c.Turn, c.Direction, 1, seats)
	case cards.DrawTwo:
		c.DrawStack = 2
	}
}

func (o *Orchestrator) handleCalamityAction(room *Room, p *Player, connID string, act ActionPayload) {
	switch act.Action {
	case ActPlayCard:
		o.handlePlayCard(room, p, connID, act.CardID)
	case ActDrawCard:
		o.handleDrawCard(room, p)
	case ActPickColor:
		o.handlePickColor(room, p, connID, cards.Color(act.Color))
	}
}

func (o *Orchestrator) sendHand(room *Room, playerID string) {
	c := room.Calamity
	if c == nil {
		return
	}
	o.sendToPlayer(room, playerID, EvCardHand, map[string]any{"cards": c.Hands[playerID]})
}

func (o *Orchestrator) handlePlayCard(room *Room, p *Player, connID, cardID string) {
	c := room.Calamity
	if room.Phase != PhaseCCPlaying || c == nil {
		return
	}
	if current := room.CurrentCardPlayer(); current == nil || current.ID != p.ID {
		return
	}

	hand := c.Hands[p.ID]
	idx := -1
	for i, card := range hand {
		if card.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.sendError(connID, "Invalid card")
		return
	}
	card := hand[idx]
	top, _ := c.Deck.Top()
	if !cards.Playable(card, top, c.ActiveColor, c.DrawStack, c.Stacking) {
		o.sendError(connID, "You can't play that card")
		return
	}

	c.Hands[p.ID] = append(hand[:idx], hand[idx+1:]...)
	c.Deck.Discard(card)
	c.DrawStack += cards.StackDelta(card.Kind)
	if !card.IsWild() {
		c.ActiveColor = card.Color
	}
	if card.Kind == cards.Reverse {
		c.Direction = -c.Direction
	}
	played := card
	c.LastAction = &CardAction{
		Type:       "play",
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Card:       &played,
	}
	o.sendHand(room, p.ID)

	if len(c.Hands[p.ID]) == 0 {
		o.finishCalamity(room, p)
		return
	}

	if card.IsWild() {
		// The turn holds until the player names a color.
		c.PendingWildID = p.ID
		room.Phase = PhaseCCPickColor
		o.CancelTimer(room.Code, TimerCard)
		o.broadcastState(room)
		o.StartTimer(room.Code, TimerCard, o.cfg.CardPickColorTime, func() {
			o.resolvePickColor(room, cards.Colors[fastrand.Uint32n(uint32(len(cards.Colors)))])
		})
		o.scheduleBots(room)
		return
	}

	o.advanceCardTurn(room, cards.TurnSteps(card.Kind, len(c.TurnOrder)))
}

// handleDrawCard drains a pending stack, or takes a single card when
// there is none. Either way the turn passes.
func (o *Orchestrator) handleDrawCard(room *Room, p *Player) {
	c := room.Calamity
	if room.Phase != PhaseCCPlaying || c == nil {
		return
	}
	if current := room.CurrentCardPlayer(); current == nil || current.ID != p.ID {
		return
	}

	count := 1
	if c.DrawStack > 0 {
		count = c.DrawStack
		c.DrawStack = 0
	}
	c.Hands[p.ID] = append(c.Hands[p.ID], c.Deck.DrawN(count)...)
	c.LastAction = &CardAction{
		Type:       "draw",
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Count:      count,
	}
	o.sendHand(room, p.ID)
	o.advanceCardTurn(room, 1)
}

func (o *Orchestrator) handlePickColor(room *Room, p *Player, connID string, color cards.Color) {
	c := room.Calamity
	if room.Phase != PhaseCCPickColor || c == nil || c.PendingWildID != p.ID {
		return
	}
	if !cards.ValidColor(color) {
		o.sendError(connID, "Invalid color")
		return
	}
	o.resolvePickColor(room, color)
}

func (o *Orchestrator) resolvePickColor(room *Room, color cards.Color) {
	c := room.Calamity
	if c == nil || room.Phase != PhaseCCPickColor {
		return
	}
	c.ActiveColor = color
	if c.LastAction != nil {
		c.LastAction.Color = color
	}
	c.PendingWildID = ""
	room.Phase = PhaseCCPlaying
	o.advanceCardTurn(room, 1)
}

// timeoutCardTurn punishes a stalled turn: the player takes the pending
// stack, or two cards, and play moves on.
func (o *Orchestrator) timeoutCardTurn(room *Room) {
	c := room.Calamity
	if c == nil || room.Phase != PhaseCCPlaying {
		return
	}
	p := room.CurrentCardPlayer()
	if p == nil {
		return
	}
	count := 2
	if c.DrawStack > 0 {
		count = c.DrawStack
		c.DrawStack = 0
	}
	c.Hands[p.ID] = append(c.Hands[p.ID], c.Deck.DrawN(count)...)
	c.LastAction = &CardAction{
		Type:       "timeout",
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Count:      count,
	}
	o.sendHand(room, p.ID)
	o.advanceCardTurn(room, 1)
}

func (o *Orchestrator) advanceCardTurn(room *Room, steps int) {
	c := room.Calamity
	c.Turn = cards.Advance(c.Turn, c.Direction, steps, len(c.TurnOrder))
	o.broadcastState(room)
	o.startCardTurnTimer(room)
	o.scheduleBots(room)
}

func (o *Orchestrator) startCardTurnTimer(room *Room) {
	c := room.Calamity
	c.SecondsLeft = int(o.cfg.CardTurnTime.Seconds())
	o.StartCountdown(room.Code, TimerCard, o.cfg.CardTurnTime,
		func(secondsLeft int) {
			c.SecondsLeft = secondsLeft
			o.broadcast(room, EvCardTimer, map[string]any{"secondsLeft": secondsLeft})
		},
		func() {
			o.timeoutCardTurn(room)
		})
}

// finishCalamity scores the finished game: the winner banks the value of
// every opponent's leftover hand, each opponent scores only their own.
func (o *Orchestrator) finishCalamity(room *Room, winner *Player) {
	c := room.Calamity
	o.CancelTimer(room.Code, TimerCard)
	c.WinnerID = winner.ID
	total := 0
	for id, hand := range c.Hands {
		if id == winner.ID {
			continue
		}
		value := cards.HandValue(hand)
		total += value
		if p := room.PlayerByID(id); p != nil {
			p.Score = value
		}
	}
	winner.Score = total
	room.Phase = PhaseCCResults
	o.broadcast(room, EvCardGameEnd, map[string]any{
		"winnerId": winner.ID,
		"rankings": Rankings(room, false),
	})
	o.broadcastState(room)
}
