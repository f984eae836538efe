package game

import (
	"github.com/valyala/fastrand"

	"github.com/calamity-games/party-backend/internal/words"
)

// Scribble Scrabble drawing flow: one round per connected human. The
// drawer picks from three words, draws under a countdown while strokes
// are relayed to the room, and the round closes when time runs out or
// every eligible guesser has it.

const (
	scribbleWordChoices = 3
	drawerPointsPerHit  = 25
	minGuessPoints      = 10
)

func (o *Orchestrator) startScribble(room *Room) {
	order := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		if !p.Bot && p.Connected {
			order = append(order, p.ID)
		}
	}
	room.Scribble = &ScribbleState{
		Order:         order,
		CloseGuessers: make(map[string]bool),
		RoundScores:   make(map[string]int),
	}
	room.Round = 1
	room.TotalRounds = len(order)
	o.startScribbleRound(room)
}

func (o *Orchestrator) startScribbleRound(room *Room) {
	sc := room.Scribble
	sc.Turn = room.Round - 1
	// Skip drawers who left while waiting for their turn.
	for sc.Turn < len(sc.Order) {
		p := room.PlayerByID(sc.Order[sc.Turn])
		if p != nil && p.Connected {
			break
		}
		sc.Turn++
		room.Round++
	}
	if sc.Turn >= len(sc.Order) {
		o.finishScribble(room)
		return
	}
	sc.DrawerID = sc.Order[sc.Turn]
	sc.Word = ""
	sc.Options = words.Options(scribbleWordChoices)
	sc.CorrectGuessers = nil
	sc.CloseGuessers = make(map[string]bool)
	sc.RoundScores = make(map[string]int)
	room.Phase = PhaseSCWordPick
	o.sendToPlayer(room, sc.DrawerID, EvWordOptions, map[string]any{"words": sc.Options})
	o.broadcastState(room)
	o.StartTimer(room.Code, TimerWord, o.cfg.WordPickTime, func() {
		if room.Phase == PhaseSCWordPick && room.Scribble == sc {
			word := sc.Options[fastrand.Uint32n(uint32(len(sc.Options)))]
			o.startScribbleDrawing(room, word)
		}
	})
}

func (o *Orchestrator) handleScribbleAction(room *Room, p *Player, connID string, act ActionPayload) {
	switch act.Action {
	case ActPickWord:
		o.handlePickWord(room, p, act.Word)
	case ActStroke:
		o.handleStroke(room, p, act)
	case ActClearCanvas:
		o.handleClearCanvas(room, p)
	case ActSubmitGuess:
		o.handleGuess(room, p, act.Guess)
	}
}

func (o *Orchestrator) handlePickWord(room *Room, p *Player, word string) {
	sc := room.Scribble
	if room.Phase != PhaseSCWordPick || sc == nil || p.ID != sc.DrawerID {
		return
	}
	for _, opt := range sc.Options {
		if opt == word {
			o.startScribbleDrawing(room, word)
			return
		}
	}
}

func (o *Orchestrator) startScribbleDrawing(room *Room, word string) {
	sc := room.Scribble
	sc.Word = word
	sc.SecondsLeft = int(o.cfg.DrawTime.Seconds())
	room.Phase = PhaseSCDrawing
	o.broadcastState(room)
	o.StartCountdown(room.Code, TimerWord, o.cfg.DrawTime,
		func(secondsLeft int) {
			sc.SecondsLeft = secondsLeft
			o.broadcast(room, EvScribbleTimer, map[string]any{"secondsLeft": secondsLeft})
		},
		func() {
			o.endScribbleRound(room)
		})
	o.scheduleBots(room)
}

// handleStroke relays drawing data from the drawer to everyone else.
// Stroke payloads are opaque to the server.
func (o *Orchestrator) handleStroke(room *Room, p *Player, act ActionPayload) {
	sc := room.Scribble
	if room.Phase != PhaseSCDrawing || sc == nil || p.ID != sc.DrawerID {
		return
	}
	o.broadcastExcept(room, p.ID, EvStrokeData, map[string]any{"stroke": act.Stroke})
}

func (o *Orchestrator) handleClearCanvas(room *Room, p *Player) {
	sc := room.Scribble
	if room.Phase != PhaseSCDrawing || sc == nil || p.ID != sc.DrawerID {
		return
	}
	o.broadcastExcept(room, p.ID, EvClearCanvas, nil)
}

func scribbleHint(sc *ScribbleState) string {
	if sc.Word == "" {
		return ""
	}
	return words.Hint(sc.Word, nil)
}

// endScribbleRound closes the drawing, shows the round scores briefly
// and moves on to the next drawer.
func (o *Orchestrator) endScribbleRound(room *Room) {
	sc := room.Scribble
	if sc == nil || (room.Phase != PhaseSCDrawing && room.Phase != PhaseSCWordPick) {
		return
	}
	o.CancelTimer(room.Code, TimerWord)
	room.Phase = PhaseSCRoundResults
	o.broadcast(room, EvRoundEnd, map[string]any{
		"word":        sc.Word,
		"roundScores": sc.RoundScores,
		"round":       room.Round,
	})
	o.broadcastState(room)
	o.StartTimer(room.Code, TimerWord, o.cfg.RoundResultsTime, func() {
		o.nextScribbleRound(room)
	})
}

func (o *Orchestrator) nextScribbleRound(room *Room) {
	room.Round++
	if room.Round > room.TotalRounds {
		o.finishScribble(room)
		return
	}
	o.startScribbleRound(room)
}

func (o *Orchestrator) finishScribble(room *Room) {
	o.broadcast(room, EvScribbleEnd, map[string]any{
		"rankings": Rankings(room, false),
	})
	o.finishGame(room)
}
