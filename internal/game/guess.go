package game

import (
	"strings"

	"github.com/calamity-games/party-backend/internal/words"
)

// Guess handling for Scribble Scrabble. Wrong guesses are relayed as
// chat; near misses earn the guesser a private nudge; a hit scores by
// remaining time and pays the drawer a fixed bounty.

func (o *Orchestrator) handleGuess(room *Room, p *Player, guess string) {
	sc := room.Scribble
	if room.Phase != PhaseSCDrawing || sc == nil {
		return
	}
	if p.ID == sc.DrawerID {
		return
	}
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return
	}
	if o.hasGuessedCorrectly(sc, p.ID) {
		return
	}

	if words.IsCorrect(guess, sc.Word) {
		o.scoreCorrectGuess(room, p)
		return
	}

	// Wrong guesses are chat for the whole room; the word never leaks
	// through this path since it was not matched.
	o.broadcast(room, EvGuessChat, map[string]any{
		"playerId": p.ID,
		"name":     p.Name,
		"guess":    guess,
	})
	if words.IsClose(guess, sc.Word) && !sc.CloseGuessers[p.ID] {
		sc.CloseGuessers[p.ID] = true
		o.sendToPlayer(room, p.ID, EvGuessChat, map[string]any{
			"message": "So close!",
			"close":   true,
		})
	}
}

func (o *Orchestrator) hasGuessedCorrectly(sc *ScribbleState, playerID string) bool {
	for _, id := range sc.CorrectGuessers {
		if id == playerID {
			return true
		}
	}
	return false
}

func (o *Orchestrator) scoreCorrectGuess(room *Room, p *Player) {
	sc := room.Scribble
	sc.CorrectGuessers = append(sc.CorrectGuessers, p.ID)

	points := sc.SecondsLeft
	if points < minGuessPoints {
		points = minGuessPoints
	}
	p.Score += points
	sc.RoundScores[p.ID] += points
	if drawer := room.PlayerByID(sc.DrawerID); drawer != nil {
		drawer.Score += drawerPointsPerHit
		sc.RoundScores[drawer.ID] += drawerPointsPerHit
	}

	o.broadcast(room, EvCorrectGuess, map[string]any{
		"playerId": p.ID,
		"name":     p.Name,
		"points":   points,
	})
	o.broadcastState(room)
	o.checkScribbleProgress(room)
}

// checkScribbleProgress ends the drawing early once every eligible
// guesser has the word. Eligible means active and not the drawer.
func (o *Orchestrator) checkScribbleProgress(room *Room) {
	sc := room.Scribble
	if sc == nil || room.Phase != PhaseSCDrawing {
		return
	}
	for _, p := range room.ActivePlayers() {
		if p.ID == sc.DrawerID {
			continue
		}
		if !o.hasGuessedCorrectly(sc, p.ID) {
			return
		}
	}
	o.endScribbleRound(room)
}
