package game

// Session-level actions: starting games, managing bots and moving
// between rounds. All of them are controller-only; anyone else's
// attempt is ignored per the error tiers.

const minActivePlayers = 2

func (o *Orchestrator) handleSessionAction(room *Room, connID string, act ActionPayload) {
	if !room.IsController(connID) {
		return
	}
	switch act.Action {
	case ActStartGame:
		o.handleStartGame(room)
	case ActAddBot:
		o.handleAddBot(room)
	case ActRemoveBot:
		o.handleRemoveBot(room)
	case ActNextRound:
		o.handleNextRound(room)
	case ActPlayAgain:
		o.handlePlayAgain(room)
	case ActNewLobby:
		o.handleNewLobby(room)
	}
}

func (o *Orchestrator) handleStartGame(room *Room) {
	if room.Phase != PhaseLobby {
		return
	}
	// Writing games play best with a full table, so they are topped up
	// with bots before the first round.
	if room.Variant == VariantGnarlyLibs || room.Variant == VariantPatented {
		for len(room.ActivePlayers()) < o.cfg.MinPartyPlayers && len(room.Players) < o.cfg.MaxRoomPlayers {
			o.addBot(room)
		}
	}
	if len(room.ActivePlayers()) < minActivePlayers {
		return
	}
	o.log.Infow("game starting", "room", room.Code, "game", room.Variant)
	room.ResetScores()
	o.startVariant(room)
}

func (o *Orchestrator) handleAddBot(room *Room) {
	if room.Phase != PhaseLobby {
		return
	}
	if len(room.Players) >= o.cfg.MaxRoomPlayers {
		return
	}
	o.addBot(room)
	o.broadcastState(room)
}

func (o *Orchestrator) addBot(room *Room) {
	room.Players = append(room.Players, &Player{
		ID:   newPlayerID(),
		Name: botName(room),
		Bot:  true,
	})
}

// handleRemoveBot drops the most recently added bot.
func (o *Orchestrator) handleRemoveBot(room *Room) {
	if room.Phase != PhaseLobby {
		return
	}
	for i := len(room.Players) - 1; i >= 0; i-- {
		if room.Players[i].Bot {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			o.broadcastState(room)
			return
		}
	}
}

func (o *Orchestrator) handleNextRound(room *Room) {
	if !room.Phase.Terminal() {
		return
	}
	o.advanceFromResults(room)
}

// handlePlayAgain restarts the same variant with scores wiped.
func (o *Orchestrator) handlePlayAgain(room *Room) {
	if !room.Phase.Terminal() {
		return
	}
	o.CancelRoomTimers(room.Code)
	room.ClearVariantState()
	room.ResetScores()
	o.log.Infow("game restarting", "room", room.Code, "game", room.Variant)
	o.startVariant(room)
}

// handleNewLobby abandons the running game and returns everyone to the
// lobby, keeping players, bots and the variant selection.
func (o *Orchestrator) handleNewLobby(room *Room) {
	if room.Phase == PhaseLobby {
		return
	}
	o.CancelRoomTimers(room.Code)
	room.ClearVariantState()
	room.Phase = PhaseLobby
	o.log.Infow("back to lobby", "room", room.Code)
	o.broadcastState(room)
}
