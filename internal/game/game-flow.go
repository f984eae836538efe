package game

// Shared game flow: variant entry, round advancement out of results
// phases, and the terminal transition to END. Per-variant rules live in
// their own files; this one only routes between them.

func (o *Orchestrator) startVariant(room *Room) {
	switch room.Variant {
	case VariantGnarlyLibs:
		o.startLibs(room)
	case VariantPatented:
		o.startPatent(room)
	case VariantQuirkQuiz:
		o.startQuiz(room)
	case VariantScribble:
		o.startScribble(room)
	case VariantCalamity:
		o.startCalamity(room)
	}
	o.scheduleBots(room)
}

// advanceFromResults moves the room forward when the controller asks.
// Gnarly Libs cycles rounds; every other results phase leads to END.
func (o *Orchestrator) advanceFromResults(room *Room) {
	switch room.Phase {
	case PhaseGLResults:
		if room.Round < room.TotalRounds {
			room.Round++
			o.startLibsRound(room)
			o.scheduleBots(room)
			return
		}
		o.finishGame(room)
	case PhaseDPResults, PhaseQQResults, PhaseCCResults:
		o.finishGame(room)
	}
}

// finishGame lands the room in END and publishes the final standings.
// Quirk Quiz ranks ascending (fewest points wins); everything else
// descending.
func (o *Orchestrator) finishGame(room *Room) {
	o.CancelRoomTimers(room.Code)
	room.Phase = PhaseEnd
	ascending := room.Variant == VariantQuirkQuiz
	o.broadcast(room, EvGameOver, map[string]any{
		"rankings": Rankings(room, ascending),
	})
	o.log.Infow("game over", "room", room.Code, "game", room.Variant)
	o.broadcastState(room)
}

// onPlayerAttached replays private per-player material a rejoining or
// newly joined player would otherwise miss. The public snapshot has
// already been broadcast by the caller.
func (o *Orchestrator) onPlayerAttached(room *Room, p *Player) {
	switch {
	case room.Calamity != nil:
		if hand, ok := room.Calamity.Hands[p.ID]; ok {
			o.sendToPlayer(room, p.ID, EvCardHand, map[string]any{"cards": hand})
		}
	case room.Scribble != nil:
		sc := room.Scribble
		if room.Phase == PhaseSCWordPick && sc.DrawerID == p.ID {
			o.sendToPlayer(room, p.ID, EvWordOptions, map[string]any{"words": sc.Options})
		}
	case room.Patent != nil:
		pt := room.Patent
		if room.Phase == PhaseDPPick {
			if _, picked := pt.SelectedByPlayer[p.ID]; !picked {
				o.sendToPlayer(room, p.ID, EvNewPrompt, map[string]any{
					"problems": pt.ChoicesByPlayer[p.ID],
				})
			}
		}
	}
}

// onPlayerInactive re-checks completion conditions that count against
// the active player set, so a disconnect never wedges a phase waiting
// for someone who left.
func (o *Orchestrator) onPlayerInactive(room *Room, p *Player) {
	switch room.Phase {
	case PhaseGLPromptSubmit, PhaseGLAnswer, PhaseGLVoting:
		o.checkLibsProgress(room)
	case PhaseDPProblemSubmit, PhaseDPPick, PhaseDPDrawing, PhaseDPInvesting:
		o.checkPatentProgress(room)
	case PhaseQQQuestion:
		o.checkQuizProgress(room)
	case PhaseSCWordPick, PhaseSCDrawing:
		if room.Scribble != nil && room.Scribble.DrawerID == p.ID {
			o.endScribbleRound(room)
		} else {
			o.checkScribbleProgress(room)
		}
	}
}
