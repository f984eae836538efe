package game

import (
	"strings"

	"github.com/valyala/fastrand"
)

// Dubiously Patented: everyone starts with 1000 money (the score).
// Players submit everyday problems, receive three of each other's
// problems, pick one, draw an invention for it, then pitch in random
// order while the room invests. Money transfers immediately; the richest
// player wins.

const (
	patentStartMoney  = 1000
	patentMaxProblems = 3
	patentChoices     = 3
)

func (o *Orchestrator) startPatent(room *Room) {
	for _, p := range room.Players {
		p.Score = patentStartMoney
	}
	room.Patent = &PatentState{
		ProblemsByPlayer: make(map[string][]string),
		ChoicesByPlayer:  make(map[string][]string),
		SelectedByPlayer: make(map[string]string),
		Drawings:         make(map[string]string),
		Titles:           make(map[string]string),
		Investments:      make(map[string]int),
		InvestedBy:       make(map[string]bool),
	}
	room.Phase = PhaseDPProblemSubmit
	o.broadcastState(room)
}

func (o *Orchestrator) handlePatentAction(room *Room, p *Player, connID string, act ActionPayload) {
	switch act.Action {
	case ActSubmitProbs:
		o.handleSubmitProblems(room, p, act.Problems)
	case ActSelectProblem:
		o.handleSelectProblem(room, p, act.Problem)
	case ActSubmitDrawing:
		o.handleSubmitDrawing(room, p, act.Drawing, act.Title)
	case ActInvest:
		o.handleInvest(room, p, connID, act.Amount)
	}
}

func (o *Orchestrator) handleSubmitProblems(room *Room, p *Player, problems []string) {
	pt := room.Patent
	if room.Phase != PhaseDPProblemSubmit || pt == nil {
		return
	}
	if _, done := pt.ProblemsByPlayer[p.ID]; done {
		return
	}
	kept := make([]string, 0, patentMaxProblems)
	for _, raw := range problems {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		kept = append(kept, text)
		if len(kept) == patentMaxProblems {
			break
		}
	}
	if len(kept) == 0 {
		return
	}
	pt.ProblemsByPlayer[p.ID] = kept
	for _, text := range kept {
		pt.AllProblems = append(pt.AllProblems, Submission{PlayerID: p.ID, Text: text})
	}
	o.broadcastState(room)
	o.checkPatentProgress(room)
}

func (o *Orchestrator) handleSelectProblem(room *Room, p *Player, problem string) {
	pt := room.Patent
	if room.Phase != PhaseDPPick || pt == nil {
		return
	}
	if _, done := pt.SelectedByPlayer[p.ID]; done {
		return
	}
	valid := false
	for _, c := range pt.ChoicesByPlayer[p.ID] {
		if c == problem {
			valid = true
			break
		}
	}
	if !valid {
		return
	}
	pt.SelectedByPlayer[p.ID] = problem
	o.broadcastState(room)
	o.checkPatentProgress(room)
}

func (o *Orchestrator) handleSubmitDrawing(room *Room, p *Player, drawing, title string) {
	pt := room.Patent
	if room.Phase != PhaseDPDrawing || pt == nil {
		return
	}
	if _, done := pt.Drawings[p.ID]; done {
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	pt.Drawings[p.ID] = drawing
	pt.Titles[p.ID] = title
	o.broadcastState(room)
	o.checkPatentProgress(room)
}

func (o *Orchestrator) handleInvest(room *Room, p *Player, connID string, amount int) {
	pt := room.Patent
	if room.Phase != PhaseDPInvesting || pt == nil {
		return
	}
	presenter := o.currentPresenter(room)
	if presenter == nil || presenter.ID == p.ID {
		return
	}
	if pt.InvestedBy[p.ID] {
		return
	}
	if amount <= 0 {
		o.sendError(connID, "Invalid investment")
		return
	}
	if amount > p.Score {
		amount = p.Score
	}
	pt.InvestedBy[p.ID] = true
	pt.Investments[presenter.ID] += amount
	p.Score -= amount
	presenter.Score += amount
	o.broadcastState(room)
	o.checkPatentProgress(room)
}

func (o *Orchestrator) currentPresenter(room *Room) *Player {
	pt := room.Patent
	if pt == nil || pt.Presenter >= len(pt.PresentOrder) {
		return nil
	}
	return room.PlayerByID(pt.PresentOrder[pt.Presenter])
}

// checkPatentProgress advances whichever gate the current phase is
// waiting on, counting only active players.
func (o *Orchestrator) checkPatentProgress(room *Room) {
	pt := room.Patent
	if pt == nil {
		return
	}
	switch room.Phase {
	case PhaseDPProblemSubmit:
		for _, p := range room.ActivePlayers() {
			if _, done := pt.ProblemsByPlayer[p.ID]; !done {
				return
			}
		}
		o.startPatentPick(room)
	case PhaseDPPick:
		for _, p := range room.ActivePlayers() {
			if _, done := pt.SelectedByPlayer[p.ID]; !done {
				return
			}
		}
		room.Phase = PhaseDPDrawing
		o.broadcastState(room)
		o.scheduleBots(room)
	case PhaseDPDrawing:
		for _, p := range room.ActivePlayers() {
			if _, done := pt.Drawings[p.ID]; !done {
				return
			}
		}
		o.startPatentPresentations(room)
	case PhaseDPInvesting:
		presenter := o.currentPresenter(room)
		if presenter == nil {
			return
		}
		for _, p := range room.ActivePlayers() {
			if p.ID == presenter.ID {
				continue
			}
			if !pt.InvestedBy[p.ID] {
				return
			}
		}
		o.nextPresenter(room)
	}
}

// startPatentPick deals each player three problems authored by someone
// else, padded from the canned pool when the room is small.
func (o *Orchestrator) startPatentPick(room *Room) {
	pt := room.Patent
	for _, p := range room.ActivePlayers() {
		others := make([]string, 0, len(pt.AllProblems))
		for _, sub := range pt.AllProblems {
			if sub.PlayerID != p.ID {
				others = append(others, sub.Text)
			}
		}
		choices := pickDistinct(others, patentChoices)
		for len(choices) < patentChoices {
			choices = append(choices, BotProblems[fastrand.Uint32n(uint32(len(BotProblems)))])
		}
		pt.ChoicesByPlayer[p.ID] = choices
		o.sendToPlayer(room, p.ID, EvNewPrompt, map[string]any{"problems": choices})
	}
	room.Phase = PhaseDPPick
	o.broadcastState(room)
	o.scheduleBots(room)
}

func pickDistinct(pool []string, n int) []string {
	out := make([]string, 0, n)
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	for len(out) < n && len(idx) > 0 {
		j := int(fastrand.Uint32n(uint32(len(idx))))
		out = append(out, pool[idx[j]])
		idx = append(idx[:j], idx[j+1:]...)
	}
	return out
}

func (o *Orchestrator) startPatentPresentations(room *Room) {
	pt := room.Patent
	order := make([]string, 0, len(pt.Drawings))
	for _, p := range room.ActivePlayers() {
		if _, ok := pt.Drawings[p.ID]; ok {
			order = append(order, p.ID)
		}
	}
	// Random pitch order.
	for i := len(order) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		order[i], order[j] = order[j], order[i]
	}
	pt.PresentOrder = order
	pt.Presenter = 0
	o.startPresenting(room)
}

func (o *Orchestrator) startPresenting(room *Room) {
	pt := room.Patent
	presenter := o.currentPresenter(room)
	if presenter == nil {
		o.finishPatent(room)
		return
	}
	room.Phase = PhaseDPPresenting
	pt.InvestedBy = make(map[string]bool)
	o.broadcast(room, EvStartPresent, map[string]any{
		"presenterId": presenter.ID,
		"title":       pt.Titles[presenter.ID],
		"drawing":     pt.Drawings[presenter.ID],
	})
	o.broadcastState(room)
	o.StartTimer(room.Code, TimerPatent, o.cfg.PresentTime, func() {
		o.startInvesting(room)
	})
	o.scheduleBots(room)
}

func (o *Orchestrator) startInvesting(room *Room) {
	presenter := o.currentPresenter(room)
	if presenter == nil {
		o.finishPatent(room)
		return
	}
	room.Phase = PhaseDPInvesting
	o.broadcast(room, EvStartInvest, map[string]any{"presenterId": presenter.ID})
	o.broadcastState(room)
	o.StartTimer(room.Code, TimerPatent, o.cfg.InvestTime, func() {
		o.nextPresenter(room)
	})
	o.scheduleBots(room)
}

func (o *Orchestrator) nextPresenter(room *Room) {
	pt := room.Patent
	o.CancelTimer(room.Code, TimerPatent)
	pt.Presenter++
	if pt.Presenter < len(pt.PresentOrder) {
		o.startPresenting(room)
		return
	}
	o.finishPatent(room)
}

func (o *Orchestrator) finishPatent(room *Room) {
	o.CancelTimer(room.Code, TimerPatent)
	room.Phase = PhaseDPResults
	o.broadcast(room, EvRoundResults, map[string]any{
		"rankings":    Rankings(room, false),
		"investments": room.Patent.Investments,
	})
	o.broadcastState(room)
}
