package game

import (
	"strings"

	"github.com/valyala/fastrand"
)

// Gnarly Libs: five rounds. Two contestants rotate through the active
// player list; everyone else submits prompt ideas, one is drawn, the
// contestants answer it and the audience votes. A vote is worth 100
// points to the answer's author.

const (
	libsTotalRounds   = 5
	libsPointsPerVote = 100
)

func (o *Orchestrator) startLibs(room *Room) {
	room.Round = 1
	room.TotalRounds = libsTotalRounds
	o.startLibsRound(room)
}

func (o *Orchestrator) startLibsRound(room *Room) {
	active := room.ActivePlayers()
	n := len(active)
	room.Libs = &LibsState{
		ContestantIDs: []string{
			active[(room.Round-1)%n].ID,
			active[room.Round%n].ID,
		},
		Votes:   make(map[int]int),
		VotedBy: make(map[string]bool),
	}
	room.Phase = PhaseGLPromptSubmit
	o.broadcastState(room)
	// A two-player table has no audience at all; the prompt then comes
	// straight from the canned pool.
	o.checkLibsProgress(room)
}

func (o *Orchestrator) handleLibsAction(room *Room, p *Player, connID string, act ActionPayload) {
	switch act.Action {
	case ActSubmitPrompt:
		o.handleSubmitPrompt(room, p, act.Prompt)
	case ActSubmitAnswer:
		o.handleSubmitAnswer(room, p, act.Answer)
	case ActSubmitVote:
		o.handleSubmitVote(room, p, connID, act.VoteIndex)
	}
}

func (o *Orchestrator) libsIsContestant(room *Room, id string) bool {
	for _, c := range room.Libs.ContestantIDs {
		if c == id {
			return true
		}
	}
	return false
}

func hasSubmission(subs []Submission, playerID string) bool {
	for _, s := range subs {
		if s.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (o *Orchestrator) handleSubmitPrompt(room *Room, p *Player, text string) {
	l := room.Libs
	if room.Phase != PhaseGLPromptSubmit || l == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" || o.libsIsContestant(room, p.ID) || hasSubmission(l.PromptSubs, p.ID) {
		return
	}
	l.PromptSubs = append(l.PromptSubs, Submission{PlayerID: p.ID, Text: text})
	o.broadcastState(room)
	o.checkLibsProgress(room)
}

func (o *Orchestrator) handleSubmitAnswer(room *Room, p *Player, text string) {
	l := room.Libs
	if room.Phase != PhaseGLAnswer || l == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" || !o.libsIsContestant(room, p.ID) || hasSubmission(l.Answers, p.ID) {
		return
	}
	l.Answers = append(l.Answers, Submission{PlayerID: p.ID, Text: text})
	o.broadcastState(room)
	o.checkLibsProgress(room)
}

func (o *Orchestrator) handleSubmitVote(room *Room, p *Player, connID string, voteIndex *int) {
	l := room.Libs
	if room.Phase != PhaseGLVoting || l == nil {
		return
	}
	if o.libsIsContestant(room, p.ID) {
		o.sendError(connID, "Contestants cannot vote")
		return
	}
	if l.VotedBy[p.ID] {
		return
	}
	if voteIndex == nil || *voteIndex < 0 || *voteIndex >= len(l.Answers) {
		o.sendError(connID, "Invalid vote")
		return
	}
	if l.Answers[*voteIndex].PlayerID == p.ID {
		o.sendError(connID, "You cannot vote for yourself")
		return
	}
	l.VotedBy[p.ID] = true
	l.Votes[*voteIndex]++
	o.broadcastState(room)
	o.checkLibsProgress(room)
}

// checkLibsProgress advances the round when the current phase's expected
// set of active players has all delivered. Re-run on disconnects so a
// leaver cannot stall the room.
func (o *Orchestrator) checkLibsProgress(room *Room) {
	l := room.Libs
	if l == nil {
		return
	}
	switch room.Phase {
	case PhaseGLPromptSubmit:
		// Bots submit through the scheduler like humans, so the whole
		// active audience is awaited.
		for _, p := range room.ActivePlayers() {
			if o.libsIsContestant(room, p.ID) {
				continue
			}
			if !hasSubmission(l.PromptSubs, p.ID) {
				return
			}
		}
		o.startLibsAnswerPhase(room)
	case PhaseGLAnswer:
		for _, id := range l.ContestantIDs {
			p := room.PlayerByID(id)
			if p == nil || !p.Active() {
				continue
			}
			if !hasSubmission(l.Answers, id) {
				return
			}
		}
		if len(l.Answers) == 0 {
			return
		}
		o.startLibsVoting(room)
	case PhaseGLVoting:
		for _, p := range room.ActivePlayers() {
			if o.libsIsContestant(room, p.ID) {
				continue
			}
			if !l.VotedBy[p.ID] {
				return
			}
		}
		o.finishLibsRound(room)
	}
}

// startLibsAnswerPhase draws the round's prompt from the audience
// submissions mixed with a slice of the canned pool.
func (o *Orchestrator) startLibsAnswerPhase(room *Room) {
	l := room.Libs
	candidates := make([]string, 0, len(l.PromptSubs)+10)
	for _, s := range l.PromptSubs {
		candidates = append(candidates, s.Text)
	}
	candidates = append(candidates, BotPrompts[:10]...)
	l.Prompt = candidates[fastrand.Uint32n(uint32(len(candidates)))]
	room.Phase = PhaseGLAnswer
	o.broadcast(room, EvNewPrompt, map[string]any{"prompt": l.Prompt})
	o.broadcastState(room)
	o.scheduleBots(room)
}

func (o *Orchestrator) startLibsVoting(room *Room) {
	l := room.Libs
	room.Phase = PhaseGLVoting
	texts := make([]string, len(l.Answers))
	for i, a := range l.Answers {
		texts[i] = a.Text
	}
	o.broadcast(room, EvStartVoting, map[string]any{
		"prompt":  l.Prompt,
		"answers": texts,
	})
	o.broadcastState(room)
	o.scheduleBots(room)
	o.checkLibsProgress(room)
}

func (o *Orchestrator) finishLibsRound(room *Room) {
	l := room.Libs
	room.Phase = PhaseGLResults
	voteCounts := make([]int, len(l.Answers))
	for i, a := range l.Answers {
		votes := l.Votes[i]
		voteCounts[i] = votes
		if p := room.PlayerByID(a.PlayerID); p != nil {
			p.Score += votes * libsPointsPerVote
		}
	}
	o.broadcast(room, EvRoundResults, map[string]any{
		"prompt":     l.Prompt,
		"answers":    l.Answers,
		"voteCounts": voteCounts,
		"round":      room.Round,
	})
	o.broadcastState(room)
}
