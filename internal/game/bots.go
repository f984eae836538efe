package game

import (
	"time"

	"github.com/valyala/fastrand"

	"github.com/calamity-games/party-backend/internal/cards"
	"github.com/calamity-games/party-backend/internal/words"
)

// Bot scheduler. Each room carries a {running, pending} ticket so at
// most one simulation pass runs per room; a pass triggered while one is
// in flight just flags pending and the pass re-runs when it drains.
// The pass goroutine owns no room state: it round-trips through the
// loop to plan moves and submits them through the same handlers humans
// use, so every move is re-validated against the phase it lands in.

type botRun struct {
	running bool
	pending bool
}

type botPlan struct {
	playerID string
	act      ActionPayload
	delay    time.Duration
}

// scheduleBots nudges the room's bots. Loop context only.
func (o *Orchestrator) scheduleBots(room *Room) {
	t := o.bots[room.Code]
	if t == nil {
		t = &botRun{}
		o.bots[room.Code] = t
	}
	if t.running {
		t.pending = true
		return
	}
	t.running = true
	go o.runBots(room.Code)
}

func (o *Orchestrator) runBots(code string) {
	for {
		plans := o.collectBotPlans(code)
		for _, plan := range plans {
			time.Sleep(plan.delay)
			o.applyBotAction(code, plan.playerID, plan.act)
		}

		again := make(chan bool, 1)
		o.post(func() {
			t := o.bots[code]
			if t == nil {
				again <- false
				return
			}
			if t.pending {
				t.pending = false
				again <- true
				return
			}
			t.running = false
			again <- false
		})
		if !<-again {
			return
		}
	}
}

func (o *Orchestrator) collectBotPlans(code string) []botPlan {
	out := make(chan []botPlan, 1)
	o.post(func() {
		room := o.reg.get(code)
		if room == nil {
			out <- nil
			return
		}
		out <- o.planBotMoves(room)
	})
	return <-out
}

func (o *Orchestrator) applyBotAction(code, playerID string, act ActionPayload) {
	done := make(chan struct{})
	o.post(func() {
		defer close(done)
		room := o.reg.get(code)
		if room == nil {
			return
		}
		p := room.PlayerByID(playerID)
		if p == nil || !p.Bot {
			return
		}
		switch room.Variant {
		case VariantGnarlyLibs:
			o.handleLibsAction(room, p, "", act)
		case VariantPatented:
			o.handlePatentAction(room, p, "", act)
		case VariantQuirkQuiz:
			o.handleQuizAction(room, p, act)
		case VariantScribble:
			o.handleScribbleAction(room, p, "", act)
		case VariantCalamity:
			o.handleCalamityAction(room, p, "", act)
		}
	})
	<-done
}

// planBotMoves inspects the room and emits one move per bot with work
// to do. Loop context only; moves are re-validated when applied.
func (o *Orchestrator) planBotMoves(room *Room) []botPlan {
	var plans []botPlan
	add := func(playerID string, act ActionPayload, minD, maxD time.Duration) {
		plans = append(plans, botPlan{
			playerID: playerID,
			act:      act,
			delay:    jitter(minD, maxD),
		})
	}

	switch room.Phase {
	case PhaseGLPromptSubmit:
		l := room.Libs
		for _, p := range o.botPlayers(room) {
			if !o.libsIsContestant(room, p.ID) && !hasSubmission(l.PromptSubs, p.ID) {
				add(p.ID, ActionPayload{Action: ActSubmitPrompt, Prompt: sample(BotPrompts)}, 2*time.Second, 8*time.Second)
			}
		}
	case PhaseGLAnswer:
		l := room.Libs
		for _, p := range o.botPlayers(room) {
			if o.libsIsContestant(room, p.ID) && !hasSubmission(l.Answers, p.ID) {
				add(p.ID, ActionPayload{Action: ActSubmitAnswer, Answer: sample(BotAnswers)}, 3*time.Second, 12*time.Second)
			}
		}
	case PhaseGLVoting:
		l := room.Libs
		for _, p := range o.botPlayers(room) {
			if o.libsIsContestant(room, p.ID) || l.VotedBy[p.ID] {
				continue
			}
			if len(l.Answers) == 0 {
				continue
			}
			idx := int(fastrand.Uint32n(uint32(len(l.Answers))))
			add(p.ID, ActionPayload{Action: ActSubmitVote, VoteIndex: &idx}, 2*time.Second, 6*time.Second)
		}
	case PhaseDPProblemSubmit:
		pt := room.Patent
		for _, p := range o.botPlayers(room) {
			if _, done := pt.ProblemsByPlayer[p.ID]; !done {
				probs := []string{sample(BotProblems), sample(BotProblems)}
				add(p.ID, ActionPayload{Action: ActSubmitProbs, Problems: probs}, 3*time.Second, 10*time.Second)
			}
		}
	case PhaseDPPick:
		pt := room.Patent
		for _, p := range o.botPlayers(room) {
			if _, done := pt.SelectedByPlayer[p.ID]; done {
				continue
			}
			choices := pt.ChoicesByPlayer[p.ID]
			if len(choices) == 0 {
				continue
			}
			add(p.ID, ActionPayload{Action: ActSelectProblem, Problem: sample(choices)}, 2*time.Second, 5*time.Second)
		}
	case PhaseDPDrawing:
		pt := room.Patent
		for _, p := range o.botPlayers(room) {
			if _, done := pt.Drawings[p.ID]; !done {
				add(p.ID, ActionPayload{Action: ActSubmitDrawing, Title: botInventionTitle()}, 5*time.Second, 15*time.Second)
			}
		}
	case PhaseDPInvesting:
		pt := room.Patent
		presenter := o.currentPresenter(room)
		for _, p := range o.botPlayers(room) {
			if presenter == nil || p.ID == presenter.ID || pt.InvestedBy[p.ID] {
				continue
			}
			amount := 50 + int(fastrand.Uint32n(251))
			add(p.ID, ActionPayload{Action: ActInvest, Amount: amount}, 2*time.Second, 8*time.Second)
		}
	case PhaseQQQuestion:
		q := room.Quiz
		question := QuizQuestions[q.Question]
		for _, p := range o.botPlayers(room) {
			if _, done := q.Answers[p.ID][q.Question]; done {
				continue
			}
			agreed := fastrand.Uint32n(2) == 0
			add(p.ID, ActionPayload{Action: ActQuizAnswer, QuestionID: question.ID, Agreed: &agreed}, o.cfg.BotMinDelay, o.cfg.BotMaxDelay)
		}
	case PhaseSCDrawing:
		sc := room.Scribble
		for _, p := range o.botPlayers(room) {
			if p.ID == sc.DrawerID || o.hasGuessedCorrectly(sc, p.ID) {
				continue
			}
			// Bots cannot see the canvas; they lob a plausible word.
			add(p.ID, ActionPayload{Action: ActSubmitGuess, Guess: sample(words.Pool)}, 3*time.Second, 10*time.Second)
		}
	case PhaseCCPlaying:
		if p := room.CurrentCardPlayer(); p != nil && p.Bot {
			add(p.ID, o.planCardMove(room, p), o.cfg.BotMinDelay, o.cfg.BotMaxDelay)
		}
	case PhaseCCPickColor:
		c := room.Calamity
		if p := room.PlayerByID(c.PendingWildID); p != nil && p.Bot {
			add(p.ID, ActionPayload{Action: ActPickColor, Color: string(bestColor(c.Hands[p.ID]))}, o.cfg.BotMinDelay, o.cfg.BotMaxDelay)
		}
	}
	return plans
}

// planCardMove plays the first legal card, or draws.
func (o *Orchestrator) planCardMove(room *Room, p *Player) ActionPayload {
	c := room.Calamity
	top, _ := c.Deck.Top()
	for _, card := range c.Hands[p.ID] {
		if cards.Playable(card, top, c.ActiveColor, c.DrawStack, c.Stacking) {
			return ActionPayload{Action: ActPlayCard, CardID: card.ID}
		}
	}
	return ActionPayload{Action: ActDrawCard}
}

// bestColor picks the color the hand holds most of.
func bestColor(hand []cards.Card) cards.Color {
	counts := make(map[cards.Color]int, len(cards.Colors))
	for _, card := range hand {
		if !card.IsWild() {
			counts[card.Color]++
		}
	}
	best := cards.Colors[fastrand.Uint32n(uint32(len(cards.Colors)))]
	bestCount := -1
	for _, color := range cards.Colors {
		if counts[color] > bestCount {
			best, bestCount = color, counts[color]
		}
	}
	return best
}

// botPlayers returns every bot in the room; the per-phase planners
// decide which of them still owe a move.
func (o *Orchestrator) botPlayers(room *Room) []*Player {
	out := make([]*Player, 0, len(room.Players))
	for _, p := range room.Players {
		if p.Bot {
			out = append(out, p)
		}
	}
	return out
}

func jitter(minD, maxD time.Duration) time.Duration {
	if maxD <= minD {
		return minD
	}
	span := uint32((maxD - minD) / time.Millisecond)
	return minD + time.Duration(fastrand.Uint32n(span))*time.Millisecond
}
