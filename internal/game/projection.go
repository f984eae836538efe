package game

import (
	"github.com/calamity-games/party-backend/internal/cards"
)

// Snapshot is the public view of a room, broadcast as room_update after
// every mutation. It never contains another player's private material:
// card hands become counts, quiz answers become a "who has answered"
// list, and the drawer's word is masked into a hint.
type Snapshot struct {
	RoomCode      string    `json:"roomCode"`
	GameID        Variant   `json:"gameId,omitempty"`
	Phase         Phase     `json:"phase"`
	Players       []*Player `json:"players"`
	ControllerID  string    `json:"controllerId,omitempty"`
	HostConnected bool      `json:"hostConnected"`
	Round         int       `json:"round,omitempty"`
	TotalRounds   int       `json:"totalRounds,omitempty"`

	// Gnarly Libs
	Prompt        string   `json:"prompt,omitempty"`
	ContestantIDs []string `json:"contestantIds,omitempty"`
	SubmittedIDs  []string `json:"submittedIds,omitempty"`
	AnswerTexts   []string `json:"answerTexts,omitempty"`
	VoteCounts    []int    `json:"voteCounts,omitempty"`

	// Dubiously Patented
	PresenterID  string            `json:"presenterId,omitempty"`
	PresentOrder []string          `json:"presentOrder,omitempty"`
	Titles       map[string]string `json:"titles,omitempty"`
	Drawing      string            `json:"drawing,omitempty"`
	InvestedIDs  []string          `json:"investedIds,omitempty"`

	// Quirk Quiz
	QQQuestion   *QuestionPublic `json:"qqQuestion,omitempty"`
	QQAnsweredBy []string        `json:"qqAnsweredBy,omitempty"`

	// Scribble Scrabble
	SCDrawerID    string         `json:"scDrawerId,omitempty"`
	SCHint        string         `json:"scHint,omitempty"`
	SCSecondsLeft int            `json:"scSecondsLeft,omitempty"`
	SCCorrectIDs  []string       `json:"scCorrectIds,omitempty"`
	SCRoundScores map[string]int `json:"scRoundScores,omitempty"`

	// Card Calamity
	CCTopCard       *cards.Card    `json:"ccTopCard,omitempty"`
	CCActiveColor   cards.Color    `json:"ccActiveColor,omitempty"`
	CCTurnPlayerID  string         `json:"ccTurnPlayerId,omitempty"`
	CCDirection     int            `json:"ccDirection,omitempty"`
	CCDrawStack     int            `json:"ccDrawStack,omitempty"`
	CCDrawPileCount int            `json:"ccDrawPileCount,omitempty"`
	CCHandCounts    map[string]int `json:"ccHandCounts,omitempty"`
	CCLastAction    *CardAction    `json:"ccLastAction,omitempty"`
	CCStacking      bool           `json:"ccStacking,omitempty"`
	CCWinnerID      string         `json:"ccWinnerId,omitempty"`
	CCSecondsLeft   int            `json:"ccSecondsLeft,omitempty"`
}

// QuestionPublic is the quiz question as the room sees it.
type QuestionPublic struct {
	ID    int    `json:"id"`
	Index int    `json:"index"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

// BuildSnapshot projects the room into its public state.
func BuildSnapshot(r *Room) *Snapshot {
	s := &Snapshot{
		RoomCode:      r.Code,
		GameID:        r.Variant,
		Phase:         r.Phase,
		Players:       r.Players,
		ControllerID:  r.ControllerID,
		HostConnected: r.HostConnected,
		Round:         r.Round,
		TotalRounds:   r.TotalRounds,
	}
	switch {
	case r.Libs != nil:
		projectLibs(r, s)
	case r.Patent != nil:
		projectPatent(r, s)
	case r.Quiz != nil:
		projectQuiz(r, s)
	case r.Scribble != nil:
		projectScribble(r, s)
	case r.Calamity != nil:
		projectCalamity(r, s)
	}
	return s
}

func projectLibs(r *Room, s *Snapshot) {
	l := r.Libs
	s.ContestantIDs = l.ContestantIDs
	switch r.Phase {
	case PhaseGLPromptSubmit:
		for _, sub := range l.PromptSubs {
			s.SubmittedIDs = append(s.SubmittedIDs, sub.PlayerID)
		}
	case PhaseGLAnswer:
		s.Prompt = l.Prompt
		for _, sub := range l.Answers {
			s.SubmittedIDs = append(s.SubmittedIDs, sub.PlayerID)
		}
	case PhaseGLVoting:
		s.Prompt = l.Prompt
		// Answer texts only; attribution is withheld until results.
		for _, sub := range l.Answers {
			s.AnswerTexts = append(s.AnswerTexts, sub.Text)
		}
		for id := range l.VotedBy {
			s.SubmittedIDs = append(s.SubmittedIDs, id)
		}
	case PhaseGLResults:
		s.Prompt = l.Prompt
		s.VoteCounts = make([]int, len(l.Answers))
		for i, sub := range l.Answers {
			s.AnswerTexts = append(s.AnswerTexts, sub.Text)
			s.VoteCounts[i] = l.Votes[i]
		}
	}
}

func projectPatent(r *Room, s *Snapshot) {
	p := r.Patent
	switch r.Phase {
	case PhaseDPProblemSubmit:
		for id := range p.ProblemsByPlayer {
			s.SubmittedIDs = append(s.SubmittedIDs, id)
		}
	case PhaseDPPick:
		for id := range p.SelectedByPlayer {
			s.SubmittedIDs = append(s.SubmittedIDs, id)
		}
	case PhaseDPDrawing:
		for id := range p.Drawings {
			s.SubmittedIDs = append(s.SubmittedIDs, id)
		}
	case PhaseDPPresenting, PhaseDPInvesting:
		s.PresentOrder = p.PresentOrder
		s.Titles = p.Titles
		if p.Presenter < len(p.PresentOrder) {
			s.PresenterID = p.PresentOrder[p.Presenter]
			s.Drawing = p.Drawings[s.PresenterID]
		}
		for id := range p.InvestedBy {
			s.InvestedIDs = append(s.InvestedIDs, id)
		}
	case PhaseDPResults:
		s.PresentOrder = p.PresentOrder
		s.Titles = p.Titles
	}
}

func projectQuiz(r *Room, s *Snapshot) {
	q := r.Quiz
	if r.Phase == PhaseQQQuestion && q.Question < len(QuizQuestions) {
		qq := QuizQuestions[q.Question]
		s.QQQuestion = &QuestionPublic{
			ID:    qq.ID,
			Index: q.Question,
			Total: len(QuizQuestions),
			Text:  qq.Text,
		}
		for id, answers := range q.Answers {
			if _, ok := answers[q.Question]; ok {
				s.QQAnsweredBy = append(s.QQAnsweredBy, id)
			}
		}
	}
}

func projectScribble(r *Room, s *Snapshot) {
	sc := r.Scribble
	s.SCDrawerID = sc.DrawerID
	switch r.Phase {
	case PhaseSCDrawing:
		s.SCHint = scribbleHint(sc)
		s.SCSecondsLeft = sc.SecondsLeft
		s.SCCorrectIDs = sc.CorrectGuessers
	case PhaseSCRoundResults:
		s.SCRoundScores = sc.RoundScores
		s.SCCorrectIDs = sc.CorrectGuessers
	}
}

func projectCalamity(r *Room, s *Snapshot) {
	c := r.Calamity
	s.CCActiveColor = c.ActiveColor
	s.CCDirection = c.Direction
	s.CCDrawStack = c.DrawStack
	s.CCStacking = c.Stacking
	s.CCLastAction = c.LastAction
	s.CCWinnerID = c.WinnerID
	s.CCSecondsLeft = c.SecondsLeft
	if c.Deck != nil {
		if top, ok := c.Deck.Top(); ok {
			s.CCTopCard = &top
		}
		s.CCDrawPileCount = c.Deck.DrawSize()
	}
	if len(c.TurnOrder) > 0 {
		s.CCTurnPlayerID = c.TurnOrder[c.Turn]
	}
	s.CCHandCounts = make(map[string]int, len(c.Hands))
	for id, hand := range c.Hands {
		s.CCHandCounts[id] = len(hand)
	}
}
