package game

import (
	"github.com/calamity-games/party-backend/internal/cards"
)

// Room is the central aggregate: a shared header plus exactly one variant
// payload selected by Variant. Variant payloads are built whole when their
// game starts, so no field needs an existence check once its phase began.
// Rooms are only ever touched from the orchestrator loop, so they carry
// no lock.
type Room struct {
	Code          string
	Variant       Variant
	HostConnID    string
	HostKey       string
	HostConnected bool
	ControllerID  string
	Players       []*Player
	Phase         Phase
	Round         int
	TotalRounds   int
	CCStacking    bool

	Libs     *LibsState
	Patent   *PatentState
	Quiz     *QuizState
	Scribble *ScribbleState
	Calamity *CalamityState
}

// Submission pairs a player with a piece of submitted text.
type Submission struct {
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
}

// LibsState is the Gnarly Libs payload: two rotating contestants answer a
// prompt picked from the audience's submissions, everyone else votes.
type LibsState struct {
	Prompt        string
	ContestantIDs []string
	PromptSubs    []Submission
	Answers       []Submission
	Votes         map[int]int
	VotedBy       map[string]bool
}

// PatentState is the Dubiously Patented payload: problems in, inventions
// drawn, pitched and invested in.
type PatentState struct {
	ProblemsByPlayer map[string][]string
	AllProblems      []Submission
	ChoicesByPlayer  map[string][]string
	SelectedByPlayer map[string]string
	Drawings         map[string]string
	Titles           map[string]string
	PresentOrder     []string
	Presenter        int
	Investments      map[string]int
	InvestedBy       map[string]bool
}

// QuizAnswer is one player's response to a quiz question. Timeout is
// assigned by the question timer when it expires unanswered.
type QuizAnswer string

const (
	QuizAgree    QuizAnswer = "agree"
	QuizDisagree QuizAnswer = "disagree"
	QuizTimeout  QuizAnswer = "timeout"
)

// QuizState is the Quirk Quiz payload. Answers is keyed by player id,
// then question index; points land on Player.Score when the question
// closes.
type QuizState struct {
	Question int
	Answers  map[string]map[int]QuizAnswer
}

// ScribbleState is the Scribble Scrabble payload. Order holds the drawer
// rotation; bots guess but never draw, so only humans appear in it.
type ScribbleState struct {
	Order           []string
	Turn            int
	DrawerID        string
	Word            string
	Options         []string
	CorrectGuessers []string
	CloseGuessers   map[string]bool
	RoundScores     map[string]int
	SecondsLeft     int
}

// CardAction describes the most recent Card Calamity move for the shared
// table display.
type CardAction struct {
	Type       string      `json:"type"`
	PlayerID   string      `json:"playerId"`
	PlayerName string      `json:"playerName"`
	Card       *cards.Card `json:"card,omitempty"`
	Color      cards.Color `json:"color,omitempty"`
	Count      int         `json:"count,omitempty"`
}

// CalamityState is the Card Calamity payload. PendingWildID holds the id
// of the player owing a color pick while the room sits in CC_PICK_COLOR.
type CalamityState struct {
	Deck          *cards.Deck
	Hands         map[string][]cards.Card
	TurnOrder     []string
	Turn          int
	Direction     int
	ActiveColor   cards.Color
	DrawStack     int
	Stacking      bool
	PendingWildID string
	LastAction    *CardAction
	WinnerID      string
	SecondsLeft   int
}

// ActivePlayers returns everyone taking part in the running game:
// connected humans plus all bots.
func (r *Room) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// PlayerByID finds a player by stable id.
func (r *Room) PlayerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByConn finds a player by live connection id.
func (r *Room) PlayerByConn(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// PlayerByName finds a player by display name.
func (r *Room) PlayerByName(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Controller returns the controlling player, if any.
func (r *Room) Controller() *Player {
	if r.ControllerID == "" {
		return nil
	}
	return r.PlayerByID(r.ControllerID)
}

// IsController reports whether the given connection belongs to the
// room's controller.
func (r *Room) IsController(connID string) bool {
	p := r.PlayerByConn(connID)
	return p != nil && r.ControllerID != "" && p.ID == r.ControllerID
}

// PromoteController hands control to the first connected human, or
// clears it when none remains.
func (r *Room) PromoteController() {
	for _, p := range r.Players {
		if !p.Bot && p.Connected {
			r.ControllerID = p.ID
			return
		}
	}
	r.ControllerID = ""
}

// CurrentCardPlayer returns the player whose card-game turn it is.
func (r *Room) CurrentCardPlayer() *Player {
	c := r.Calamity
	if c == nil || len(c.TurnOrder) == 0 {
		return nil
	}
	return r.PlayerByID(c.TurnOrder[c.Turn])
}

// ClearVariantState drops every game payload and round counter, leaving
// the room a bare lobby header.
func (r *Room) ClearVariantState() {
	r.Libs = nil
	r.Patent = nil
	r.Quiz = nil
	r.Scribble = nil
	r.Calamity = nil
	r.Round = 0
	r.TotalRounds = 0
}

// ResetScores zeroes every player's score for a fresh game.
func (r *Room) ResetScores() {
	for _, p := range r.Players {
		p.Score = 0
	}
}
