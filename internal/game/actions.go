package game

import "encoding/json"

// Inbound envelope types.
const (
	MsgCreateRoom = "create_room"
	MsgJoinRoom   = "join_room"
	MsgCloseRoom  = "close_room"
	MsgGameAction = "game_action"
)

// Game actions carried inside a game_action envelope.
const (
	ActStartGame     = "START_GAME"
	ActAddBot        = "ADD_BOT"
	ActRemoveBot     = "REMOVE_BOT"
	ActNextRound     = "NEXT_ROUND"
	ActPlayAgain     = "PLAY_AGAIN"
	ActNewLobby      = "NEW_LOBBY"
	ActSubmitPrompt  = "SUBMIT_PROMPT"
	ActSubmitAnswer  = "SUBMIT_ANSWER"
	ActSubmitVote    = "SUBMIT_VOTE"
	ActSubmitProbs   = "SUBMIT_PROBLEMS"
	ActSelectProblem = "SELECT_PROBLEM"
	ActSubmitDrawing = "SUBMIT_DRAWING"
	ActInvest        = "INVEST"
	ActQuizAnswer    = "QQ_ANSWER"
	ActPickWord      = "PICK_WORD"
	ActSubmitGuess   = "SUBMIT_GUESS"
	ActStroke        = "STROKE"
	ActClearCanvas   = "CLEAR_CANVAS"
	ActPlayCard      = "PLAY_CARD"
	ActDrawCard      = "DRAW_CARD"
	ActPickColor     = "PICK_COLOR"
)

// Outbound event types.
const (
	EvRoomCreated   = "room_created"
	EvJoined        = "joined"
	EvHostJoined    = "host_joined"
	EvRoomUpdate    = "room_update"
	EvRoomClosed    = "room_closed"
	EvError         = "error"
	EvNewPrompt     = "new_prompt"
	EvStartVoting   = "start_voting"
	EvRoundResults  = "round_results"
	EvStartPresent  = "start_presentation"
	EvStartInvest   = "start_investing"
	EvGameOver      = "game_over"
	EvQuizQuestion  = "qq_question"
	EvQuizResults   = "qq_results"
	EvQuizTimer     = "qq_timer"
	EvWordOptions   = "sc_word_options"
	EvScribbleTimer = "sc_timer"
	EvGuessChat     = "sc_guess_chat"
	EvCorrectGuess  = "sc_correct_guess"
	EvStrokeData    = "sc_stroke_data"
	EvClearCanvas   = "sc_clear_canvas"
	EvRoundEnd      = "sc_round_end"
	EvScribbleEnd   = "sc_game_end"
	EvCardHand      = "cc_hand"
	EvCardTimer     = "cc_timer"
	EvCardGameEnd   = "cc_game_end"
)

// CreateRoomPayload is the body of a create_room message.
type CreateRoomPayload struct {
	GameID     string `json:"gameId"`
	CCStacking *bool  `json:"ccStacking,omitempty"`
}

// JoinRoomPayload is the body of a join_room message. Players send a
// name; the host screen sends isHost with the key it received from
// room_created. A returning player includes its previous playerId.
type JoinRoomPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName,omitempty"`
	PlayerID   string `json:"playerId,omitempty"`
	IsHost     bool   `json:"isHost,omitempty"`
	HostKey    string `json:"hostKey,omitempty"`
}

// ActionPayload is the body of a game_action message. Fields beyond
// Action are populated per action type; unused ones stay zero.
type ActionPayload struct {
	Action     string          `json:"action"`
	Prompt     string          `json:"prompt,omitempty"`
	Answer     string          `json:"answer,omitempty"`
	VoteIndex  *int            `json:"voteIndex,omitempty"`
	Problems   []string        `json:"problems,omitempty"`
	Problem    string          `json:"problem,omitempty"`
	Drawing    string          `json:"drawing,omitempty"`
	Title      string          `json:"title,omitempty"`
	Amount     int             `json:"amount,omitempty"`
	QuestionID int             `json:"questionId,omitempty"`
	Agreed     *bool           `json:"agreed,omitempty"`
	Word       string          `json:"word,omitempty"`
	Guess      string          `json:"guess,omitempty"`
	Stroke     json.RawMessage `json:"stroke,omitempty"`
	CardID     string          `json:"cardId,omitempty"`
	Color      string          `json:"color,omitempty"`
}

// ErrorPayload is the body of an error event, delivered to the acting
// connection only.
type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
