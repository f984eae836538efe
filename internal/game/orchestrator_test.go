package game

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calamity-games/party-backend/internal/config"
)

type emittedEvent struct {
	ConnID string
	Event  string
	Data   any
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
	closed []string
}

func (e *recordingEmitter) Send(connID, event string, data any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emittedEvent{ConnID: connID, Event: event, Data: data})
}

func (e *recordingEmitter) CloseConn(connID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = append(e.closed, connID)
}

func (e *recordingEmitter) eventsFor(connID string) []emittedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []emittedEvent
	for _, ev := range e.events {
		if ev.ConnID == connID {
			out = append(out, ev)
		}
	}
	return out
}

func testConfig() config.Config {
	return config.Config{
		CodeCooldown:      time.Minute,
		ClosedCodeCache:   16,
		MaxRoomPlayers:    12,
		MinPartyPlayers:   4,
		BotMinDelay:       time.Millisecond,
		BotMaxDelay:       2 * time.Millisecond,
		QuizQuestionTime:  20 * time.Second,
		PresentTime:       60 * time.Second,
		InvestTime:        30 * time.Second,
		WordPickTime:      15 * time.Second,
		DrawTime:          80 * time.Second,
		RoundResultsTime:  8 * time.Second,
		CardTurnTime:      30 * time.Second,
		CardPickColorTime: 15 * time.Second,
	}
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *recordingEmitter) {
	t.Helper()
	em := &recordingEmitter{}
	o := NewOrchestrator(testConfig(), zap.NewNop().Sugar(), em)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go o.Run(ctx)
	return o, em
}

// do runs f on the orchestrator loop and waits for it, so tests observe
// state the same way handlers do.
func (o *Orchestrator) do(f func()) {
	done := make(chan struct{})
	o.post(func() {
		f()
		close(done)
	})
	<-done
}

func createRoom(o *Orchestrator, hostConn string, variant Variant) (room *Room) {
	o.do(func() {
		o.handleCreateRoom(hostConn, CreateRoomPayload{GameID: string(variant)})
		room = o.roomFor(hostConn)
	})
	return room
}

func join(o *Orchestrator, room *Room, connID, name string) (p *Player) {
	o.do(func() {
		o.handleJoinRoom(connID, JoinRoomPayload{RoomCode: room.Code, PlayerName: name})
		p = room.PlayerByConn(connID)
	})
	return p
}

func TestCreateAndJoinRoom(t *testing.T) {
	o, em := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	require.NotNil(t, room)
	assert.Equal(t, PhaseLobby, room.Phase)
	assert.Equal(t, "host-1", room.HostConnID)
	assert.NotEmpty(t, room.HostKey)

	p1 := join(o, room, "conn-1", "Ada")
	p2 := join(o, room, "conn-2", "Grace")
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	assert.Equal(t, p1.ID, room.ControllerID, "first human controls the room")
	assert.Len(t, room.Players, 2)

	hostEvents := em.eventsFor("host-1")
	require.NotEmpty(t, hostEvents)
	assert.Equal(t, EvRoomCreated, hostEvents[0].Event)
}

func TestJoinRejectsTakenName(t *testing.T) {
	o, em := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")

	o.do(func() {
		o.handleJoinRoom("conn-2", JoinRoomPayload{RoomCode: room.Code, PlayerName: "Ada"})
	})
	assert.Len(t, room.Players, 1)
	events := em.eventsFor("conn-2")
	require.NotEmpty(t, events)
	assert.Equal(t, EvError, events[len(events)-1].Event)
}

func TestUnknownRoom(t *testing.T) {
	o, em := newTestOrchestrator(t)
	o.do(func() {
		o.handleJoinRoom("conn-1", JoinRoomPayload{RoomCode: "NOPE", PlayerName: "Ada"})
	})
	events := em.eventsFor("conn-1")
	require.Len(t, events, 1)
	assert.Equal(t, EvError, events[0].Event)
}

func TestReconnectRebindsByPlayerID(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	p1 := join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.HandleDisconnect("conn-1")
	o.do(func() {
		assert.False(t, p1.Connected)
		assert.Empty(t, p1.ConnID)
	})

	o.do(func() {
		o.handleJoinRoom("conn-3", JoinRoomPayload{
			RoomCode: room.Code,
			PlayerID: p1.ID,
		})
	})
	o.do(func() {
		assert.True(t, p1.Connected)
		assert.Equal(t, "conn-3", p1.ConnID)
		assert.Len(t, room.Players, 2, "rebinding must not add a player")
	})
}

func TestReconnectRebindsByVacatedName(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	p1 := join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.HandleDisconnect("conn-1")
	p := join(o, room, "conn-3", "Ada")
	require.NotNil(t, p)
	assert.Equal(t, p1.ID, p.ID)
	o.do(func() {
		assert.Len(t, room.Players, 2)
	})
}

func TestControllerTransferOnDisconnect(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	p2 := join(o, room, "conn-2", "Grace")

	o.HandleDisconnect("conn-1")
	o.do(func() {
		assert.Equal(t, p2.ID, room.ControllerID)
	})
}

func TestNonControllerCannotStart(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.do(func() {
		o.handleGameAction("conn-2", ActionPayload{Action: ActStartGame})
		assert.Equal(t, PhaseLobby, room.Phase, "non-controller start must be ignored")

		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
		assert.Equal(t, PhaseCCPlaying, room.Phase)
	})
}

func TestBotAutofillForWritingGames(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantGnarlyLibs)
	join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
		assert.Len(t, room.ActivePlayers(), 4, "bots fill the table")
		assert.Equal(t, PhaseGLPromptSubmit, room.Phase)
	})
}

func TestProjectionHidesHands(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})

		snap := BuildSnapshot(room)
		require.NotNil(t, snap.CCHandCounts)
		for _, count := range snap.CCHandCounts {
			assert.Equal(t, 7, count)
		}

		raw, err := json.Marshal(snap)
		require.NoError(t, err)
		for _, hand := range room.Calamity.Hands {
			for _, card := range hand {
				assert.NotContains(t, string(raw), `"id":"`+card.ID+`"`,
					"snapshot must not leak hand cards")
			}
		}
	})
}

func TestQuizTimeoutMarksAndAdvances(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantQuirkQuiz)
	p1 := join(o, room, "conn-1", "Ada")
	p2 := join(o, room, "conn-2", "Grace")

	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
		require.Equal(t, PhaseQQQuestion, room.Phase)

		agreed := true
		o.handleGameAction("conn-1", ActionPayload{
			Action:     ActQuizAnswer,
			QuestionID: QuizQuestions[0].ID,
			Agreed:     &agreed,
		})

		o.expireQuizQuestion(room)
		assert.Equal(t, 1, room.Quiz.Question, "question advances on expiry")
		assert.Equal(t, QuizTimeout, room.Quiz.Answers[p2.ID][0])
		assert.Equal(t, 1, p2.Score, "timeout scores the fixed penalty")
		assert.NotEqual(t, QuizTimeout, room.Quiz.Answers[p1.ID][0])
	})
}

func TestForcedDrawTakesStackAndPasses(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
		c := room.Calamity
		c.DrawStack = 4
		c.Turn = 0

		current := room.PlayerByID(c.TurnOrder[0])
		before := len(c.Hands[current.ID])
		o.handleCalamityAction(room, current, current.ConnID, ActionPayload{Action: ActDrawCard})

		assert.Equal(t, before+4, len(c.Hands[current.ID]))
		assert.Zero(t, c.DrawStack, "stack fully drained by the draw")
		assert.NotEqual(t, current.ID, c.TurnOrder[c.Turn], "turn passes")
		assert.Equal(t, "draw", c.LastAction.Type)
	})
}

func TestPlayCardValidation(t *testing.T) {
	o, em := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	var currentConn string
	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
		c := room.Calamity
		current := room.PlayerByID(c.TurnOrder[c.Turn])
		other := room.PlayerByID(c.TurnOrder[1-c.Turn])
		currentConn = current.ConnID

		// Not your turn: silent no-op.
		handBefore := len(c.Hands[other.ID])
		o.handleCalamityAction(room, other, other.ConnID, ActionPayload{
			Action: ActPlayCard,
			CardID: c.Hands[other.ID][0].ID,
		})
		assert.Equal(t, handBefore, len(c.Hands[other.ID]))

		// Unknown card id: explicit error to the actor.
		o.handleCalamityAction(room, current, current.ConnID, ActionPayload{
			Action: ActPlayCard,
			CardID: "bogus",
		})
	})
	found := false
	for _, ev := range em.eventsFor(currentConn) {
		if ev.Event == EvError {
			found = true
		}
	}
	assert.True(t, found, "invalid card must produce an error event")
}

func TestBotTicketCoalesces(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")

	o.do(func() {
		o.scheduleBots(room)
		t1 := o.bots[room.Code]
		require.NotNil(t, t1)
		assert.True(t, t1.running)

		o.scheduleBots(room)
		assert.True(t, t1.pending, "second trigger folds into the running pass")
	})
}

func TestHostCloseRoom(t *testing.T) {
	o, em := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	code := room.Code

	o.do(func() {
		o.handleCloseRoom("conn-1")
		require.NotNil(t, o.reg.get(code), "players cannot close the room")

		o.handleCloseRoom("host-1")
		assert.Nil(t, o.reg.get(code))
		assert.False(t, o.reg.usable(code), "closed code enters cooldown")
	})

	found := false
	for _, ev := range em.eventsFor("conn-1") {
		if ev.Event == EvRoomClosed {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewLobbyKeepsPlayersDropsGame(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room := createRoom(o, "host-1", VariantCalamity)
	join(o, room, "conn-1", "Ada")
	join(o, room, "conn-2", "Grace")

	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
		require.Equal(t, PhaseCCPlaying, room.Phase)

		o.handleGameAction("conn-1", ActionPayload{Action: ActNewLobby})
		assert.Equal(t, PhaseLobby, room.Phase)
		assert.Nil(t, room.Calamity)
		assert.Len(t, room.Players, 2)
	})
}
