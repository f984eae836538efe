// Package game implements the party session core: the room registry,
// the single-goroutine orchestrator loop, the per-variant state machines
// and the bot scheduler. All room state is confined to the loop; the
// websocket layer interacts with it only through posted closures and the
// Emitter interface.
package game

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/calamity-games/party-backend/internal/config"
)

// Emitter delivers events to connections. Implementations must be safe
// for concurrent use; the hub's buffered per-connection writers satisfy
// this.
type Emitter interface {
	Send(connID, event string, data any)
	CloseConn(connID string)
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Orchestrator owns every room. One instance runs per process; its Run
// loop is the only goroutine that touches rooms, timers-by-key state and
// the connection directory.
type Orchestrator struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	emit   Emitter
	ops    chan func()
	reg    *registry
	conns  map[string]string // connID -> room code
	users  map[string]string // connID -> authenticated-identity marker
	timers *timerStore
	bots   map[string]*botRun // room code -> ticket
}

func NewOrchestrator(cfg config.Config, log *zap.SugaredLogger, emit Emitter) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		log:    log,
		emit:   emit,
		ops:    make(chan func(), 256),
		reg:    newRegistry(cfg.ClosedCodeCache, cfg.CodeCooldown),
		conns:  make(map[string]string),
		users:  make(map[string]string),
		timers: newTimerStore(),
		bots:   make(map[string]*botRun),
	}
}

// Run drains the op queue until the context is cancelled. It must be
// running before any connection handler is invoked.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		select {
		case op := <-o.ops:
			op()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// post queues a closure onto the loop. Safe from any goroutine.
func (o *Orchestrator) post(op func()) {
	o.ops <- op
}

// HandleConnect registers a fresh connection and its optional identity
// marker from the upgrade query.
func (o *Orchestrator) HandleConnect(connID, userID string) {
	o.post(func() {
		if userID != "" {
			o.users[connID] = userID
		}
	})
}

// HandleMessage decodes one inbound frame and dispatches it on the loop.
func (o *Orchestrator) HandleMessage(connID string, raw []byte) {
	o.post(func() {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			o.sendError(connID, "Malformed message")
			return
		}
		switch env.Type {
		case MsgCreateRoom:
			var p CreateRoomPayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				o.sendError(connID, "Malformed create_room payload")
				return
			}
			o.handleCreateRoom(connID, p)
		case MsgJoinRoom:
			var p JoinRoomPayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				o.sendError(connID, "Malformed join_room payload")
				return
			}
			o.handleJoinRoom(connID, p)
		case MsgCloseRoom:
			o.handleCloseRoom(connID)
		case MsgGameAction:
			var p ActionPayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				o.sendError(connID, "Malformed game_action payload")
				return
			}
			o.handleGameAction(connID, p)
		default:
			o.sendError(connID, "Unknown message type")
		}
	})
}

// HandleDisconnect detaches a connection from its room. Player slots are
// kept (marked disconnected) so the player can rejoin; the host starts a
// grace window when one is configured.
func (o *Orchestrator) HandleDisconnect(connID string) {
	o.post(func() {
		delete(o.users, connID)
		code, ok := o.conns[connID]
		if !ok {
			return
		}
		delete(o.conns, connID)
		room := o.reg.get(code)
		if room == nil {
			return
		}

		if room.HostConnID == connID {
			room.HostConnected = false
			o.log.Infow("host disconnected", "room", code)
			if o.cfg.HostGracePeriod > 0 {
				o.StartTimer(code, TimerRoom, o.cfg.HostGracePeriod, func() {
					if !room.HostConnected {
						o.closeRoom(room, "Host did not return")
					}
				})
			}
			o.broadcastState(room)
			return
		}

		p := room.PlayerByConn(connID)
		if p == nil {
			return
		}
		p.Connected = false
		p.ConnID = ""
		o.log.Infow("player disconnected", "room", code, "player", p.Name)
		if room.ControllerID == p.ID {
			room.PromoteController()
		}
		o.onPlayerInactive(room, p)
		if !o.anyHumanConnected(room) && !room.HostConnected {
			o.closeRoom(room, "Everyone left")
			return
		}
		o.broadcastState(room)
		o.scheduleBots(room)
	})
}

func (o *Orchestrator) anyHumanConnected(room *Room) bool {
	for _, p := range room.Players {
		if !p.Bot && p.Connected {
			return true
		}
	}
	return false
}

// handleCreateRoom allocates a room and makes the creating connection
// its host screen.
func (o *Orchestrator) handleCreateRoom(connID string, p CreateRoomPayload) {
	variant := Variant(p.GameID)
	if !ValidVariant(variant) {
		o.sendError(connID, "Unknown game")
		return
	}
	room, err := o.reg.create(connID, newHostKey())
	if err != nil {
		o.log.Errorw("room allocation failed", "err", err)
		o.sendError(connID, "Could not create a room, try again")
		return
	}
	room.Variant = variant
	room.CCStacking = o.cfg.CardStackingByDefault
	if p.CCStacking != nil {
		room.CCStacking = *p.CCStacking
	}
	o.conns[connID] = room.Code
	o.log.Infow("room created", "room", room.Code, "game", variant)
	o.send(connID, EvRoomCreated, map[string]any{
		"roomCode": room.Code,
		"hostKey":  room.HostKey,
	})
	o.broadcastState(room)
}

// handleJoinRoom binds a connection into a room, as host screen or as a
// player. Returning players are matched by player id first, then by a
// disconnected slot with the same name.
func (o *Orchestrator) handleJoinRoom(connID string, p JoinRoomPayload) {
	room := o.reg.get(p.RoomCode)
	if room == nil {
		o.sendError(connID, "Room not found")
		return
	}

	if p.IsHost {
		if p.HostKey != room.HostKey {
			o.sendError(connID, "Invalid host key")
			return
		}
		room.HostConnID = connID
		room.HostConnected = true
		o.conns[connID] = room.Code
		o.CancelTimer(room.Code, TimerRoom)
		o.log.Infow("host joined", "room", room.Code)
		o.send(connID, EvHostJoined, map[string]any{"roomCode": room.Code})
		o.broadcastState(room)
		return
	}

	if p.PlayerName == "" && p.PlayerID == "" {
		o.sendError(connID, "Name required")
		return
	}

	// Returning player by id.
	if p.PlayerID != "" {
		if prev := room.PlayerByID(p.PlayerID); prev != nil && !prev.Bot {
			o.rebind(room, prev, connID)
			return
		}
	}
	if p.PlayerName == "" {
		// Stale player id and nothing to register under.
		o.sendError(connID, "Name required")
		return
	}
	// Returning player by vacated name slot.
	if prev := room.PlayerByName(p.PlayerName); prev != nil {
		if !prev.Bot && !prev.Connected {
			o.rebind(room, prev, connID)
			return
		}
		o.sendError(connID, "Name taken")
		return
	}

	if len(room.Players) >= o.cfg.MaxRoomPlayers {
		o.sendError(connID, "Room is full")
		return
	}
	player := &Player{
		ID:        newPlayerID(),
		Name:      p.PlayerName,
		ConnID:    connID,
		UserID:    o.users[connID],
		Connected: true,
	}
	room.Players = append(room.Players, player)
	if room.ControllerID == "" {
		room.ControllerID = player.ID
	}
	o.conns[connID] = room.Code
	o.log.Infow("player joined", "room", room.Code, "player", player.Name)
	o.send(connID, EvJoined, map[string]any{
		"roomCode": room.Code,
		"playerId": player.ID,
	})
	o.broadcastState(room)
	o.onPlayerAttached(room, player)
}

func (o *Orchestrator) rebind(room *Room, p *Player, connID string) {
	p.ConnID = connID
	p.Connected = true
	if uid := o.users[connID]; uid != "" {
		p.UserID = uid
	}
	if room.ControllerID == "" {
		room.ControllerID = p.ID
	}
	o.conns[connID] = room.Code
	o.log.Infow("player rejoined", "room", room.Code, "player", p.Name)
	o.send(connID, EvJoined, map[string]any{
		"roomCode": room.Code,
		"playerId": p.ID,
	})
	o.broadcastState(room)
	o.onPlayerAttached(room, p)
}

// handleCloseRoom closes the connection's room; only the host screen may
// do this.
func (o *Orchestrator) handleCloseRoom(connID string) {
	room := o.roomFor(connID)
	if room == nil {
		o.sendError(connID, "Room not found")
		return
	}
	if room.HostConnID != connID {
		o.sendError(connID, "Only the host can close the room")
		return
	}
	o.closeRoom(room, "Closed by host")
}

// closeRoom tears a room down: timers cancelled, everyone notified and
// detached, code parked in the cooldown cache.
func (o *Orchestrator) closeRoom(room *Room, reason string) {
	o.CancelRoomTimers(room.Code)
	delete(o.bots, room.Code)
	o.broadcast(room, EvRoomClosed, map[string]any{"message": reason})
	for connID, code := range o.conns {
		if code == room.Code {
			delete(o.conns, connID)
			o.emit.CloseConn(connID)
		}
	}
	o.reg.remove(room.Code)
	o.log.Infow("room closed", "room", room.Code, "reason", reason)
}

// handleGameAction routes an action to the shared handlers or to the
// room's variant handler. Unknown or out-of-phase actions are silent
// no-ops per the error tiers.
func (o *Orchestrator) handleGameAction(connID string, act ActionPayload) {
	room := o.roomFor(connID)
	if room == nil {
		o.sendError(connID, "Room not found")
		return
	}
	player := room.PlayerByConn(connID)

	switch act.Action {
	case ActStartGame, ActAddBot, ActRemoveBot, ActNextRound, ActPlayAgain, ActNewLobby:
		o.handleSessionAction(room, connID, act)
		return
	}
	if player == nil {
		// Game moves come from players, not the host screen.
		return
	}

	switch room.Variant {
	case VariantGnarlyLibs:
		o.handleLibsAction(room, player, connID, act)
	case VariantPatented:
		o.handlePatentAction(room, player, connID, act)
	case VariantQuirkQuiz:
		o.handleQuizAction(room, player, act)
	case VariantScribble:
		o.handleScribbleAction(room, player, connID, act)
	case VariantCalamity:
		o.handleCalamityAction(room, player, connID, act)
	}
}

func (o *Orchestrator) roomFor(connID string) *Room {
	code, ok := o.conns[connID]
	if !ok {
		return nil
	}
	return o.reg.get(code)
}
