package game

import (
	"github.com/google/uuid"
)

func newPlayerID() string { return uuid.NewString() }
func newHostKey() string  { return uuid.NewString() }

// send emits one event to one connection.
func (o *Orchestrator) send(connID, event string, data any) {
	if connID == "" {
		return
	}
	o.emit.Send(connID, event, data)
}

// sendError delivers an error event to the acting connection only;
// errors are never broadcast.
func (o *Orchestrator) sendError(connID, message string) {
	o.send(connID, EvError, ErrorPayload{Message: message})
}

// broadcast emits an event to the host screen and every connected human
// player. Bots have no socket and disconnected players catch up from the
// next room_update after they rejoin.
func (o *Orchestrator) broadcast(room *Room, event string, data any) {
	if room.HostConnected {
		o.send(room.HostConnID, event, data)
	}
	for _, p := range room.Players {
		if p.Connected && p.ConnID != "" {
			o.send(p.ConnID, event, data)
		}
	}
}

// broadcastExcept is broadcast minus one player, used for chat-style
// relays where the origin already has the data locally.
func (o *Orchestrator) broadcastExcept(room *Room, exceptID string, event string, data any) {
	if room.HostConnected {
		o.send(room.HostConnID, event, data)
	}
	for _, p := range room.Players {
		if p.ID == exceptID {
			continue
		}
		if p.Connected && p.ConnID != "" {
			o.send(p.ConnID, event, data)
		}
	}
}

// sendToPlayer emits a private event to one player, if reachable.
func (o *Orchestrator) sendToPlayer(room *Room, playerID, event string, data any) {
	p := room.PlayerByID(playerID)
	if p == nil || !p.Connected || p.ConnID == "" {
		return
	}
	o.send(p.ConnID, event, data)
}

// broadcastState pushes the room's public snapshot to everyone. Called
// after every state mutation; the snapshot is the single source of truth
// for clients.
func (o *Orchestrator) broadcastState(room *Room) {
	o.broadcast(room, EvRoomUpdate, BuildSnapshot(room))
}
