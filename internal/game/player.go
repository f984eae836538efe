package game

// Player is one identity inside a room. The id survives reconnects; the
// connection id is re-bound every time the player's socket changes. Bots
// have no connection id at all.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ConnID string `json:"-"`
	// UserID is the optional authenticated-identity marker attached at
	// handshake time; the orchestrator stores it and nothing more.
	UserID    string `json:"-"`
	Score     int    `json:"score"`
	Connected bool   `json:"isConnected"`
	Bot       bool   `json:"isBot,omitempty"`
}

// Active reports whether the player takes part in the running game:
// connected humans and all bots.
func (p *Player) Active() bool {
	return p.Connected || p.Bot
}
