package game

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/valyala/fastrand"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var errNoFreeCode = errors.New("could not allocate a room code")

// registry owns the live rooms, keyed by code, plus a bounded cache of
// recently closed codes so a just-vacated code is not reissued while
// clients may still hold it. All access happens on the orchestrator loop.
type registry struct {
	rooms    map[string]*Room
	closed   *lru.Cache
	cooldown time.Duration
}

func newRegistry(closedCacheSize int, cooldown time.Duration) *registry {
	cache, err := lru.New(closedCacheSize)
	if err != nil {
		// Only reachable with a non-positive size; fall back to a
		// minimal cache rather than running without the cooldown.
		cache, _ = lru.New(16)
	}
	return &registry{
		rooms:    make(map[string]*Room),
		closed:   cache,
		cooldown: cooldown,
	}
}

func (g *registry) get(code string) *Room {
	return g.rooms[code]
}

func randomCode() string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteByte(codeAlphabet[fastrand.Uint32n(uint32(len(codeAlphabet)))])
	}
	return b.String()
}

// allocate picks a free 4-letter code, skipping live rooms and codes
// still inside the close cooldown. After 20 random attempts it falls
// back to a uuid-derived code, which is effectively collision-free.
func (g *registry) allocate() (string, error) {
	for i := 0; i < 20; i++ {
		code := randomCode()
		if g.usable(code) {
			return code, nil
		}
	}
	code := strings.ToUpper(uuid.NewString()[:4])
	if g.usable(code) {
		return code, nil
	}
	return "", errNoFreeCode
}

func (g *registry) usable(code string) bool {
	if _, live := g.rooms[code]; live {
		return false
	}
	if v, ok := g.closed.Get(code); ok {
		closedAt := v.(time.Time)
		if time.Since(closedAt) < g.cooldown {
			return false
		}
		g.closed.Remove(code)
	}
	return true
}

// create registers a new lobby under a fresh code.
func (g *registry) create(hostConnID, hostKey string) (*Room, error) {
	code, err := g.allocate()
	if err != nil {
		return nil, err
	}
	room := &Room{
		Code:          code,
		HostConnID:    hostConnID,
		HostKey:       hostKey,
		HostConnected: true,
		Phase:         PhaseLobby,
		Players:       make([]*Player, 0, 8),
	}
	g.rooms[code] = room
	return room, nil
}

// remove drops the room and records its code for the cooldown window.
func (g *registry) remove(code string) {
	if _, ok := g.rooms[code]; !ok {
		return
	}
	delete(g.rooms, code)
	g.closed.Add(code, time.Now())
}
