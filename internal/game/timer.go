package game

import (
	"context"
	"time"
)

// TimerFamily names one of the independent timer slots a room can hold.
// Starting a timer in a family replaces that family's previous timer and
// invalidates any fire still in flight from it.
type TimerFamily string

const (
	TimerRoom   TimerFamily = "room"
	TimerQuiz   TimerFamily = "quiz"
	TimerWord   TimerFamily = "word"
	TimerCard   TimerFamily = "card"
	TimerPatent TimerFamily = "patent"
)

type timerKey struct {
	code   string
	family TimerFamily
}

type activeTimer struct {
	gen    uint64
	cancel context.CancelFunc
}

// timerStore tracks the active timer per (room, family) pair, with a
// generation counter so expirations that raced a cancel become no-ops.
// All methods run on the orchestrator loop.
type timerStore struct {
	active map[timerKey]*activeTimer
}

func newTimerStore() *timerStore {
	return &timerStore{active: make(map[timerKey]*activeTimer)}
}

// start arms a timer for the pair and returns its generation. Any
// previous timer for the same pair is cancelled first.
func (s *timerStore) start(code string, family TimerFamily) (uint64, context.Context) {
	key := timerKey{code, family}
	gen := uint64(1)
	if prev, ok := s.active[key]; ok {
		prev.cancel()
		gen = prev.gen + 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.active[key] = &activeTimer{gen: gen, cancel: cancel}
	return gen, ctx
}

// cancel stops the pair's timer if one is armed. The generation is
// bumped so a fire already queued on the loop fails the live check.
func (s *timerStore) cancel(code string, family TimerFamily) {
	key := timerKey{code, family}
	if t, ok := s.active[key]; ok {
		t.cancel()
		t.gen++
	}
}

// live reports whether gen is still the pair's current generation.
func (s *timerStore) live(code string, family TimerFamily, gen uint64) bool {
	t, ok := s.active[timerKey{code, family}]
	return ok && t.gen == gen
}

// cancelAll stops every timer belonging to a room.
func (s *timerStore) cancelAll(code string) {
	for key, t := range s.active {
		if key.code == code {
			t.cancel()
			delete(s.active, key)
		}
	}
}

// StartTimer arms a one-shot timer on the room's family slot. onExpire
// runs on the orchestrator loop, and only if the timer is still the
// family's current generation when it fires.
func (o *Orchestrator) StartTimer(code string, family TimerFamily, d time.Duration, onExpire func()) {
	gen, ctx := o.timers.start(code, family)
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			o.post(func() {
				if o.timers.live(code, family, gen) {
					onExpire()
				}
			})
		case <-ctx.Done():
		}
	}()
}

// StartCountdown arms a timer that also ticks once per second, invoking
// onTick with the remaining whole seconds (duration-1 down to 1) before
// onExpire fires. Both callbacks run on the orchestrator loop under the
// same staleness guard as StartTimer.
func (o *Orchestrator) StartCountdown(code string, family TimerFamily, d time.Duration, onTick func(secondsLeft int), onExpire func()) {
	total := int(d / time.Second)
	if total <= 0 {
		// Nothing to tick; honor the duration as a plain timer.
		o.StartTimer(code, family, d, onExpire)
		return
	}
	gen, ctx := o.timers.start(code, family)
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		left := total
		for {
			select {
			case <-ticker.C:
				left--
				if left <= 0 {
					o.post(func() {
						if o.timers.live(code, family, gen) {
							onExpire()
						}
					})
					return
				}
				remaining := left
				o.post(func() {
					if o.timers.live(code, family, gen) {
						onTick(remaining)
					}
				})
			case <-ctx.Done():
				return
			}
		}
	}()
}

// CancelTimer stops the family's timer for the room, if armed.
func (o *Orchestrator) CancelTimer(code string, family TimerFamily) {
	o.timers.cancel(code, family)
}

// CancelRoomTimers stops every timer the room owns.
func (o *Orchestrator) CancelRoomTimers(code string) {
	o.timers.cancelAll(code)
}
