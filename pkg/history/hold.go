package history

import (
	"sync/atomic"
	"time"
)

// HoldToken identifies one hold for release. Tokens are never reused.
type HoldToken uint64

var nextHold uint64

// heldState pins a copy of a series while the expanded panel inspects it.
// Reference counted: the view stays pinned until every holder releases.
type heldState struct {
	pinnedTimes   []time.Time
	pinnedValues  []float64
	pendingTimes  []time.Time
	pendingValues []float64
	count         int
	tokens        map[HoldToken]bool
}

// Hold pins the named series (all series when none are named) so reads
// return a stable view while new points buffer in the background. Returns
// the token to pass to Release.
func (s *Store) Hold(names ...string) HoldToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := HoldToken(atomic.AddUint64(&nextHold, 1))
	if len(names) == 0 {
		names = make([]string, 0, len(s.series))
		for name := range s.series {
			names = append(names, name)
		}
	}
	for _, name := range names {
		ser, ok := s.series[name]
		if !ok {
			continue
		}
		h, exists := s.held[name]
		if !exists {
			h = &heldState{
				pinnedTimes:  copyTimes(ser.times),
				pinnedValues: copyValues(ser.values),
				tokens:       make(map[HoldToken]bool),
			}
			s.held[name] = h
		}
		h.count++
		h.tokens[token] = true
	}
	return token
}

// Release drops the hold identified by token. When a series' last hold is
// released, points buffered during the hold are appended to the live series.
func (s *Store) Release(token HoldToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, h := range s.held {
		if !h.tokens[token] {
			continue
		}
		delete(h.tokens, token)
		h.count--
		if h.count > 0 {
			continue
		}
		if len(h.pendingTimes) > 0 {
			ser := s.getOrCreate(name)
			ser.times = append(ser.times, h.pendingTimes...)
			ser.values = append(ser.values, h.pendingValues...)
			s.capLocked(ser)
		}
		delete(s.held, name)
	}
}

// Held reports whether the named series currently has a pinned view.
func (s *Store) Held(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.held[name]
	return ok && h.count > 0
}
