// Package history keeps short rolling time-series of collector readings for
// the expanded panel's sparklines. Values and timestamps live in parallel
// slices sharing one time axis, which keeps rendering scans cache-friendly
// and lets each series carry its own retention.
package history

import (
	"sort"
	"sync"
	"time"
)

// Config controls a Store.
type Config struct {
	// Retention is how long points are kept. Zero means 10 minutes.
	Retention time.Duration

	// MaxPoints bounds each series. Zero means 600.
	MaxPoints int
}

func (c Config) defaults() Config {
	if c.Retention == 0 {
		c.Retention = 10 * time.Minute
	}
	if c.MaxPoints == 0 {
		c.MaxPoints = 600
	}
	return c
}

type series struct {
	times  []time.Time
	values []float64
}

// Snapshot is an immutable copy of a series, safe to read without a lock.
type Snapshot struct {
	Name   string
	Times  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

// Min returns the smallest value, or 0 when empty.
func (s *Snapshot) Min() float64 {
	if s.Len() == 0 {
		return 0
	}
	m := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest value, or 0 when empty.
func (s *Snapshot) Max() float64 {
	if s.Len() == 0 {
		return 0
	}
	m := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Last returns the most recent value, or 0 when empty.
func (s *Snapshot) Last() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Store is a rolling set of named series. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	cfg    Config
	series map[string]*series
	held   map[string]*heldState
}

// NewStore creates an empty Store.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:    cfg.defaults(),
		series: make(map[string]*series),
		held:   make(map[string]*heldState),
	}
}

// Add appends one point to the named series, creating it on first use.
// Points arriving while the series is held are buffered until release.
func (s *Store) Add(name string, t time.Time, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.held[name]; ok && h.count > 0 {
		h.pendingTimes = append(h.pendingTimes, t)
		h.pendingValues = append(h.pendingValues, v)
		return
	}

	ser := s.getOrCreate(name)
	ser.times = append(ser.times, t)
	ser.values = append(ser.values, v)
	s.capLocked(ser)
}

// Recent returns the last n points of the named series.
func (s *Store) Recent(name string, n int) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	times, values, ok := s.viewLocked(name)
	if !ok {
		return nil, false
	}
	if n > len(values) {
		n = len(values)
	}
	start := len(values) - n
	return &Snapshot{
		Name:   name,
		Times:  copyTimes(times[start:]),
		Values: copyValues(values[start:]),
	}, true
}

// Window returns the points of the named series from the last d.
func (s *Store) Window(name string, d time.Duration) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	times, values, ok := s.viewLocked(name)
	if !ok {
		return nil, false
	}
	cutoff := time.Now().Add(-d)
	lo := sort.Search(len(times), func(i int) bool {
		return times[i].After(cutoff)
	})
	return &Snapshot{
		Name:   name,
		Times:  copyTimes(times[lo:]),
		Values: copyValues(values[lo:]),
	}, true
}

// Latest returns the most recent point of the named series.
func (s *Store) Latest(name string) (time.Time, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	times, values, ok := s.viewLocked(name)
	if !ok || len(values) == 0 {
		return time.Time{}, 0, false
	}
	n := len(values)
	return times[n-1], values[n-1], true
}

// Names returns all series names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series))
	for name := range s.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prune drops points older than the retention horizon. Held series are
// skipped; their pinned view must not shift underneath the panel.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.cfg.Retention)
	removed := 0
	for name, ser := range s.series {
		if h, ok := s.held[name]; ok && h.count > 0 {
			continue
		}
		idx := sort.Search(len(ser.times), func(i int) bool {
			return ser.times[i].After(cutoff)
		})
		if idx == 0 {
			continue
		}
		removed += idx
		// Compact when dropping the majority so the backing array is
		// released rather than pinned by the reslice.
		if idx > len(ser.times)/2 {
			ser.times = append([]time.Time(nil), ser.times[idx:]...)
			ser.values = append([]float64(nil), ser.values[idx:]...)
		} else {
			ser.times = ser.times[idx:]
			ser.values = ser.values[idx:]
		}
	}
	return removed
}

// viewLocked resolves the readable time/value slices for name, preferring
// the pinned view of a held series. Caller holds at least the read lock.
func (s *Store) viewLocked(name string) ([]time.Time, []float64, bool) {
	if h, ok := s.held[name]; ok && h.count > 0 {
		return h.pinnedTimes, h.pinnedValues, true
	}
	ser, ok := s.series[name]
	if !ok {
		return nil, nil, false
	}
	return ser.times, ser.values, true
}

func (s *Store) getOrCreate(name string) *series {
	ser, ok := s.series[name]
	if !ok {
		ser = &series{}
		s.series[name] = ser
	}
	return ser
}

func (s *Store) capLocked(ser *series) {
	if len(ser.values) > s.cfg.MaxPoints {
		excess := len(ser.values) - s.cfg.MaxPoints
		ser.times = ser.times[excess:]
		ser.values = ser.values[excess:]
	}
}

func copyTimes(src []time.Time) []time.Time {
	if len(src) == 0 {
		return nil
	}
	dst := make([]time.Time, len(src))
	copy(dst, src)
	return dst
}

func copyValues(src []float64) []float64 {
	if len(src) == 0 {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}
