// Package cache provides the freshness-aware read cache behind pulsebar's
// data collectors. Each key holds at most one JSON value with two time
// horizons: StaleAfter, past which the value is still served but flagged
// stale, and ExpireAfter, past which it is treated as a miss. This mirrors
// the stale-time / cache-time split the widgets were designed around, so a
// bar can render last-known data instantly while a refresh is in flight.
package cache

import (
	"container/list"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Freshness classifies a cache read.
type Freshness int

const (
	// Miss means the key is absent or past its expiry horizon.
	Miss Freshness = iota
	// Stale means a value was found but is past its stale horizon; callers
	// should render it and trigger a refresh.
	Stale
	// Fresh means the value is within its stale horizon.
	Fresh
)

// String returns the lowercase name of the freshness level.
func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "miss"
	}
}

// TTL holds the two freshness horizons for an entry. A zero horizon means
// "never" for that transition.
type TTL struct {
	// StaleAfter is how long a value counts as fresh.
	StaleAfter time.Duration

	// ExpireAfter is how long a value is served at all. Must be >=
	// StaleAfter when both are set.
	ExpireAfter time.Duration
}

// StoreConfig holds configuration for a cache Store.
type StoreConfig struct {
	// Dir is the directory path where cache files are stored.
	Dir string

	// MaxSizeMB is the maximum total cache size in megabytes. Default: 10.
	MaxSizeMB int

	// DefaultTTL applies to Put calls that do not specify horizons.
	// Defaults: stale after 1 minute, expire after 1 hour.
	DefaultTTL TTL

	// SweepInterval is how often the background goroutine removes expired
	// entries. Default: 5 minutes.
	SweepInterval time.Duration
}

// Stats holds runtime statistics for a cache Store.
type Stats struct {
	Fresh     int64 // reads served fresh
	Stale     int64 // reads served stale
	Misses    int64
	Evictions int64
	Size      int64
	Entries   int
}

// entryMeta is the JSON structure persisted alongside each cache entry.
type entryMeta struct {
	Key      string `json:"key"`
	Written  int64  `json:"written"`   // UnixNano
	StaleNS  int64  `json:"stale_ns"`  // 0 = never goes stale
	ExpireNS int64  `json:"expire_ns"` // 0 = never expires
	Size     int64  `json:"size"`      // data file size in bytes
}

// lruEntry is the value stored in each list.Element.
type lruEntry struct {
	hash string
	key  string
	size int64
}

// Store is a disk-backed key-value cache with LRU eviction and two-horizon
// freshness. Each entry is stored as two files: {hash}.cache (data) and
// {hash}.meta (JSON metadata). Writes are atomic via temp-file-then-rename.
type Store struct {
	cfg StoreConfig

	mu        sync.Mutex
	lru       *list.List               // front = most recently used
	items     map[string]*list.Element // hash -> *list.Element (*lruEntry)
	curSize   int64
	freshHits int64
	staleHits int64
	misses    int64
	evictions int64

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewStore creates a Store rooted at cfg.Dir, creating the directory if
// needed and rebuilding the LRU index from any entries already on disk.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.DefaultTTL.StaleAfter <= 0 {
		cfg.DefaultTTL.StaleAfter = time.Minute
	}
	if cfg.DefaultTTL.ExpireAfter <= 0 {
		cfg.DefaultTTL.ExpireAfter = time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", cfg.Dir, err)
	}

	s := &Store{
		cfg:   cfg,
		lru:   list.New(),
		items: make(map[string]*list.Element),
		done:  make(chan struct{}),
	}

	if err := s.scanDir(); err != nil {
		return nil, fmt.Errorf("cache: scan directory: %w", err)
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s, nil
}

// Get retrieves the raw bytes for key along with their freshness. Expired
// or missing keys return (nil, Miss). Stale values are returned, not
// dropped; the caller decides whether to refresh.
func (s *Store) Get(key string) ([]byte, Freshness) {
	h := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[h]
	if !ok {
		s.misses++
		return nil, Miss
	}

	meta, err := s.readMeta(h)
	if err != nil {
		s.misses++
		return nil, Miss
	}

	age := time.Since(time.Unix(0, meta.Written))
	if meta.ExpireNS > 0 && age > time.Duration(meta.ExpireNS) {
		s.removeLocked(h, elem)
		s.misses++
		return nil, Miss
	}

	data, err := os.ReadFile(s.dataPath(h))
	if err != nil {
		s.misses++
		return nil, Miss
	}

	s.lru.MoveToFront(elem)
	if meta.StaleNS > 0 && age > time.Duration(meta.StaleNS) {
		s.staleHits++
		return data, Stale
	}
	s.freshHits++
	return data, Fresh
}

// Put stores value under key with the store's default horizons.
func (s *Store) Put(key string, value []byte) error {
	return s.PutWithTTL(key, value, s.cfg.DefaultTTL)
}

// PutWithTTL stores value under key with custom freshness horizons.
func (s *Store) PutWithTTL(key string, value []byte, ttl TTL) error {
	if ttl.StaleAfter > 0 && ttl.ExpireAfter > 0 && ttl.ExpireAfter < ttl.StaleAfter {
		return fmt.Errorf("cache: expire horizon %v before stale horizon %v for %q",
			ttl.ExpireAfter, ttl.StaleAfter, key)
	}

	h := hashKey(key)
	size := int64(len(value))

	meta := entryMeta{
		Key:      key,
		Written:  time.Now().UnixNano(),
		StaleNS:  int64(ttl.StaleAfter),
		ExpireNS: int64(ttl.ExpireAfter),
		Size:     size,
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("cache: marshal meta for %q: %w", key, err)
	}

	if err := atomicWrite(s.dataPath(h), value, s.cfg.Dir); err != nil {
		return fmt.Errorf("cache: write data for %q: %w", key, err)
	}
	if err := atomicWrite(s.metaPath(h), metaBytes, s.cfg.Dir); err != nil {
		_ = os.Remove(s.dataPath(h))
		return fmt.Errorf("cache: write meta for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[h]; ok {
		entry := elem.Value.(*lruEntry)
		s.curSize -= entry.size
		entry.size = size
		s.curSize += size
		s.lru.MoveToFront(elem)
	} else {
		elem := s.lru.PushFront(&lruEntry{hash: h, key: key, size: size})
		s.items[h] = elem
		s.curSize += size
	}

	s.evictLocked()
	return nil
}

// Invalidate marks the entry for key as stale without removing it, so the
// next read reports Stale and triggers a refresh while still serving data.
func (s *Store) Invalidate(key string) error {
	h := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[h]; !ok {
		return nil
	}
	meta, err := s.readMeta(h)
	if err != nil {
		return nil
	}
	// Backdate the stale horizon to one nanosecond: any age exceeds it.
	meta.StaleNS = 1
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("cache: marshal meta for %q: %w", key, err)
	}
	if err := atomicWrite(s.metaPath(h), metaBytes, s.cfg.Dir); err != nil {
		return fmt.Errorf("cache: invalidate %q: %w", key, err)
	}
	return nil
}

// Delete removes a specific entry from the cache.
func (s *Store) Delete(key string) {
	h := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[h]; ok {
		s.removeLocked(h, elem)
	}
}

// Keys returns all non-expired keys in the cache.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for h, elem := range s.items {
		meta, err := s.readMeta(h)
		if err != nil {
			continue
		}
		if s.isExpired(meta) {
			continue
		}
		keys = append(keys, elem.Value.(*lruEntry).key)
	}
	return keys
}

// Clear removes all entries from the cache.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cache: clear read dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".cache") || strings.HasSuffix(name, ".meta") || strings.HasPrefix(name, ".tmp-") {
			_ = os.Remove(filepath.Join(s.cfg.Dir, name))
		}
	}

	s.lru.Init()
	s.items = make(map[string]*list.Element)
	s.curSize = 0
	return nil
}

// Stats returns a snapshot of cache statistics.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Fresh:     s.freshHits,
		Stale:     s.staleHits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      s.curSize,
		Entries:   s.lru.Len(),
	}
}

// Close stops the background sweep goroutine and waits for it to finish.
// Safe to call multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return nil
}

// --- internal helpers ---

func (s *Store) dataPath(hash string) string {
	return filepath.Join(s.cfg.Dir, hash+".cache")
}

func (s *Store) metaPath(hash string) string {
	return filepath.Join(s.cfg.Dir, hash+".meta")
}

func (s *Store) maxBytes() int64 {
	return int64(s.cfg.MaxSizeMB) * 1024 * 1024
}

func (s *Store) readMeta(hash string) (entryMeta, error) {
	var m entryMeta
	data, err := os.ReadFile(s.metaPath(hash))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, err
	}
	return m, nil
}

func (s *Store) isExpired(m entryMeta) bool {
	if m.ExpireNS <= 0 {
		return false
	}
	return time.Since(time.Unix(0, m.Written)) > time.Duration(m.ExpireNS)
}

// removeLocked removes an entry from the LRU and deletes its files.
// Caller must hold s.mu.
func (s *Store) removeLocked(hash string, elem *list.Element) {
	entry := elem.Value.(*lruEntry)
	s.curSize -= entry.size
	s.lru.Remove(elem)
	delete(s.items, hash)
	_ = os.Remove(s.dataPath(hash))
	_ = os.Remove(s.metaPath(hash))
}

// evictLocked removes entries until curSize is within maxBytes: expired
// entries first, then least-recently-used. Caller must hold s.mu.
func (s *Store) evictLocked() {
	maxB := s.maxBytes()
	if s.curSize <= maxB {
		return
	}

	for h, elem := range s.items {
		meta, err := s.readMeta(h)
		if err != nil || s.isExpired(meta) {
			s.removeLocked(h, elem)
			s.evictions++
			if s.curSize <= maxB {
				return
			}
		}
	}

	for s.curSize > maxB && s.lru.Len() > 0 {
		back := s.lru.Back()
		if back == nil {
			break
		}
		s.removeLocked(back.Value.(*lruEntry).hash, back)
		s.evictions++
	}
}

// sweepLoop periodically removes expired entries in the background.
func (s *Store) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

func (s *Store) sweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h, elem := range s.items {
		meta, err := s.readMeta(h)
		if err != nil || s.isExpired(meta) {
			s.removeLocked(h, elem)
		}
	}
}

// scanDir reads existing .meta files and rebuilds the in-memory LRU index.
// Order is arbitrary; the LRU self-corrects as entries are touched.
func (s *Store) scanDir() error {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".meta") {
			continue
		}

		hash := strings.TrimSuffix(name, ".meta")

		if _, err := os.Stat(s.dataPath(hash)); err != nil {
			// Orphaned meta file.
			_ = os.Remove(s.metaPath(hash))
			continue
		}

		meta, err := s.readMeta(hash)
		if err != nil || s.isExpired(meta) {
			_ = os.Remove(s.metaPath(hash))
			_ = os.Remove(s.dataPath(hash))
			continue
		}

		elem := s.lru.PushBack(&lruEntry{hash: hash, key: meta.Key, size: meta.Size})
		s.items[hash] = elem
		s.curSize += meta.Size
	}

	return nil
}

// atomicWrite writes data to path via a temp file in dir and a rename, so
// readers never observe a partial file.
func atomicWrite(path string, data []byte, dir string) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
