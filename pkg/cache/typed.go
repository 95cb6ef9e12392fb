package cache

import (
	"encoding/json"
	"fmt"
)

// GetTyped deserializes a cached JSON value into T. A value that cannot be
// decoded counts as a miss: stale schema on disk behaves like no data.
func GetTyped[T any](s *Store, key string) (T, Freshness) {
	var zero T
	data, f := s.Get(key)
	if f == Miss {
		return zero, Miss
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, Miss
	}
	return v, f
}

// PutTyped serializes value as JSON and stores it with the default horizons.
func PutTyped[T any](s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal typed value for %q: %w", key, err)
	}
	return s.Put(key, data)
}

// PutTypedWithTTL serializes value as JSON and stores it with custom horizons.
func PutTypedWithTTL[T any](s *Store, key string, value T, ttl TTL) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal typed value for %q: %w", key, err)
	}
	return s.PutWithTTL(key, data, ttl)
}
