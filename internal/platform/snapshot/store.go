package snapshot

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
)

// canonicalAPI sorts map keys so two structurally equal values always encode to the same bytes,
// whatever order the upstream document listed its fields in.
var canonicalAPI = jsoniter.Config{
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// Canonical encodes v into its canonical JSON form.
func Canonical(v any) ([]byte, error) {
	raw, err := canonicalAPI.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode canonical snapshot: %w", err)
	}
	return raw, nil
}

// Equal reports whether a and b have the same canonical encoding.
func Equal(a, b any) (bool, error) {
	left, err := Canonical(a)
	if err != nil {
		return false, err
	}
	right, err := Canonical(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(left, right), nil
}

// ETag formats the fingerprint of an encoded body as a strong HTTP entity tag.
func ETag(body []byte) string {
	return fmt.Sprintf("\"%016x\"", xxhash.Sum64(body))
}

// Keyed values are compared by SnapshotKey instead of by their full encoding,
// so derived fields computed alongside the key do not affect equality.
type Keyed interface {
	SnapshotKey() any
}

// Entry is a consistent read of a store.
type Entry[T any] struct {
	Value     T
	Version   uint64
	UpdatedAt time.Time
}

// Store holds the last accepted value of one resource. Values handed to ReplaceIfChanged
// must not be mutated afterwards.
type Store[T any] struct {
	mu        sync.RWMutex
	value     T
	canonical []byte
	version   uint64
	updatedAt time.Time
	now       func() time.Time
}

// NewStore returns a store serving initial until the first accepted replacement.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		now:   time.Now,
	}
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Store[T]) Entry() Entry[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Entry[T]{
		Value:     s.value,
		Version:   s.version,
		UpdatedAt: s.updatedAt,
	}
}

// ReplaceIfChanged swaps in next when its canonical form differs from the last accepted one.
// It returns false, leaving the store untouched, when the two are identical.
func (s *Store[T]) ReplaceIfChanged(next T) (bool, error) {
	raw, err := Canonical(compareKey(next))
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version > 0 && bytes.Equal(s.canonical, raw) {
		return false, nil
	}

	s.value = next
	s.canonical = raw
	s.version++
	s.updatedAt = s.now()
	return true, nil
}

// Differs reports whether next would be accepted by ReplaceIfChanged right now.
func (s *Store[T]) Differs(next T) (bool, error) {
	raw, err := Canonical(compareKey(next))
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version == 0 || !bytes.Equal(s.canonical, raw), nil
}

func compareKey(v any) any {
	if keyed, ok := v.(Keyed); ok {
		return keyed.SnapshotKey()
	}
	return v
}
