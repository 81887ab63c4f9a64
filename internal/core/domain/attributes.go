// Package domain defines the core domain models for TraceMesh.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// AttributeStore holds the named attributes of a single span: string
// tags and float64 metrics. Both collections preserve insertion order,
// keep at most one entry per key, and apply last-write-wins semantics.
//
// A store is shared between the goroutine producing the span and the
// exporter reading it at flush time. Tags and metrics are synchronized
// independently, so tag writes never block metric reads. Each
// collection is built lazily on first write and published exactly once
// through a compare-and-swap; concurrent first-writers may each build a
// candidate, but only one publication wins and the losers retry against
// the published collection.
//
// The zero value is ready to use.
//
// @req RQ-0101
// @design DS-0101
type AttributeStore struct {
	tags    atomic.Pointer[collection[string]]
	metrics atomic.Pointer[collection[float64]]
}

// collection is an ordered, mutex-guarded key/value list.
//
// Lookups are linear scans. Spans carry tens of attributes, so the scan
// under lock is cheaper than maintaining an index and keeps enumeration
// order trivially correct.
type collection[V any] struct {
	mu      sync.Mutex
	entries []entry[V]
}

type entry[V any] struct {
	key   string
	value V
}

func (c *collection[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].key == key {
			return c.entries[i].value, true
		}
	}
	var zero V
	return zero, false
}

// set upserts in place so a rewritten key keeps its original position.
func (c *collection[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].key == key {
			c.entries[i].value = value
			return
		}
	}
	c.entries = append(c.entries, entry[V]{key: key, value: value})
}

func (c *collection[V]) unset(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].key == key {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// each invokes visit once per entry, in insertion order, while holding
// the collection lock.
func (c *collection[V]) each(visit func(key string, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		visit(c.entries[i].key, c.entries[i].value)
	}
}

// publish returns the published collection, installing an empty one if
// none exists yet. First successful publication wins; a loser's
// candidate is discarded and the winner's collection returned.
func publish[V any](p *atomic.Pointer[collection[V]]) *collection[V] {
	for {
		if c := p.Load(); c != nil {
			return c
		}
		candidate := &collection[V]{}
		if p.CompareAndSwap(nil, candidate) {
			return candidate
		}
	}
}

// GetTag returns the value stored under key. The second return value
// reports whether the key is present, so an empty stored value is never
// conflated with absence.
func (s *AttributeStore) GetTag(key string) (string, bool) {
	c := s.tags.Load()
	if c == nil {
		return "", false
	}
	return c.get(key)
}

// SetTag stores value under key. An existing key is overwritten in
// place and keeps its original insertion position; a new key is
// appended. Any key is valid, including the empty string.
func (s *AttributeStore) SetTag(key, value string) {
	publish(&s.tags).set(key, value)
}

// UnsetTag removes key from the tag collection. Removing an absent key
// is a no-op.
func (s *AttributeStore) UnsetTag(key string) {
	if c := s.tags.Load(); c != nil {
		c.unset(key)
	}
}

// EnumerateTags invokes visit exactly once per present tag, in
// insertion order. The visitor runs inside the tag collection's
// critical section: it must not block and must not call back into the
// same store.
func (s *AttributeStore) EnumerateTags(visit func(key, value string)) {
	if c := s.tags.Load(); c != nil {
		c.each(visit)
	}
}

// GetMetric returns the metric stored under key and whether it is
// present.
func (s *AttributeStore) GetMetric(key string) (float64, bool) {
	c := s.metrics.Load()
	if c == nil {
		return 0, false
	}
	return c.get(key)
}

// SetMetric stores value under key with the same ordering and
// overwrite rules as SetTag.
func (s *AttributeStore) SetMetric(key string, value float64) {
	publish(&s.metrics).set(key, value)
}

// UnsetMetric removes key from the metric collection.
func (s *AttributeStore) UnsetMetric(key string) {
	if c := s.metrics.Load(); c != nil {
		c.unset(key)
	}
}

// EnumerateMetrics invokes visit exactly once per present metric, in
// insertion order, under the metric collection's lock. The same
// visitor restrictions as EnumerateTags apply.
func (s *AttributeStore) EnumerateMetrics(visit func(key string, value float64)) {
	if c := s.metrics.Load(); c != nil {
		c.each(visit)
	}
}

// Render returns the diagnostic rendering of the store: every tag as
// "key (tag):value," in insertion order, followed by the metrics as
// "key (metric):value" joined by commas with no trailing comma. The
// format appears in diagnostic logs and is a compatibility surface.
//
// Tags and metrics are read under their respective locks one after the
// other, so the result is a lock-serialized view, not a point-in-time
// snapshot.
func (s *AttributeStore) Render() string {
	var b strings.Builder
	s.EnumerateTags(func(key, value string) {
		b.WriteString(key)
		b.WriteString(" (tag):")
		b.WriteString(value)
		b.WriteByte(',')
	})
	first := true
	s.EnumerateMetrics(func(key string, value float64) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(key)
		b.WriteString(" (metric):")
		b.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
	})
	return b.String()
}
