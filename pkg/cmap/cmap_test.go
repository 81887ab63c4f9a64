package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	m := New[string, int]()
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if len(m.shards) != DefaultShardCount {
		t.Errorf("shard count = %d, want %d", len(m.shards), DefaultShardCount)
	}
}

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},  // invalid → default
		{-1, DefaultShardCount}, // invalid → default
		{3, DefaultShardCount},  // not power of 2 → default
		{1, 1},
		{8, 8},
		{32, 32},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[string, int](tt.input)
			if len(m.shards) != tt.expected {
				t.Errorf("NewWithShards(%d) shard count = %d, want %d",
					tt.input, len(m.shards), tt.expected)
			}
		})
	}
}

func TestSetAndGet(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)
	m.Set("key2", 200)

	val, ok := m.Get("key1")
	if !ok || val != 100 {
		t.Errorf("Get(key1) = (%d, %v), want (100, true)", val, ok)
	}

	val, ok = m.Get("nonexistent")
	if ok {
		t.Errorf("Get(nonexistent) = (%d, %v), want (0, false)", val, ok)
	}
}

func TestDelete(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)
	m.Delete("key1")

	if m.Has("key1") {
		t.Error("key1 should not exist after deletion")
	}

	// Delete of a non-existent key should not panic
	m.Delete("nonexistent")
}

func TestPop(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)

	val, ok := m.Pop("key1")
	if !ok || val != 100 {
		t.Errorf("Pop(key1) = (%d, %v), want (100, true)", val, ok)
	}
	if m.Has("key1") {
		t.Error("key1 should be gone after Pop")
	}

	if _, ok := m.Pop("key1"); ok {
		t.Error("second Pop should report absence")
	}
}

func TestGetOrSet(t *testing.T) {
	m := New[string, int]()

	val, existed := m.GetOrSet("key1", 100)
	if existed || val != 100 {
		t.Errorf("GetOrSet first = (%d, %v), want (100, false)", val, existed)
	}

	val, existed = m.GetOrSet("key1", 999)
	if !existed || val != 100 {
		t.Errorf("GetOrSet second = (%d, %v), want (100, true)", val, existed)
	}
}

func TestCountAndClear(t *testing.T) {
	m := New[string, int]()

	for i := 0; i < 50; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}
	if m.Count() != 50 {
		t.Errorf("Count() = %d, want 50", m.Count())
	}

	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", m.Count())
	}
}

func TestRange(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	sum := 0
	m.Range(func(_ string, v int) bool {
		sum += v
		return true
	})
	if sum != 6 {
		t.Errorf("sum over Range = %d, want 6", sum)
	}

	// Early stop
	visited := 0
	m.Range(func(_ string, _ int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d entries after early stop, want 1", visited)
	}
}

func TestKeys(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	keys := m.Keys()
	if len(keys) != 2 {
		t.Errorf("Keys() returned %d keys, want 2", len(keys))
	}
}

func TestIntKey(t *testing.T) {
	m := New[int, string]()
	m.Set(42, "answer")

	val, ok := m.Get(42)
	if !ok || val != "answer" {
		t.Errorf("Get(42) = (%q, %v), want (answer, true)", val, ok)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[string, int]()

	const (
		goroutines = 8
		operations = 1000
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < operations; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				m.Set(key, i)
				if v, ok := m.Get(key); !ok || v != i {
					t.Errorf("Get(%s) = (%d, %v), want (%d, true)", key, v, ok, i)
				}
			}
		}(g)
	}
	wg.Wait()

	if m.Count() != goroutines*operations {
		t.Errorf("Count() = %d, want %d", m.Count(), goroutines*operations)
	}
}
