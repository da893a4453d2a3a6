// Package memo provides a small concurrency-safe memo table with
// insertion-order eviction.
package memo

import "sync"

// FIFO is a mutex-guarded map bounded by capacity. When full, the oldest
// inserted key is evicted. Capacity <= 0 means unbounded.
type FIFO[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]V
	order    []K
}

// NewFIFO creates a memo table holding at most capacity entries.
func NewFIFO[K comparable, V any](capacity int) *FIFO[K, V] {
	return &FIFO[K, V]{capacity: capacity, items: make(map[K]V)}
}

// Get returns the value stored for key.
func (f *FIFO[K, V]) Get(key K) (V, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

// Put stores value for key. Overwriting an existing key keeps its position.
func (f *FIFO[K, V]) Put(key K, value V) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[key]; ok {
		f.items[key] = value
		return
	}
	if f.capacity > 0 {
		for len(f.order) >= f.capacity {
			oldest := f.order[0]
			f.order = f.order[1:]
			delete(f.items, oldest)
		}
	}
	f.items[key] = value
	f.order = append(f.order, key)
}

// GetOrCompute returns the stored value or computes, stores and returns it.
// compute runs outside the lock; concurrent callers may compute the same key twice.
func (f *FIFO[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := f.Get(key); ok {
		return v
	}
	v := compute()
	f.Put(key, v)
	return v
}

// Len returns the number of stored entries.
func (f *FIFO[K, V]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Clear drops every entry.
func (f *FIFO[K, V]) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = make(map[K]V)
	f.order = nil
}
