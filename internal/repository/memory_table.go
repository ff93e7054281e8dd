package repository

import "sync"

// memTable is a mutex-guarded map with a monotonically increasing id counter.
// Rows are copied on the way in and out so callers never alias stored state.
type memTable[T any] struct {
	mu     sync.RWMutex
	lastID int64
	order  []int64
	rows   map[int64]T
	clone  func(T) T
}

func newMemTable[T any](clone func(T) T) *memTable[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &memTable[T]{rows: make(map[int64]T), clone: clone}
}

// list returns rows in insertion order.
func (t *memTable[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep != nil && !keep(row) {
			continue
		}
		out = append(out, t.clone(row))
	}
	return out
}

func (t *memTable[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(row), true
}

func (t *memTable[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return t.clone(row), true
		}
	}
	var zero T
	return zero, false
}

// insert assigns the next id through setID and stores a copy of the row.
func (t *memTable[T]) insert(row T, setID func(*T, int64)) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastID++
	setID(&row, t.lastID)
	t.rows[t.lastID] = t.clone(row)
	t.order = append(t.order, t.lastID)
	return row
}

// update runs apply on a copy of the stored row and swaps it in. Unknown ids
// are reported as absent and nothing is written.
func (t *memTable[T]) update(id int64, apply func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	row = t.clone(row)
	apply(&row)
	t.rows[id] = row
	return t.clone(row), true
}

func (t *memTable[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}
