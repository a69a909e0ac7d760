package viewmodel

import (
	"slices"
	"sync"
)

type CollectionAction int

const (
	ActionAdd CollectionAction = iota
	ActionRemove
	ActionReset
)

func (a CollectionAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReset:
		return "reset"
	}
	return "unknown"
}

// CollectionChange describes one mutation. Index is -1 for resets.
type CollectionChange[T any] struct {
	Action CollectionAction
	Index  int
	Item   T
}

// ObservableCollection is an ordered list that reports every mutation to
// its observers. Safe for concurrent use.
type ObservableCollection[T any] struct {
	mu        sync.RWMutex
	items     []T
	observers []func(CollectionChange[T])
}

func NewObservableCollection[T any]() *ObservableCollection[T] {
	return &ObservableCollection[T]{}
}

// Items returns a snapshot.
func (c *ObservableCollection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *ObservableCollection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Add appends item and returns its index.
func (c *ObservableCollection[T]) Add(item T) int {
	c.mu.Lock()
	c.items = append(c.items, item)
	idx := len(c.items) - 1
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	emit(obs, CollectionChange[T]{Action: ActionAdd, Index: idx, Item: item})
	return idx
}

// Insert puts item at index, clamped to the current bounds.
func (c *ObservableCollection[T]) Insert(index int, item T) {
	c.mu.Lock()
	index = max(0, min(index, len(c.items)))
	c.items = slices.Insert(c.items, index, item)
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	emit(obs, CollectionChange[T]{Action: ActionAdd, Index: index, Item: item})
}

// RemoveFunc removes the first element for which match is true.
func (c *ObservableCollection[T]) RemoveFunc(match func(T) bool) (T, int, bool) {
	c.mu.Lock()
	idx := slices.IndexFunc(c.items, match)
	if idx < 0 {
		c.mu.Unlock()
		var zero T
		return zero, -1, false
	}
	removed := c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	emit(obs, CollectionChange[T]{Action: ActionRemove, Index: idx, Item: removed})
	return removed, idx, true
}

// RemoveAt removes the element at index if it exists.
func (c *ObservableCollection[T]) RemoveAt(index int) (T, bool) {
	c.mu.Lock()
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	removed := c.items[index]
	c.items = slices.Delete(c.items, index, index+1)
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	emit(obs, CollectionChange[T]{Action: ActionRemove, Index: index, Item: removed})
	return removed, true
}

func (c *ObservableCollection[T]) Clear() {
	c.ReloadData(nil)
}

// ReloadData replaces the contents wholesale with a single reset notification.
func (c *ObservableCollection[T]) ReloadData(items []T) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	emit(obs, CollectionChange[T]{Action: ActionReset, Index: -1})
}

// Observe registers fn for every mutation.
func (c *ObservableCollection[T]) Observe(fn func(CollectionChange[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func emit[T any](obs []func(CollectionChange[T]), change CollectionChange[T]) {
	for _, fn := range obs {
		fn(change)
	}
}
