package viewmodel

import (
	"context"
	"sync"
)

// Property names raised through OnPropertyChanged.
const (
	PropIsBusy          = "IsBusy"
	PropBadgeCount      = "BadgeCount"
	PropTotal           = "Total"
	PropSelectedProduct = "SelectedProduct"
	PropBrand           = "Brand"
	PropType            = "Type"
	PropIsFilter        = "IsFilter"
)

type PropertyChanged struct {
	Name string
}

// Base carries the busy flag and property change fan-out shared by all
// view-models. The zero value is ready to use.
type Base struct {
	mu        sync.Mutex
	busy      bool
	nextID    uint64
	observers map[uint64]func(PropertyChanged)
}

func (b *Base) IsBusy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

func (b *Base) setBusy(v bool) {
	b.mu.Lock()
	changed := b.busy != v
	b.busy = v
	b.mu.Unlock()
	if changed {
		b.OnPropertyChanged(PropIsBusy)
	}
}

// IsBusyFor runs fn with IsBusy set and always clears it afterwards.
func (b *Base) IsBusyFor(ctx context.Context, fn func(ctx context.Context) error) error {
	b.setBusy(true)
	defer b.setBusy(false)
	return fn(ctx)
}

// OnPropertyChanged notifies observers, one call per name. Observers run
// outside the lock and may read the view-model.
func (b *Base) OnPropertyChanged(names ...string) {
	b.mu.Lock()
	obs := make([]func(PropertyChanged), 0, len(b.observers))
	for id := uint64(1); id <= b.nextID; id++ {
		if fn, ok := b.observers[id]; ok {
			obs = append(obs, fn)
		}
	}
	b.mu.Unlock()

	for _, name := range names {
		for _, fn := range obs {
			fn(PropertyChanged{Name: name})
		}
	}
}

// Subscribe registers fn for property changes and returns its cancel func.
func (b *Base) Subscribe(fn func(PropertyChanged)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.observers == nil {
		b.observers = make(map[uint64]func(PropertyChanged))
	}
	b.nextID++
	id := b.nextID
	b.observers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.observers, id)
	}
}
