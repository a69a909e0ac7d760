package events

import (
	"context"
	"eshop-client/internal/domain"
	"eshop-client/pkg/logger"
	"sync"
	"time"
)

// Event is anything published on the bus. Name routes it to subscribers.
type Event interface {
	EventName() string
}

// ProductAdded is published after a catalog product reached the remote basket.
type ProductAdded struct {
	Item       domain.BasketItem `json:"item"`
	BadgeCount int               `json:"badgeCount"`
	OccurredAt time.Time         `json:"occurredAt"`
}

func (ProductAdded) EventName() string { return domain.EventProductAdded }

type handler struct {
	id uint64
	fn func(ctx context.Context, ev Event)
}

// Bus is an in-process, synchronous publish/subscribe channel. Handlers run
// on the publisher's goroutine in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]handler)}
}

// Publish delivers ev to every current subscriber of its name. A panicking
// handler is logged and does not stop delivery to the rest.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.mu.RLock()
	hs := append([]handler(nil), b.handlers[ev.EventName()]...)
	b.mu.RUnlock()

	logger.WithContext(ctx).Debug().
		Str("event", ev.EventName()).
		Int("subscribers", len(hs)).
		Msg("Publish")

	for _, h := range hs {
		b.deliver(ctx, h, ev)
	}
}

func (b *Bus) deliver(ctx context.Context, h handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Error().
				Str("event", ev.EventName()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	h.fn(ctx, ev)
}

func (b *Bus) subscribe(name string, fn func(ctx context.Context, ev Event)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], handler{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			hs := b.handlers[name]
			for i, h := range hs {
				if h.id == id {
					b.handlers[name] = append(hs[:i:i], hs[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribe registers fn for events of type T and returns the function that
// cancels the subscription.
func Subscribe[T Event](b *Bus, fn func(ctx context.Context, ev T)) (cancel func()) {
	var zero T
	return b.subscribe(zero.EventName(), func(ctx context.Context, ev Event) {
		if typed, ok := ev.(T); ok {
			fn(ctx, typed)
		}
	})
}
