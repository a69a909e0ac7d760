package navigation

import (
	"context"
	"errors"
	"eshop-client/internal/domain"
	"eshop-client/pkg/logger"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrAtRoot       = errors.New("already at root")
)

// Frame is one screen on the stack.
type Frame struct {
	Route  string
	Params map[string]string
}

// Change is sent to observers after every push or pop.
type Change struct {
	Kind    string // "push" or "pop"
	Current Frame
}

// Stack is an in-memory navigation stack. The root frame is never popped.
type Stack struct {
	mu        sync.Mutex
	frames    []Frame
	observers []func(Change)
}

var _ domain.NavigationService = (*Stack)(nil)

func NewStack(root string) *Stack {
	return &Stack{frames: []Frame{{Route: root}}}
}

func (s *Stack) NavigateTo(ctx context.Context, route string, params map[string]string) error {
	if !slices.Contains(domain.Routes, route) {
		return fmt.Errorf("navigate to %q: %w", route, ErrUnknownRoute)
	}

	frame := Frame{Route: route, Params: params}
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	obs := slices.Clone(s.observers)
	s.mu.Unlock()

	logger.WithContext(ctx).Debug().Str("route", route).Msg("Navigate")
	notify(obs, Change{Kind: "push", Current: frame})
	return nil
}

func (s *Stack) Pop(ctx context.Context) error {
	s.mu.Lock()
	if len(s.frames) <= 1 {
		s.mu.Unlock()
		return ErrAtRoot
	}
	s.frames = s.frames[:len(s.frames)-1]
	current := s.frames[len(s.frames)-1]
	obs := slices.Clone(s.observers)
	s.mu.Unlock()

	logger.WithContext(ctx).Debug().Str("route", current.Route).Msg("Pop")
	notify(obs, Change{Kind: "pop", Current: current})
	return nil
}

// Current returns the top frame.
func (s *Stack) Current() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[len(s.frames)-1]
}

// Routes lists the stack bottom to top.
func (s *Stack) Routes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Route
	}
	return out
}

// Observe registers fn for every stack change.
func (s *Stack) Observe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func notify(obs []func(Change), c Change) {
	for _, fn := range obs {
		fn(c)
	}
}
