package viewmodel

import (
	"context"
	"errors"
	"eshop-client/pkg/logger"
	"slices"
	"sync"
)

var (
	ErrCommandBusy   = errors.New("command is already running")
	ErrCannotExecute = errors.New("command cannot execute")
)

type commandOptions struct {
	canExecute      func() bool
	allowConcurrent bool
}

type CommandOption func(*commandOptions)

// WithCanExecute gates Execute on fn.
func WithCanExecute(fn func() bool) CommandOption {
	return func(o *commandOptions) { o.canExecute = fn }
}

// AllowConcurrent lets the command start while a previous run is in flight.
func AllowConcurrent() CommandOption {
	return func(o *commandOptions) { o.allowConcurrent = true }
}

// Command binds a user action to an async handler. Unless AllowConcurrent is
// given, a command refuses to start while it is already running.
type Command[A any] struct {
	name string
	run  func(ctx context.Context, arg A) error
	opts commandOptions

	mu        sync.Mutex
	running   int
	observers []func()
}

func NewCommand[A any](name string, run func(ctx context.Context, arg A) error, opts ...CommandOption) *Command[A] {
	c := &Command[A]{name: name, run: run}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

func (c *Command[A]) Name() string { return c.name }

func (c *Command[A]) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running > 0
}

func (c *Command[A]) CanExecute() bool {
	c.mu.Lock()
	busy := c.running > 0 && !c.opts.allowConcurrent
	c.mu.Unlock()
	if busy {
		return false
	}
	return c.opts.canExecute == nil || c.opts.canExecute()
}

// Execute runs the handler and returns its error unchanged.
func (c *Command[A]) Execute(ctx context.Context, arg A) error {
	if c.opts.canExecute != nil && !c.opts.canExecute() {
		return ErrCannotExecute
	}

	c.mu.Lock()
	if c.running > 0 && !c.opts.allowConcurrent {
		c.mu.Unlock()
		return ErrCommandBusy
	}
	c.running++
	c.mu.Unlock()
	c.NotifyCanExecuteChanged()

	defer func() {
		c.mu.Lock()
		c.running--
		c.mu.Unlock()
		c.NotifyCanExecuteChanged()
	}()

	if err := c.run(ctx, arg); err != nil {
		logger.CommandFailed(ctx, c.name, err)
		return err
	}
	return nil
}

// Run executes a command whose argument is irrelevant.
func (c *Command[A]) Run(ctx context.Context) error {
	var zero A
	return c.Execute(ctx, zero)
}

func (c *Command[A]) NotifyCanExecuteChanged() {
	c.mu.Lock()
	obs := slices.Clone(c.observers)
	c.mu.Unlock()
	for _, fn := range obs {
		fn()
	}
}

func (c *Command[A]) OnCanExecuteChanged(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}
