// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle tracks shutdown-bearing resources acquired while
// assembling a telemetry runtime and releases them in reverse order.
package lifecycle

import (
	"context"
	"errors"
	"sync"
)

// Hook represents functionality that needs to be performed
// when a resource is released.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the [Hook] interface.
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Shutdowner is implemented by any resource which must be
// explicitly shut down, e.g. exporters, processors and providers.
type Shutdowner interface {
	Shutdown(context.Context) error
}

// Ledger records acquired resources in order. Ownership of a resource
// transfers to the ledger the moment it is tracked: nothing else may
// release it directly.
//
// The zero value is ready to use.
type Ledger struct {
	mu       sync.Mutex
	hooks    []Hook
	released bool
}

// OnShutdown records hook to run when the ledger is shut down.
func (l *Ledger) OnShutdown(hook Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, hook)
}

// Track records the given resource on the ledger and returns it,
// allowing acquisition and tracking to happen in one expression.
func Track[T Shutdowner](l *Ledger, v T) T {
	l.OnShutdown(HookFunc(v.Shutdown))
	return v
}

// Len reports how many resources are currently tracked.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hooks)
}

// Shutdown releases all tracked resources in the reverse of their
// acquisition order, so dependents are torn down before their
// dependencies. Individual release failures do not stop the walk;
// they're collected and returned as a single joined error.
//
// Shutdown is idempotent. Calls after the first return nil immediately.
func (l *Ledger) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return nil
	}
	l.released = true
	hooks := l.hooks
	l.hooks = nil
	l.mu.Unlock()

	errs := make([]error, 0, len(hooks))
	for i := len(hooks) - 1; i >= 0; i-- {
		err := hooks[i].Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
