// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package registry maps (capability kind, name) pairs to component
// factories.
//
// Collaborator packages register factories before assembly runs,
// typically from an init func so a blank import is all that's needed
// to make a component available:
//
//	import _ "github.com/treelinelabs/otelkit/component/otlp"
//
// The assembler only ever resolves; it never registers components of
// its own.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/internal/try"
	"github.com/treelinelabs/otelkit/lifecycle"
)

// Kind identifies an extension point category.
type Kind string

const (
	KindPropagator         Kind = "propagator"
	KindSampler            Kind = "sampler"
	KindSpanProcessor      Kind = "span_processor"
	KindSpanExporter       Kind = "span_exporter"
	KindLogRecordProcessor Kind = "log_record_processor"
	KindLogRecordExporter  Kind = "log_record_exporter"
	KindMetricReader       Kind = "metric_reader"
	KindMetricExporter     Kind = "metric_exporter"
	KindResourceDetector   Kind = "resource_detector"
)

// Scope carries the assembly-wide collaborators a factory may need:
// the registry itself, so factories can resolve nested components,
// and the ledger every shutdown-bearing resource must be handed to.
type Scope struct {
	Registry *Registry
	Ledger   *lifecycle.Ledger
}

// Factory builds a component instance of type T from its declarative
// properties. Any resource the factory creates whose lifecycle
// requires explicit shutdown must be handed to scope.Ledger before
// the factory returns.
type Factory[T any] func(ctx context.Context, scope *Scope, props document.Properties) (T, error)

type key struct {
	kind Kind
	name string
}

// Registry is a table of component factories keyed by (kind, name).
// Registration happens before assembly begins; resolution is safe for
// concurrent use by multiple simultaneous assemblies.
type Registry struct {
	mu        sync.RWMutex
	factories map[key]any
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		factories: make(map[key]any),
	}
}

// Default is the process-wide registry which [Register] and the
// shipped component packages use.
var Default = New()

// AlreadyRegisteredError occurs when a second factory is registered
// under a (kind, name) pair which is already taken.
type AlreadyRegisteredError struct {
	Kind Kind
	Name string
}

// Error implements the [builtin.error] interface.
func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s factory already registered under name %q", e.Kind, e.Name)
}

// NotRegisteredError occurs when a document references a component
// for which no factory has been registered.
type NotRegisteredError struct {
	Kind Kind
	Name string
}

// Error implements the [builtin.error] interface.
func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("no %s factory registered under name %q", e.Kind, e.Name)
}

// MismatchedKindError occurs when the factory registered under a
// (kind, name) pair does not produce the component type the resolver
// asked for.
type MismatchedKindError struct {
	Kind Kind
	Name string
}

// Error implements the [builtin.error] interface.
func (e MismatchedKindError) Error() string {
	return fmt.Sprintf("%s factory registered under name %q produces an unexpected component type", e.Kind, e.Name)
}

// BuildError occurs when a resolved factory rejects its own
// properties or otherwise fails to build its component.
type BuildError struct {
	Kind  Kind
	Name  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e BuildError) Error() string {
	return fmt.Sprintf("failed to build %s %q: %s", e.Kind, e.Name, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BuildError) Unwrap() error {
	return e.Cause
}

// RegisterIn records f as the factory for the given (kind, name) pair
// in reg. A second registration for the same pair fails with
// [AlreadyRegisteredError].
func RegisterIn[T any](reg *Registry, kind Kind, name string, f Factory[T]) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	k := key{kind: kind, name: name}
	if _, ok := reg.factories[k]; ok {
		return AlreadyRegisteredError{Kind: kind, Name: name}
	}
	reg.factories[k] = f
	return nil
}

// Register records f in the [Default] registry. It panics on a
// duplicate registration since that is a programming error in the
// registering package, not a configuration error.
func Register[T any](kind Kind, name string, f Factory[T]) {
	err := RegisterIn(Default, kind, name, f)
	if err != nil {
		panic(err)
	}
}

// Resolve looks up the factory registered under (kind, name) in
// scope.Registry and invokes it with the given properties. A
// panicking factory is reported as a [BuildError] rather than
// unwinding the assembly.
func Resolve[T any](ctx context.Context, scope *Scope, kind Kind, name string, props document.Properties) (T, error) {
	var zero T

	scope.Registry.mu.RLock()
	raw, ok := scope.Registry.factories[key{kind: kind, name: name}]
	scope.Registry.mu.RUnlock()
	if !ok {
		return zero, NotRegisteredError{Kind: kind, Name: name}
	}

	f, ok := raw.(Factory[T])
	if !ok {
		return zero, MismatchedKindError{Kind: kind, Name: name}
	}

	v, err := invoke(ctx, f, scope, props)
	if err != nil {
		return zero, BuildError{Kind: kind, Name: name, Cause: err}
	}
	return v, nil
}

func invoke[T any](ctx context.Context, f Factory[T], scope *Scope, props document.Properties) (v T, err error) {
	defer try.Recover(&err)

	return f(ctx, scope, props)
}
