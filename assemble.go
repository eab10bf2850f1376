// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelkit

import (
	"context"
	"errors"
	"regexp"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/otel/propagation"
)

// Exactly 0.4, or 1.0 optionally suffixed with an rc number. Lexical
// neighbours like "0.40" and "1.1" are rejected, so both alternatives
// are fully anchored.
var fileFormatPattern = regexp.MustCompile(`^(0\.4|1\.0(-rc\.\d+)?)$`)

// Option configures the behaviour of [Assemble].
type Option func(*options)

type options struct {
	registry *registry.Registry
}

// WithRegistry resolves components out of reg instead of
// [registry.Default]. Mostly useful for tests which need an isolated
// component table.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// Assemble builds a [Runtime] from the given parsed document.
//
// Assembly is single-pass: file format gate, disabled short-circuit,
// propagator, resource, then the logging, tracing and metering signals
// in that order. All three signals report against the same resolved
// resource. A failure at any stage releases everything acquired so far
// in reverse order and returns the original error, with any release
// failure joined in as a secondary error; the caller never receives a
// half-built runtime.
//
// The document is only read, never mutated, so concurrent assemblies
// of the same document are safe.
func Assemble(ctx context.Context, doc *document.Document, opts ...Option) (*Runtime, error) {
	o := options{
		registry: registry.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var fileFormat string
	if doc != nil {
		fileFormat = doc.FileFormat
	}
	if !fileFormatPattern.MatchString(fileFormat) {
		return nil, UnsupportedFileFormatError{FileFormat: fileFormat}
	}

	// An operator toggling "disabled" gets a functioning but inert
	// runtime. Nothing is resolved or validated past this point,
	// matching the file format's reference behaviour.
	if doc.IsDisabled() {
		return newInertRuntime(), nil
	}

	ledger := new(lifecycle.Ledger)
	scope := &registry.Scope{
		Registry: o.registry,
		Ledger:   ledger,
	}

	rt, err := assemble(ctx, scope, doc)
	if err == nil {
		return rt, nil
	}

	shutdownErr := ledger.Shutdown(ctx)
	if shutdownErr == nil {
		return nil, err
	}
	return nil, errors.Join(err, shutdownErr)
}

func assemble(ctx context.Context, scope *registry.Scope, doc *document.Document) (*Runtime, error) {
	prop, err := assemblePropagator(ctx, scope, doc.Propagator)
	if err != nil {
		return nil, err
	}

	res, err := assembleResource(ctx, scope, doc.Resource)
	if err != nil {
		return nil, err
	}

	lp, err := assembleLoggerProvider(ctx, scope, doc.LoggerProvider, doc.AttributeLimits, res)
	if err != nil {
		return nil, err
	}

	tp, err := assembleTracerProvider(ctx, scope, doc.TracerProvider, doc.AttributeLimits, res)
	if err != nil {
		return nil, err
	}

	mp, err := assembleMeterProvider(ctx, scope, doc.MeterProvider, res)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		propagator:     prop,
		loggerProvider: lp,
		tracerProvider: tp,
		meterProvider:  mp,
		ledger:         scope.Ledger,
	}, nil
}

func assemblePropagator(ctx context.Context, scope *registry.Scope, spec *document.Propagator) (propagation.TextMapPropagator, error) {
	if spec == nil || len(spec.Composite) == 0 {
		return defaultPropagator(), nil
	}

	props := make([]propagation.TextMapPropagator, len(spec.Composite))
	for i, c := range spec.Composite {
		p, err := registry.Resolve[propagation.TextMapPropagator](ctx, scope, registry.KindPropagator, c.Name, c.Properties)
		if err != nil {
			return nil, err
		}
		props[i] = p
	}
	return propagation.NewCompositeTextMapPropagator(props...), nil
}

func defaultPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}
