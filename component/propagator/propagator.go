// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package propagator registers the W3C and B3 context propagators
// under the names the file format uses for them.
package propagator

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel/propagation"
)

func init() {
	registry.Register(registry.KindPropagator, "tracecontext", TraceContext())
	registry.Register(registry.KindPropagator, "baggage", Baggage())
	registry.Register(registry.KindPropagator, "b3", B3(b3.B3SingleHeader))
	registry.Register(registry.KindPropagator, "b3multi", B3(b3.B3MultipleHeader))
}

// TraceContext returns the factory for the W3C Trace Context propagator.
func TraceContext() registry.Factory[propagation.TextMapPropagator] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (propagation.TextMapPropagator, error) {
		return propagation.TraceContext{}, nil
	}
}

// Baggage returns the factory for the W3C Baggage propagator.
func Baggage() registry.Factory[propagation.TextMapPropagator] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (propagation.TextMapPropagator, error) {
		return propagation.Baggage{}, nil
	}
}

// B3 returns the factory for the Zipkin B3 propagator injecting the
// given header encoding.
func B3(encoding b3.Encoding) registry.Factory[propagation.TextMapPropagator] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (propagation.TextMapPropagator, error) {
		return b3.New(b3.WithInjectEncoding(encoding)), nil
	}
}
