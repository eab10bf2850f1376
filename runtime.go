// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelkit

import (
	"context"

	"github.com/treelinelabs/otelkit/lifecycle"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Runtime is a fully assembled telemetry runtime. Signals which were
// not configured in the document are represented by no-op providers,
// so every accessor always returns a usable value.
type Runtime struct {
	propagator     propagation.TextMapPropagator
	loggerProvider log.LoggerProvider
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	ledger *lifecycle.Ledger
}

func newInertRuntime() *Runtime {
	return &Runtime{
		propagator:     defaultPropagator(),
		loggerProvider: lognoop.NewLoggerProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		ledger:         new(lifecycle.Ledger),
	}
}

// TextMapPropagator returns the assembled propagator.
func (r *Runtime) TextMapPropagator() propagation.TextMapPropagator {
	return r.propagator
}

// LoggerProvider returns the assembled logging provider.
func (r *Runtime) LoggerProvider() log.LoggerProvider {
	return r.loggerProvider
}

// TracerProvider returns the assembled tracing provider.
func (r *Runtime) TracerProvider() trace.TracerProvider {
	return r.tracerProvider
}

// MeterProvider returns the assembled metering provider.
func (r *Runtime) MeterProvider() metric.MeterProvider {
	return r.meterProvider
}

// Install registers the runtime's propagator and providers as the
// process-wide OTel globals.
func (r *Runtime) Install() {
	otel.SetTextMapPropagator(r.propagator)
	otel.SetTracerProvider(r.tracerProvider)
	otel.SetMeterProvider(r.meterProvider)
	global.SetLoggerProvider(r.loggerProvider)
}

// Shutdown releases every resource acquired during assembly in the
// reverse of its acquisition order, collecting individual release
// failures into a single joined error.
//
// Shutdown is idempotent: calling it a second time, e.g. from both an
// explicit shutdown path and a process-exit hook, is a no-op.
func (r *Runtime) Shutdown(ctx context.Context) error {
	return r.ledger.Shutdown(ctx)
}
