// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package noop registers exporters which discard all telemetry. They
// are useful as pipeline placeholders in tests and in environments
// where a collector is not yet available.
package noop

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	registry.Register(registry.KindSpanExporter, "noop", Span())
	registry.Register(registry.KindMetricExporter, "noop", Metric())
	registry.Register(registry.KindLogRecordExporter, "noop", Log())
}

// SpanExporter discards all spans.
type SpanExporter struct{}

// Span returns the factory for [SpanExporter].
func Span() registry.Factory[sdktrace.SpanExporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanExporter, error) {
		return SpanExporter{}, nil
	}
}

// ExportSpans implements the [sdktrace.SpanExporter] interface.
func (e SpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	return nil
}

// Shutdown implements the [sdktrace.SpanExporter] interface.
func (e SpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// MetricExporter discards all metrics.
type MetricExporter struct{}

// Metric returns the factory for [MetricExporter].
func Metric() registry.Factory[sdkmetric.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Exporter, error) {
		return MetricExporter{}, nil
	}
}

// Temporality implements the [sdkmetric.Exporter] interface.
func (e MetricExporter) Temporality(kind sdkmetric.InstrumentKind) metricdata.Temporality {
	return metricdata.CumulativeTemporality
}

// Aggregation implements the [sdkmetric.Exporter] interface.
func (e MetricExporter) Aggregation(kind sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(kind)
}

// Export implements the [sdkmetric.Exporter] interface.
func (e MetricExporter) Export(ctx context.Context, rm *metricdata.ResourceMetrics) error {
	return nil
}

// ForceFlush implements the [sdkmetric.Exporter] interface.
func (e MetricExporter) ForceFlush(ctx context.Context) error {
	return nil
}

// Shutdown implements the [sdkmetric.Exporter] interface.
func (e MetricExporter) Shutdown(ctx context.Context) error {
	return nil
}

// LogExporter discards all log records.
type LogExporter struct{}

// Log returns the factory for [LogExporter].
func Log() registry.Factory[sdklog.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Exporter, error) {
		return LogExporter{}, nil
	}
}

// Export implements the [sdklog.Exporter] interface.
func (e LogExporter) Export(ctx context.Context, records []sdklog.Record) error {
	return nil
}

// ForceFlush implements the [sdklog.Exporter] interface.
func (e LogExporter) ForceFlush(ctx context.Context) error {
	return nil
}

// Shutdown implements the [sdklog.Exporter] interface.
func (e LogExporter) Shutdown(ctx context.Context) error {
	return nil
}
