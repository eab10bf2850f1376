// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package stdout registers the console exporters, which write
// telemetry to standard output in a human-readable format.
package stdout

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	registry.Register(registry.KindSpanExporter, "console", Span())
	registry.Register(registry.KindMetricExporter, "console", Metric())
	registry.Register(registry.KindLogRecordExporter, "console", Log())
}

// Config configures the span and log record console exporters.
type Config struct {
	PrettyPrint bool `config:"pretty_print"`
}

// Span returns the factory for the console span exporter.
func Span() registry.Factory[sdktrace.SpanExporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanExporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []stdouttrace.Option
		if cfg.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}

		exp, err := stdouttrace.New(opts...)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, exp), nil
	}
}

// Metric returns the factory for the console metric exporter. The
// wrapping reader owns the exporter, so it is not handed to the ledger.
func Metric() registry.Factory[sdkmetric.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Exporter, error) {
		return stdoutmetric.New()
	}
}

// Log returns the factory for the console log record exporter.
func Log() registry.Factory[sdklog.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Exporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []stdoutlog.Option
		if cfg.PrettyPrint {
			opts = append(opts, stdoutlog.WithPrettyPrint())
		}

		exp, err := stdoutlog.New(opts...)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, exp), nil
	}
}
