// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package processor registers the batch and simple pipeline processors
// for the tracing and logging signals.
//
// A processor's exporter is referenced as a nested component and
// resolved through the same registry, e.g.
//
//	processors:
//	  - batch:
//	      schedule_delay: 5s
//	      exporter:
//	        otlp:
//	          endpoint: localhost:4317
package processor

import (
	"context"
	"errors"
	"time"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	registry.Register(registry.KindSpanProcessor, "batch", BatchSpan())
	registry.Register(registry.KindSpanProcessor, "simple", SimpleSpan())
	registry.Register(registry.KindLogRecordProcessor, "batch", BatchLogRecord())
	registry.Register(registry.KindLogRecordProcessor, "simple", SimpleLogRecord())
}

// ErrMissingExporter occurs when a processor is configured without a
// nested exporter component.
var ErrMissingExporter = errors.New("processor requires an exporter")

// Config configures the batch processors. The zero value of each
// field defers to the SDK default.
type Config struct {
	Exporter document.Component `config:"exporter"`

	ScheduleDelay      time.Duration `config:"schedule_delay"`
	ExportTimeout      time.Duration `config:"export_timeout"`
	MaxQueueSize       int           `config:"max_queue_size"`
	MaxExportBatchSize int           `config:"max_export_batch_size"`
}

// BatchSpan returns the factory for the batching span processor. The
// returned processor owns its exporter and is handed to the ledger.
func BatchSpan() registry.Factory[sdktrace.SpanProcessor] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanProcessor, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Exporter.Name == "" {
			return nil, ErrMissingExporter
		}

		exp, err := registry.Resolve[sdktrace.SpanExporter](ctx, scope, registry.KindSpanExporter, cfg.Exporter.Name, cfg.Exporter.Properties)
		if err != nil {
			return nil, err
		}

		var opts []sdktrace.BatchSpanProcessorOption
		if cfg.ScheduleDelay > 0 {
			opts = append(opts, sdktrace.WithBatchTimeout(cfg.ScheduleDelay))
		}
		if cfg.ExportTimeout > 0 {
			opts = append(opts, sdktrace.WithExportTimeout(cfg.ExportTimeout))
		}
		if cfg.MaxQueueSize > 0 {
			opts = append(opts, sdktrace.WithMaxQueueSize(cfg.MaxQueueSize))
		}
		if cfg.MaxExportBatchSize > 0 {
			opts = append(opts, sdktrace.WithMaxExportBatchSize(cfg.MaxExportBatchSize))
		}

		return lifecycle.Track(scope.Ledger, sdktrace.NewBatchSpanProcessor(exp, opts...)), nil
	}
}

// SimpleSpan returns the factory for the synchronous span processor.
func SimpleSpan() registry.Factory[sdktrace.SpanProcessor] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanProcessor, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Exporter.Name == "" {
			return nil, ErrMissingExporter
		}

		exp, err := registry.Resolve[sdktrace.SpanExporter](ctx, scope, registry.KindSpanExporter, cfg.Exporter.Name, cfg.Exporter.Properties)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, sdktrace.NewSimpleSpanProcessor(exp)), nil
	}
}

// BatchLogRecord returns the factory for the batching log record processor.
func BatchLogRecord() registry.Factory[sdklog.Processor] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Processor, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Exporter.Name == "" {
			return nil, ErrMissingExporter
		}

		exp, err := registry.Resolve[sdklog.Exporter](ctx, scope, registry.KindLogRecordExporter, cfg.Exporter.Name, cfg.Exporter.Properties)
		if err != nil {
			return nil, err
		}

		var opts []sdklog.BatchProcessorOption
		if cfg.ScheduleDelay > 0 {
			opts = append(opts, sdklog.WithExportInterval(cfg.ScheduleDelay))
		}
		if cfg.ExportTimeout > 0 {
			opts = append(opts, sdklog.WithExportTimeout(cfg.ExportTimeout))
		}
		if cfg.MaxQueueSize > 0 {
			opts = append(opts, sdklog.WithMaxQueueSize(cfg.MaxQueueSize))
		}
		if cfg.MaxExportBatchSize > 0 {
			opts = append(opts, sdklog.WithExportMaxBatchSize(cfg.MaxExportBatchSize))
		}

		return lifecycle.Track(scope.Ledger, sdklog.NewBatchProcessor(exp, opts...)), nil
	}
}

// SimpleLogRecord returns the factory for the synchronous log record processor.
func SimpleLogRecord() registry.Factory[sdklog.Processor] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Processor, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Exporter.Name == "" {
			return nil, ErrMissingExporter
		}

		exp, err := registry.Resolve[sdklog.Exporter](ctx, scope, registry.KindLogRecordExporter, cfg.Exporter.Name, cfg.Exporter.Properties)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, sdklog.NewSimpleProcessor(exp)), nil
	}
}
