// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelkit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	"github.com/stretchr/testify/require"
	lognoop "go.opentelemetry.io/otel/log/noop"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func boolPtr(b bool) *bool {
	return &b
}

// captureExporter records exported spans and how often it was shut down.
type captureExporter struct {
	mu        sync.Mutex
	spans     []sdktrace.ReadOnlySpan
	shutdowns int
}

func (e *captureExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, spans...)
	return nil
}

func (e *captureExporter) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdowns += 1
	return nil
}

// markerProcessor appends its name to a shared release log on shutdown.
type markerProcessor struct {
	name     string
	released *[]string
	err      error
}

func (p *markerProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (p *markerProcessor) OnEnd(s sdktrace.ReadOnlySpan) {}

func (p *markerProcessor) ForceFlush(ctx context.Context) error {
	return nil
}

func (p *markerProcessor) Shutdown(ctx context.Context) error {
	*p.released = append(*p.released, p.name)
	return p.err
}

// markerLogProcessor is the log record flavour of markerProcessor.
type markerLogProcessor struct {
	name     string
	released *[]string
}

func (p *markerLogProcessor) Enabled(ctx context.Context, param sdklog.EnabledParameters) bool {
	return true
}

func (p *markerLogProcessor) OnEmit(ctx context.Context, r *sdklog.Record) error {
	return nil
}

func (p *markerLogProcessor) ForceFlush(ctx context.Context) error {
	return nil
}

func (p *markerLogProcessor) Shutdown(ctx context.Context) error {
	*p.released = append(*p.released, p.name)
	return nil
}

func spanProcessorFactory(proc sdktrace.SpanProcessor) registry.Factory[sdktrace.SpanProcessor] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanProcessor, error) {
		return proc, nil
	}
}

func logProcessorFactory(proc sdklog.Processor) registry.Factory[sdklog.Processor] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Processor, error) {
		return proc, nil
	}
}

func TestAssemble_FileFormat(t *testing.T) {
	t.Run("will accept supported file formats", func(t *testing.T) {
		supported := []string{"0.4", "1.0", "1.0-rc.1", "1.0-rc.42"}

		for _, fileFormat := range supported {
			t.Run(fileFormat, func(t *testing.T) {
				rt, err := Assemble(context.Background(), &document.Document{
					FileFormat: fileFormat,
				})
				require.NoError(t, err)
				require.NotNil(t, rt)
			})
		}
	})

	t.Run("will reject unsupported file formats", func(t *testing.T) {
		unsupported := []string{"", "1.1", "0.40", "2.0", "1.0-rc.", "v1.0"}

		for _, fileFormat := range unsupported {
			t.Run(fileFormat, func(t *testing.T) {
				rt, err := Assemble(context.Background(), &document.Document{
					FileFormat: fileFormat,
				})
				require.Nil(t, rt)

				var uerr UnsupportedFileFormatError
				require.ErrorAs(t, err, &uerr)
				require.Equal(t, fileFormat, uerr.FileFormat)
			})
		}
	})

	t.Run("will reject a nil document", func(t *testing.T) {
		rt, err := Assemble(context.Background(), nil)
		require.Nil(t, rt)

		var uerr UnsupportedFileFormatError
		require.ErrorAs(t, err, &uerr)
		require.Empty(t, uerr.FileFormat)
	})
}

func TestAssemble_Disabled(t *testing.T) {
	t.Run("will return an inert runtime without resolving anything", func(t *testing.T) {
		// The tracer provider references a component nobody registered.
		// A disabled document must still assemble since the
		// short-circuit happens before any resolution.
		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				Disabled:   boolPtr(true),
				TracerProvider: &document.TracerProvider{
					Processors: []document.Component{{Name: "definitely not registered"}},
				},
			},
			WithRegistry(registry.New()),
		)
		require.NoError(t, err)

		require.NotNil(t, rt.TextMapPropagator())
		require.IsType(t, tracenoop.NewTracerProvider(), rt.TracerProvider())
		require.IsType(t, metricnoop.NewMeterProvider(), rt.MeterProvider())
		require.IsType(t, lognoop.NewLoggerProvider(), rt.LoggerProvider())

		require.NoError(t, rt.Shutdown(context.Background()))
	})

	t.Run("will assemble normally when disabled is explicitly false", func(t *testing.T) {
		rt, err := Assemble(context.Background(), &document.Document{
			FileFormat: "1.0",
			Disabled:   boolPtr(false),
		})
		require.NoError(t, err)
		require.NotNil(t, rt)
	})
}

func TestAssemble_Propagator(t *testing.T) {
	t.Run("will default to tracecontext and baggage", func(t *testing.T) {
		rt, err := Assemble(context.Background(), &document.Document{
			FileFormat: "1.0",
		})
		require.NoError(t, err)

		require.ElementsMatch(
			t,
			[]string{"traceparent", "tracestate", "baggage"},
			rt.TextMapPropagator().Fields(),
		)
	})

	t.Run("will compose the configured propagators in order", func(t *testing.T) {
		reg := registry.New()
		err := registry.RegisterIn(reg, registry.KindPropagator, "baggage", registry.Factory[propagation.TextMapPropagator](
			func(ctx context.Context, scope *registry.Scope, props document.Properties) (propagation.TextMapPropagator, error) {
				return propagation.Baggage{}, nil
			},
		))
		require.NoError(t, err)

		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				Propagator: &document.Propagator{
					Composite: []document.Component{{Name: "baggage"}},
				},
			},
			WithRegistry(reg),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"baggage"}, rt.TextMapPropagator().Fields())
	})

	t.Run("will fail on an unknown propagator", func(t *testing.T) {
		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				Propagator: &document.Propagator{
					Composite: []document.Component{{Name: "jaeger"}},
				},
			},
			WithRegistry(registry.New()),
		)
		require.Nil(t, rt)

		var nerr registry.NotRegisteredError
		require.ErrorAs(t, err, &nerr)
		require.Equal(t, registry.KindPropagator, nerr.Kind)
		require.Equal(t, "jaeger", nerr.Name)
	})
}

func TestAssemble(t *testing.T) {
	t.Run("will trace through a configured pipeline", func(t *testing.T) {
		exporter := new(captureExporter)

		reg := registry.New()
		err := registry.RegisterIn(reg, registry.KindSpanProcessor, "capture", registry.Factory[sdktrace.SpanProcessor](
			func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanProcessor, error) {
				return sdktrace.NewSimpleSpanProcessor(exporter), nil
			},
		))
		require.NoError(t, err)

		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				Resource: &document.Resource{
					Attributes: map[string]any{
						"service.name": "checkout",
					},
				},
				TracerProvider: &document.TracerProvider{
					Processors: []document.Component{{Name: "capture"}},
				},
			},
			WithRegistry(reg),
		)
		require.NoError(t, err)

		// Unconfigured signals stay inert.
		require.IsType(t, lognoop.NewLoggerProvider(), rt.LoggerProvider())
		require.IsType(t, metricnoop.NewMeterProvider(), rt.MeterProvider())

		_, span := rt.TracerProvider().Tracer("assemble_test").Start(context.Background(), "do work")
		span.End()

		require.Len(t, exporter.spans, 1)
		require.Equal(t, "do work", exporter.spans[0].Name())

		attrs := exporter.spans[0].Resource().Attributes()
		require.Contains(t, attrs, semconv.ServiceName("checkout"))

		require.NoError(t, rt.Shutdown(context.Background()))
		require.Equal(t, 1, exporter.shutdowns)
	})

	t.Run("will report detected resource attributes on spans", func(t *testing.T) {
		exporter := new(captureExporter)

		reg := registry.New()
		err := registry.RegisterIn(reg, registry.KindSpanProcessor, "capture", spanProcessorFactory(sdktrace.NewSimpleSpanProcessor(exporter)))
		require.NoError(t, err)

		err = registry.RegisterIn(reg, registry.KindResourceDetector, "static", registry.Factory[resource.Detector](
			func(ctx context.Context, scope *registry.Scope, props document.Properties) (resource.Detector, error) {
				return resource.StringDetector("", semconv.ServiceNamespaceKey, func() (string, error) {
					return "payments", nil
				}), nil
			},
		))
		require.NoError(t, err)

		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				Resource: &document.Resource{
					Detectors: []document.Component{{Name: "static"}},
				},
				TracerProvider: &document.TracerProvider{
					Processors: []document.Component{{Name: "capture"}},
				},
			},
			WithRegistry(reg),
		)
		require.NoError(t, err)
		defer rt.Shutdown(context.Background())

		_, span := rt.TracerProvider().Tracer("assemble_test").Start(context.Background(), "do work")
		span.End()

		require.Len(t, exporter.spans, 1)
		require.Contains(t, exporter.spans[0].Resource().Attributes(), semconv.ServiceNamespace("payments"))
	})

	t.Run("will fail on an unknown exporter", func(t *testing.T) {
		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				TracerProvider: &document.TracerProvider{
					Sampler: &document.Component{Name: "always_maybe"},
				},
			},
			WithRegistry(registry.New()),
		)
		require.Nil(t, rt)

		var nerr registry.NotRegisteredError
		require.ErrorAs(t, err, &nerr)
		require.Equal(t, registry.KindSampler, nerr.Kind)
		require.Equal(t, "always_maybe", nerr.Name)
	})

	t.Run("will release acquired resources in reverse order on failure", func(t *testing.T) {
		var released []string

		reg := registry.New()
		err := registry.RegisterIn(reg, registry.KindLogRecordProcessor, "marker", logProcessorFactory(&markerLogProcessor{
			name:     "log processor",
			released: &released,
		}))
		require.NoError(t, err)

		err = registry.RegisterIn(reg, registry.KindSpanProcessor, "marker", spanProcessorFactory(&markerProcessor{
			name:     "span processor",
			released: &released,
		}))
		require.NoError(t, err)

		buildFailure := errors.New("failed to build reader")
		err = registry.RegisterIn(reg, registry.KindMetricReader, "broken", registry.Factory[sdkmetric.Reader](
			func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Reader, error) {
				return nil, buildFailure
			},
		))
		require.NoError(t, err)

		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				LoggerProvider: &document.LoggerProvider{
					Processors: []document.Component{{Name: "marker"}},
				},
				TracerProvider: &document.TracerProvider{
					Processors: []document.Component{{Name: "marker"}},
				},
				MeterProvider: &document.MeterProvider{
					Readers: []document.Component{{Name: "broken"}},
				},
			},
			WithRegistry(reg),
		)
		require.Nil(t, rt)
		require.ErrorIs(t, err, buildFailure)

		var berr registry.BuildError
		require.ErrorAs(t, err, &berr)
		require.Equal(t, registry.KindMetricReader, berr.Kind)
		require.Equal(t, "broken", berr.Name)

		// The tracing signal was assembled after the logging signal, so
		// its processor must be released first.
		require.Equal(t, []string{"span processor", "log processor"}, released)
	})

	t.Run("will join release failures with the original failure", func(t *testing.T) {
		var released []string
		releaseFailure := errors.New("failed to release span processor")

		reg := registry.New()
		err := registry.RegisterIn(reg, registry.KindSpanProcessor, "marker", spanProcessorFactory(&markerProcessor{
			name:     "span processor",
			released: &released,
			err:      releaseFailure,
		}))
		require.NoError(t, err)

		buildFailure := errors.New("failed to build reader")
		err = registry.RegisterIn(reg, registry.KindMetricReader, "broken", registry.Factory[sdkmetric.Reader](
			func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Reader, error) {
				return nil, buildFailure
			},
		))
		require.NoError(t, err)

		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				TracerProvider: &document.TracerProvider{
					Processors: []document.Component{{Name: "marker"}},
				},
				MeterProvider: &document.MeterProvider{
					Readers: []document.Component{{Name: "broken"}},
				},
			},
			WithRegistry(reg),
		)
		require.Nil(t, rt)
		require.ErrorIs(t, err, buildFailure)
		require.ErrorIs(t, err, releaseFailure)
		require.Equal(t, []string{"span processor"}, released)
	})
}

func TestRuntime_Shutdown(t *testing.T) {
	t.Run("will release each resource exactly once across repeated shutdowns", func(t *testing.T) {
		exporter := new(captureExporter)

		reg := registry.New()
		err := registry.RegisterIn(reg, registry.KindSpanProcessor, "capture", spanProcessorFactory(sdktrace.NewSimpleSpanProcessor(exporter)))
		require.NoError(t, err)

		rt, err := Assemble(
			context.Background(),
			&document.Document{
				FileFormat: "1.0",
				TracerProvider: &document.TracerProvider{
					Processors: []document.Component{{Name: "capture"}},
				},
			},
			WithRegistry(reg),
		)
		require.NoError(t, err)

		require.NoError(t, rt.Shutdown(context.Background()))
		require.NoError(t, rt.Shutdown(context.Background()))
		require.Equal(t, 1, exporter.shutdowns)
	})
}
