// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package noop

import (
	"context"
	"testing"

	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func defaultScope() *registry.Scope {
	return &registry.Scope{
		Registry: registry.Default,
		Ledger:   new(lifecycle.Ledger),
	}
}

func TestRegistered(t *testing.T) {
	t.Run("span_exporter", func(t *testing.T) {
		exp, err := registry.Resolve[sdktrace.SpanExporter](context.Background(), defaultScope(), registry.KindSpanExporter, "noop", nil)
		require.NoError(t, err)

		require.NoError(t, exp.ExportSpans(context.Background(), nil))
		require.NoError(t, exp.Shutdown(context.Background()))
	})

	t.Run("metric_exporter", func(t *testing.T) {
		exp, err := registry.Resolve[sdkmetric.Exporter](context.Background(), defaultScope(), registry.KindMetricExporter, "noop", nil)
		require.NoError(t, err)

		require.NoError(t, exp.Export(context.Background(), nil))
		require.NoError(t, exp.ForceFlush(context.Background()))
		require.NoError(t, exp.Shutdown(context.Background()))
	})

	t.Run("log_record_exporter", func(t *testing.T) {
		exp, err := registry.Resolve[sdklog.Exporter](context.Background(), defaultScope(), registry.KindLogRecordExporter, "noop", nil)
		require.NoError(t, err)

		require.NoError(t, exp.Export(context.Background(), nil))
		require.NoError(t, exp.Shutdown(context.Background()))
	})
}
