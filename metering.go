// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelkit

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// The metric SDK exposes no attribute limit knobs, so the metering
// assembler has nothing to apply the shared attribute_limits section to.
func assembleMeterProvider(
	ctx context.Context,
	scope *registry.Scope,
	spec *document.MeterProvider,
	res *resource.Resource,
) (metric.MeterProvider, error) {
	if spec == nil {
		return metricnoop.NewMeterProvider(), nil
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}

	for _, c := range spec.Readers {
		reader, err := registry.Resolve[sdkmetric.Reader](ctx, scope, registry.KindMetricReader, c.Name, c.Properties)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	return lifecycle.Track(scope.Ledger, sdkmetric.NewMeterProvider(opts...)), nil
}
