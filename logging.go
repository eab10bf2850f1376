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

	"go.opentelemetry.io/otel/log"
	lognoop "go.opentelemetry.io/otel/log/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
)

func assembleLoggerProvider(
	ctx context.Context,
	scope *registry.Scope,
	spec *document.LoggerProvider,
	shared *document.AttributeLimits,
	res *resource.Resource,
) (log.LoggerProvider, error) {
	if spec == nil {
		return lognoop.NewLoggerProvider(), nil
	}

	opts := []sdklog.LoggerProviderOption{
		sdklog.WithResource(res),
	}

	limits := shared.Merge(spec.Limits)
	if limits.AttributeCountLimit != nil {
		opts = append(opts, sdklog.WithAttributeCountLimit(*limits.AttributeCountLimit))
	}
	if limits.AttributeValueLengthLimit != nil {
		opts = append(opts, sdklog.WithAttributeValueLengthLimit(*limits.AttributeValueLengthLimit))
	}

	for _, c := range spec.Processors {
		proc, err := registry.Resolve[sdklog.Processor](ctx, scope, registry.KindLogRecordProcessor, c.Name, c.Properties)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdklog.WithProcessor(proc))
	}

	return lifecycle.Track(scope.Ledger, sdklog.NewLoggerProvider(opts...)), nil
}
