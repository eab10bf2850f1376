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

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func assembleTracerProvider(
	ctx context.Context,
	scope *registry.Scope,
	spec *document.TracerProvider,
	shared *document.AttributeLimits,
	res *resource.Resource,
) (trace.TracerProvider, error) {
	if spec == nil {
		return tracenoop.NewTracerProvider(), nil
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithRawSpanLimits(spanLimits(shared, spec.Limits)),
	}

	if spec.Sampler != nil {
		sampler, err := registry.Resolve[sdktrace.Sampler](ctx, scope, registry.KindSampler, spec.Sampler.Name, spec.Sampler.Properties)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithSampler(sampler))
	}

	for _, c := range spec.Processors {
		proc, err := registry.Resolve[sdktrace.SpanProcessor](ctx, scope, registry.KindSpanProcessor, c.Name, c.Properties)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithSpanProcessor(proc))
	}

	return lifecycle.Track(scope.Ledger, sdktrace.NewTracerProvider(opts...)), nil
}

func spanLimits(shared *document.AttributeLimits, spec *document.SpanLimits) sdktrace.SpanLimits {
	limits := sdktrace.NewSpanLimits()

	var override *document.AttributeLimits
	if spec != nil {
		override = &spec.AttributeLimits
	}
	merged := shared.Merge(override)
	if merged.AttributeValueLengthLimit != nil {
		limits.AttributeValueLengthLimit = *merged.AttributeValueLengthLimit
	}
	if merged.AttributeCountLimit != nil {
		limits.AttributeCountLimit = *merged.AttributeCountLimit
	}

	if spec == nil {
		return limits
	}
	if spec.EventCountLimit != nil {
		limits.EventCountLimit = *spec.EventCountLimit
	}
	if spec.LinkCountLimit != nil {
		limits.LinkCountLimit = *spec.LinkCountLimit
	}
	if spec.EventAttributeCountLimit != nil {
		limits.AttributePerEventCountLimit = *spec.EventAttributeCountLimit
	}
	if spec.LinkAttributeCountLimit != nil {
		limits.AttributePerLinkCountLimit = *spec.LinkAttributeCountLimit
	}
	return limits
}
