// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sampler registers the SDK samplers under the names the file
// format uses for them. Samplers carry no shutdown-bearing resources,
// so nothing here touches the ledger.
package sampler

import (
	"context"
	"fmt"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	registry.Register(registry.KindSampler, "always_on", AlwaysOn())
	registry.Register(registry.KindSampler, "always_off", AlwaysOff())
	registry.Register(registry.KindSampler, "trace_id_ratio_based", TraceIDRatioBased())
	registry.Register(registry.KindSampler, "parent_based", ParentBased())
}

// AlwaysOn returns the factory for the sampler which records every span.
func AlwaysOn() registry.Factory[sdktrace.Sampler] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.Sampler, error) {
		return sdktrace.AlwaysSample(), nil
	}
}

// AlwaysOff returns the factory for the sampler which records no spans.
func AlwaysOff() registry.Factory[sdktrace.Sampler] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.Sampler, error) {
		return sdktrace.NeverSample(), nil
	}
}

// TraceIDRatioBasedConfig configures the trace_id_ratio_based sampler.
type TraceIDRatioBasedConfig struct {
	// Ratio of spans to record, in [0, 1]. Defaults to 1.
	Ratio *float64 `config:"ratio"`
}

// InvalidRatioError occurs when the configured sampling ratio is
// outside of [0, 1].
type InvalidRatioError struct {
	Ratio float64
}

// Error implements the [builtin.error] interface.
func (e InvalidRatioError) Error() string {
	return fmt.Sprintf("sampling ratio must be between 0 and 1, got %f", e.Ratio)
}

// TraceIDRatioBased returns the factory for the deterministic
// trace id ratio sampler.
func TraceIDRatioBased() registry.Factory[sdktrace.Sampler] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.Sampler, error) {
		var cfg TraceIDRatioBasedConfig
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		ratio := 1.0
		if cfg.Ratio != nil {
			ratio = *cfg.Ratio
		}
		if ratio < 0 || ratio > 1 {
			return nil, InvalidRatioError{Ratio: ratio}
		}
		return sdktrace.TraceIDRatioBased(ratio), nil
	}
}

// ParentBasedConfig configures the parent_based sampler.
type ParentBasedConfig struct {
	// Root names the sampler to consult for spans without a parent.
	// Defaults to always_on.
	Root document.Component `config:"root"`
}

// ParentBased returns the factory for the parent based sampler. The
// root sampler is itself resolved through the registry, so any
// registered sampler may serve as the root.
func ParentBased() registry.Factory[sdktrace.Sampler] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.Sampler, error) {
		var cfg ParentBasedConfig
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		if cfg.Root.Name == "" {
			return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
		}

		root, err := registry.Resolve[sdktrace.Sampler](ctx, scope, registry.KindSampler, cfg.Root.Name, cfg.Root.Properties)
		if err != nil {
			return nil, err
		}
		return sdktrace.ParentBased(root), nil
	}
}
