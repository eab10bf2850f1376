// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package reader registers the periodic metric reader.
package reader

import (
	"context"
	"errors"
	"time"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func init() {
	registry.Register(registry.KindMetricReader, "periodic", Periodic())
}

// ErrMissingExporter occurs when a periodic reader is configured
// without a nested exporter component.
var ErrMissingExporter = errors.New("periodic reader requires an exporter")

// Config configures the periodic reader. The zero value of each field
// defers to the SDK default.
type Config struct {
	Exporter document.Component `config:"exporter"`

	Interval time.Duration `config:"interval"`
	Timeout  time.Duration `config:"timeout"`
}

// Periodic returns the factory for the periodic exporting reader. The
// reader owns its exporter; the meter provider in turn owns the reader
// once assembly completes, so the ledger hook treats a reader that was
// already shut down as released.
func Periodic() registry.Factory[sdkmetric.Reader] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Reader, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Exporter.Name == "" {
			return nil, ErrMissingExporter
		}

		exp, err := registry.Resolve[sdkmetric.Exporter](ctx, scope, registry.KindMetricExporter, cfg.Exporter.Name, cfg.Exporter.Properties)
		if err != nil {
			return nil, err
		}

		var opts []sdkmetric.PeriodicReaderOption
		if cfg.Interval > 0 {
			opts = append(opts, sdkmetric.WithInterval(cfg.Interval))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, sdkmetric.WithTimeout(cfg.Timeout))
		}

		reader := sdkmetric.NewPeriodicReader(exp, opts...)
		scope.Ledger.OnShutdown(lifecycle.HookFunc(func(ctx context.Context) error {
			err := reader.Shutdown(ctx)
			if errors.Is(err, sdkmetric.ErrReaderShutdown) {
				return nil
			}
			return err
		}))
		return reader, nil
	}
}
