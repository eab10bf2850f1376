// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otlp

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"google.golang.org/grpc/credentials"
)

// Metric exporters are owned by the reader wrapping them, so unlike
// the span and log record factories they are not handed to the ledger.

// GrpcMetric returns the factory for the OTLP metric exporter over gRPC.
func GrpcMetric() registry.Factory[sdkmetric.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Exporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []otlpmetricgrpc.Option
		if cfg.Endpoint != "" {
			if cfg.endpointURL() {
				opts = append(opts, otlpmetricgrpc.WithEndpointURL(cfg.Endpoint))
			} else {
				opts = append(opts, otlpmetricgrpc.WithEndpoint(cfg.Endpoint))
			}
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlpmetricgrpc.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlpmetricgrpc.WithHeaders(cfg.Headers))
		}

		gzip, err := cfg.gzipCompression()
		if err != nil {
			return nil, err
		}
		if gzip {
			opts = append(opts, otlpmetricgrpc.WithCompressor("gzip"))
		}

		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		} else if tlsCfg != nil {
			opts = append(opts, otlpmetricgrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))
		}

		if policy, ok := cfg.retry(); ok {
			opts = append(opts, otlpmetricgrpc.WithRetry(otlpmetricgrpc.RetryConfig{
				Enabled:         policy.enabled,
				InitialInterval: policy.initialInterval,
				MaxInterval:     policy.maxInterval,
				MaxElapsedTime:  policy.maxElapsedTime,
			}))
		}

		return otlpmetricgrpc.New(ctx, opts...)
	}
}

// HttpMetric returns the factory for the OTLP metric exporter over
// HTTP/protobuf.
func HttpMetric() registry.Factory[sdkmetric.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdkmetric.Exporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []otlpmetrichttp.Option
		if cfg.Endpoint != "" {
			if cfg.endpointURL() {
				opts = append(opts, otlpmetrichttp.WithEndpointURL(cfg.Endpoint))
			} else {
				opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
			}
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlpmetrichttp.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlpmetrichttp.WithHeaders(cfg.Headers))
		}

		gzip, err := cfg.gzipCompression()
		if err != nil {
			return nil, err
		}
		if gzip {
			opts = append(opts, otlpmetrichttp.WithCompression(otlpmetrichttp.GzipCompression))
		}

		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		} else if tlsCfg != nil {
			opts = append(opts, otlpmetrichttp.WithTLSClientConfig(tlsCfg))
		}

		if policy, ok := cfg.retry(); ok {
			opts = append(opts, otlpmetrichttp.WithRetry(otlpmetrichttp.RetryConfig{
				Enabled:         policy.enabled,
				InitialInterval: policy.initialInterval,
				MaxInterval:     policy.maxInterval,
				MaxElapsedTime:  policy.maxElapsedTime,
			}))
		}

		return otlpmetrichttp.New(ctx, opts...)
	}
}
