// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otlp

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"google.golang.org/grpc/credentials"
)

// GrpcLog returns the factory for the OTLP log record exporter over gRPC.
func GrpcLog() registry.Factory[sdklog.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Exporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []otlploggrpc.Option
		if cfg.Endpoint != "" {
			if cfg.endpointURL() {
				opts = append(opts, otlploggrpc.WithEndpointURL(cfg.Endpoint))
			} else {
				opts = append(opts, otlploggrpc.WithEndpoint(cfg.Endpoint))
			}
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlploggrpc.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlploggrpc.WithHeaders(cfg.Headers))
		}

		gzip, err := cfg.gzipCompression()
		if err != nil {
			return nil, err
		}
		if gzip {
			opts = append(opts, otlploggrpc.WithCompressor("gzip"))
		}

		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Insecure {
			opts = append(opts, otlploggrpc.WithInsecure())
		} else if tlsCfg != nil {
			opts = append(opts, otlploggrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))
		}

		if policy, ok := cfg.retry(); ok {
			opts = append(opts, otlploggrpc.WithRetry(otlploggrpc.RetryConfig{
				Enabled:         policy.enabled,
				InitialInterval: policy.initialInterval,
				MaxInterval:     policy.maxInterval,
				MaxElapsedTime:  policy.maxElapsedTime,
			}))
		}

		exp, err := otlploggrpc.New(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, exp), nil
	}
}

// HttpLog returns the factory for the OTLP log record exporter over
// HTTP/protobuf.
func HttpLog() registry.Factory[sdklog.Exporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdklog.Exporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []otlploghttp.Option
		if cfg.Endpoint != "" {
			if cfg.endpointURL() {
				opts = append(opts, otlploghttp.WithEndpointURL(cfg.Endpoint))
			} else {
				opts = append(opts, otlploghttp.WithEndpoint(cfg.Endpoint))
			}
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlploghttp.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlploghttp.WithHeaders(cfg.Headers))
		}

		gzip, err := cfg.gzipCompression()
		if err != nil {
			return nil, err
		}
		if gzip {
			opts = append(opts, otlploghttp.WithCompression(otlploghttp.GzipCompression))
		}

		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Insecure {
			opts = append(opts, otlploghttp.WithInsecure())
		} else if tlsCfg != nil {
			opts = append(opts, otlploghttp.WithTLSClientConfig(tlsCfg))
		}

		if policy, ok := cfg.retry(); ok {
			opts = append(opts, otlploghttp.WithRetry(otlploghttp.RetryConfig{
				Enabled:         policy.enabled,
				InitialInterval: policy.initialInterval,
				MaxInterval:     policy.maxInterval,
				MaxElapsedTime:  policy.maxElapsedTime,
			}))
		}

		exp, err := otlploghttp.New(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, exp), nil
	}
}
