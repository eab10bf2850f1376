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

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

// GrpcSpan returns the factory for the OTLP span exporter over gRPC.
// The exporter is handed to the ledger; its shutdown is a no-op once
// the owning processor has already shut it down.
func GrpcSpan() registry.Factory[sdktrace.SpanExporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanExporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []otlptracegrpc.Option
		if cfg.Endpoint != "" {
			if cfg.endpointURL() {
				opts = append(opts, otlptracegrpc.WithEndpointURL(cfg.Endpoint))
			} else {
				opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
			}
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlptracegrpc.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlptracegrpc.WithHeaders(cfg.Headers))
		}

		gzip, err := cfg.gzipCompression()
		if err != nil {
			return nil, err
		}
		if gzip {
			opts = append(opts, otlptracegrpc.WithCompressor("gzip"))
		}

		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		} else if tlsCfg != nil {
			opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))
		}

		if policy, ok := cfg.retry(); ok {
			opts = append(opts, otlptracegrpc.WithRetry(otlptracegrpc.RetryConfig{
				Enabled:         policy.enabled,
				InitialInterval: policy.initialInterval,
				MaxInterval:     policy.maxInterval,
				MaxElapsedTime:  policy.maxElapsedTime,
			}))
		}

		exp, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, exp), nil
	}
}

// HttpSpan returns the factory for the OTLP span exporter over
// HTTP/protobuf.
func HttpSpan() registry.Factory[sdktrace.SpanExporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanExporter, error) {
		var cfg Config
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			if cfg.endpointURL() {
				opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
			} else {
				opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
			}
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlptracehttp.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
		}

		gzip, err := cfg.gzipCompression()
		if err != nil {
			return nil, err
		}
		if gzip {
			opts = append(opts, otlptracehttp.WithCompression(otlptracehttp.GzipCompression))
		}

		tlsCfg, err := cfg.tlsConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		} else if tlsCfg != nil {
			opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsCfg))
		}

		if policy, ok := cfg.retry(); ok {
			opts = append(opts, otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
				Enabled:         policy.enabled,
				InitialInterval: policy.initialInterval,
				MaxInterval:     policy.maxInterval,
				MaxElapsedTime:  policy.maxElapsedTime,
			}))
		}

		exp, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return lifecycle.Track(scope.Ledger, exp), nil
	}
}
