// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otlp registers OTLP exporters for all three signals, over
// both gRPC and HTTP transports.
//
// Each signal registers three names: "otlp" and "otlp_grpc" select the
// gRPC transport, "otlp_http" the HTTP transport.
package otlp

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/treelinelabs/otelkit/registry"
)

func init() {
	registry.Register(registry.KindSpanExporter, "otlp", GrpcSpan())
	registry.Register(registry.KindSpanExporter, "otlp_grpc", GrpcSpan())
	registry.Register(registry.KindSpanExporter, "otlp_http", HttpSpan())

	registry.Register(registry.KindMetricExporter, "otlp", GrpcMetric())
	registry.Register(registry.KindMetricExporter, "otlp_grpc", GrpcMetric())
	registry.Register(registry.KindMetricExporter, "otlp_http", HttpMetric())

	registry.Register(registry.KindLogRecordExporter, "otlp", GrpcLog())
	registry.Register(registry.KindLogRecordExporter, "otlp_grpc", GrpcLog())
	registry.Register(registry.KindLogRecordExporter, "otlp_http", HttpLog())
}

// Config configures an OTLP exporter, for either transport. Unset
// fields defer to the exporter defaults, including the standard
// OTEL_EXPORTER_OTLP_* environment variables.
type Config struct {
	// Endpoint is either a host:port pair or a full URL. A URL also
	// selects plaintext or TLS from its scheme.
	Endpoint string `config:"endpoint"`

	Timeout     time.Duration     `config:"timeout"`
	Compression string            `config:"compression"`
	Headers     map[string]string `config:"headers"`
	Insecure    bool              `config:"insecure"`

	// Certificate is a path to a PEM encoded CA bundle used to verify
	// the collector. ClientCertificate and ClientKey are paths to a PEM
	// encoded client pair for mutual TLS.
	Certificate        string `config:"certificate"`
	ClientCertificate  string `config:"client_certificate"`
	ClientKey          string `config:"client_key"`
	InsecureSkipVerify bool   `config:"insecure_skip_verify"`

	Retry RetryConfig `config:"retry"`
}

// RetryConfig configures the exporter retry policy. Leaving Enabled
// unset keeps the exporter default policy.
type RetryConfig struct {
	Enabled         *bool         `config:"enabled"`
	InitialInterval time.Duration `config:"initial_interval"`
	MaxInterval     time.Duration `config:"max_interval"`
	MaxElapsedTime  time.Duration `config:"max_elapsed_time"`
}

type retryPolicy struct {
	enabled         bool
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
}

// retry normalizes the configured policy, filling the exporter
// defaults for any interval left unset. Returns false when the
// document did not configure retries at all.
func (c Config) retry() (retryPolicy, bool) {
	if c.Retry.Enabled == nil {
		return retryPolicy{}, false
	}

	p := retryPolicy{
		enabled:         *c.Retry.Enabled,
		initialInterval: c.Retry.InitialInterval,
		maxInterval:     c.Retry.MaxInterval,
		maxElapsedTime:  c.Retry.MaxElapsedTime,
	}
	if p.initialInterval <= 0 {
		p.initialInterval = 5 * time.Second
	}
	if p.maxInterval <= 0 {
		p.maxInterval = 30 * time.Second
	}
	if p.maxElapsedTime <= 0 {
		p.maxElapsedTime = time.Minute
	}
	return p, true
}

// endpointURL reports whether the configured endpoint is a full URL
// rather than a bare host:port pair.
func (c Config) endpointURL() bool {
	return strings.Contains(c.Endpoint, "://")
}

// UnsupportedCompressionError occurs when the document names a
// compression codec the exporters do not implement.
type UnsupportedCompressionError struct {
	Compression string
}

// Error implements the [builtin.error] interface.
func (e UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("unsupported otlp compression: %s", e.Compression)
}

// gzipCompression normalizes the compression field. Returns true when
// gzip was requested.
func (c Config) gzipCompression() (bool, error) {
	switch c.Compression {
	case "gzip":
		return true, nil
	case "", "none":
		return false, nil
	default:
		return false, UnsupportedCompressionError{Compression: c.Compression}
	}
}

// InvalidCertificateError occurs when configured TLS material can not
// be loaded or parsed.
type InvalidCertificateError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidCertificateError) Error() string {
	return fmt.Sprintf("invalid certificate: %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidCertificateError) Unwrap() error {
	return e.Cause
}

// tlsConfig builds the TLS configuration from the document, or nil
// when the document carries no TLS material.
func (c Config) tlsConfig() (*tls.Config, error) {
	if c.Certificate == "" && c.ClientCertificate == "" && !c.InsecureSkipVerify {
		return nil, nil
	}

	cfg := &tls.Config{
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
	if c.Certificate != "" {
		pem, err := os.ReadFile(c.Certificate)
		if err != nil {
			return nil, InvalidCertificateError{Path: c.Certificate, Cause: err}
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, InvalidCertificateError{
				Path:  c.Certificate,
				Cause: fmt.Errorf("no PEM certificates found"),
			}
		}
		cfg.RootCAs = pool
	}
	if c.ClientCertificate != "" {
		pair, err := tls.LoadX509KeyPair(c.ClientCertificate, c.ClientKey)
		if err != nil {
			return nil, InvalidCertificateError{Path: c.ClientCertificate, Cause: err}
		}
		cfg.Certificates = []tls.Certificate{pair}
	}
	return cfg, nil
}
