// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otlp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/lifecycle"
	"github.com/treelinelabs/otelkit/registry"

	"github.com/stretchr/testify/require"
)

func newScope() *registry.Scope {
	return &registry.Scope{
		Registry: registry.New(),
		Ledger:   new(lifecycle.Ledger),
	}
}

func TestConfig_retry(t *testing.T) {
	enabled := true

	testCases := []struct {
		name     string
		cfg      Config
		expected retryPolicy
		ok       bool
	}{
		{
			name: "unset retry keeps the exporter default",
		},
		{
			name: "enabled retry fills default intervals",
			cfg: Config{
				Retry: RetryConfig{Enabled: &enabled},
			},
			expected: retryPolicy{
				enabled:         true,
				initialInterval: 5 * time.Second,
				maxInterval:     30 * time.Second,
				maxElapsedTime:  time.Minute,
			},
			ok: true,
		},
		{
			name: "configured intervals win over defaults",
			cfg: Config{
				Retry: RetryConfig{
					Enabled:         &enabled,
					InitialInterval: time.Second,
					MaxInterval:     10 * time.Second,
					MaxElapsedTime:  30 * time.Second,
				},
			},
			expected: retryPolicy{
				enabled:         true,
				initialInterval: time.Second,
				maxInterval:     10 * time.Second,
				maxElapsedTime:  30 * time.Second,
			},
			ok: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy, ok := tc.cfg.retry()
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.expected, policy)
		})
	}
}

func TestConfig_gzipCompression(t *testing.T) {
	testCases := []struct {
		name        string
		compression string
		gzip        bool
		expectErr   bool
	}{
		{name: "empty defaults to no compression"},
		{name: "none", compression: "none"},
		{name: "gzip", compression: "gzip", gzip: true},
		{name: "unsupported codec", compression: "zstd", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Compression: tc.compression}

			gzip, err := cfg.gzipCompression()
			if tc.expectErr {
				var uerr UnsupportedCompressionError
				require.ErrorAs(t, err, &uerr)
				require.Equal(t, tc.compression, uerr.Compression)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.gzip, gzip)
		})
	}
}

func TestConfig_tlsConfig(t *testing.T) {
	t.Run("will return nil without any tls material", func(t *testing.T) {
		var cfg Config

		tlsCfg, err := cfg.tlsConfig()
		require.NoError(t, err)
		require.Nil(t, tlsCfg)
	})

	t.Run("will honor insecure_skip_verify on its own", func(t *testing.T) {
		cfg := Config{InsecureSkipVerify: true}

		tlsCfg, err := cfg.tlsConfig()
		require.NoError(t, err)
		require.NotNil(t, tlsCfg)
		require.True(t, tlsCfg.InsecureSkipVerify)
	})

	t.Run("will fail on an unreadable ca bundle", func(t *testing.T) {
		cfg := Config{Certificate: "testdata/does-not-exist.pem"}

		_, err := cfg.tlsConfig()

		var ierr InvalidCertificateError
		require.ErrorAs(t, err, &ierr)
		require.Equal(t, cfg.Certificate, ierr.Path)
	})

	t.Run("will fail on a bundle without pem blocks", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a pem block"), 0o600))

		cfg := Config{Certificate: path}

		_, err := cfg.tlsConfig()

		var ierr InvalidCertificateError
		require.ErrorAs(t, err, &ierr)
	})
}

func TestGrpcSpan(t *testing.T) {
	t.Run("will build an exporter and hand it to the ledger", func(t *testing.T) {
		scope := newScope()

		exp, err := GrpcSpan()(context.Background(), scope, document.Properties{
			"endpoint": "localhost:4317",
			"insecure": true,
			"timeout":  5000,
		})
		require.NoError(t, err)
		require.NotNil(t, exp)
		require.Equal(t, 1, scope.Ledger.Len())

		require.NoError(t, scope.Ledger.Shutdown(context.Background()))
	})

	t.Run("will reject an unsupported compression codec", func(t *testing.T) {
		_, err := GrpcSpan()(context.Background(), newScope(), document.Properties{
			"compression": "snappy",
		})

		var uerr UnsupportedCompressionError
		require.ErrorAs(t, err, &uerr)
	})
}

func TestHttpSpan(t *testing.T) {
	t.Run("will accept a full endpoint url", func(t *testing.T) {
		scope := newScope()

		exp, err := HttpSpan()(context.Background(), scope, document.Properties{
			"endpoint": "http://localhost:4318/v1/traces",
		})
		require.NoError(t, err)
		require.NotNil(t, exp)
		require.Equal(t, 1, scope.Ledger.Len())

		require.NoError(t, scope.Ledger.Shutdown(context.Background()))
	})
}

func TestGrpcLog(t *testing.T) {
	t.Run("will build an exporter and hand it to the ledger", func(t *testing.T) {
		scope := newScope()

		exp, err := GrpcLog()(context.Background(), scope, document.Properties{
			"endpoint": "localhost:4317",
			"insecure": true,
		})
		require.NoError(t, err)
		require.NotNil(t, exp)
		require.Equal(t, 1, scope.Ledger.Len())

		require.NoError(t, scope.Ledger.Shutdown(context.Background()))
	})
}

func TestGrpcMetric(t *testing.T) {
	t.Run("will leave ownership of the exporter with the reader", func(t *testing.T) {
		scope := newScope()

		exp, err := GrpcMetric()(context.Background(), scope, document.Properties{
			"endpoint": "localhost:4317",
			"insecure": true,
		})
		require.NoError(t, err)
		require.NotNil(t, exp)
		require.Equal(t, 0, scope.Ledger.Len())

		require.NoError(t, exp.Shutdown(context.Background()))
	})
}
