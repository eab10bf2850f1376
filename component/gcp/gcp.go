// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gcp registers Google Cloud collaborators: a resource
// detector for GCP runtime environments and a span exporter which
// writes directly to Cloud Trace.
package gcp

import (
	"context"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	registry.Register(registry.KindResourceDetector, "gcp", Detector())
	registry.Register(registry.KindSpanExporter, "googlecloud", SpanExporter())
}

// Detector returns the factory for the GCP resource detector. It
// discovers GCE, GKE, Cloud Run, Cloud Functions and App Engine
// attributes from the metadata server.
func Detector() registry.Factory[resource.Detector] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (resource.Detector, error) {
		return gcp.NewDetector(), nil
	}
}

// SpanExporterConfig configures the Cloud Trace span exporter.
type SpanExporterConfig struct {
	// ProjectID overrides the project discovered from the environment.
	ProjectID string `config:"project_id"`
}

// SpanExporter returns the factory for the Cloud Trace span exporter.
// The owning processor shuts the exporter down, so it is not handed to
// the ledger.
func SpanExporter() registry.Factory[sdktrace.SpanExporter] {
	return func(ctx context.Context, scope *registry.Scope, props document.Properties) (sdktrace.SpanExporter, error) {
		var cfg SpanExporterConfig
		err := props.Decode(&cfg)
		if err != nil {
			return nil, err
		}

		var opts []texporter.Option
		if cfg.ProjectID != "" {
			opts = append(opts, texporter.WithProjectID(cfg.ProjectID))
		}

		exp, err := texporter.New(opts...)
		if err != nil {
			return nil, err
		}
		return exp, nil
	}
}
