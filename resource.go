// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelkit

import (
	"context"
	"fmt"

	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/registry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

// assembleResource resolves the shared resource every signal provider
// reports against: SDK defaults, overlaid with whatever the configured
// detectors discover, overlaid with the document's literal attributes.
func assembleResource(ctx context.Context, scope *registry.Scope, spec *document.Resource) (*resource.Resource, error) {
	res := resource.Default()
	if spec == nil {
		return res, nil
	}

	for _, c := range spec.Detectors {
		det, err := registry.Resolve[resource.Detector](ctx, scope, registry.KindResourceDetector, c.Name, c.Properties)
		if err != nil {
			return nil, err
		}

		detected, err := det.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("resource detector %q: %w", c.Name, err)
		}
		res, err = resource.Merge(res, detected)
		if err != nil {
			return nil, err
		}
	}

	if len(spec.Attributes) == 0 {
		return res, nil
	}

	attrs := make([]attribute.KeyValue, 0, len(spec.Attributes))
	for k, v := range spec.Attributes {
		attrs = append(attrs, anyAttribute(k, v))
	}

	declared := resource.NewSchemaless(attrs...)
	if spec.SchemaURL != "" {
		declared = resource.NewWithAttributes(spec.SchemaURL, attrs...)
	}
	return resource.Merge(res, declared)
}

func anyAttribute(key string, value any) attribute.KeyValue {
	switch x := value.(type) {
	case string:
		return attribute.String(key, x)
	case bool:
		return attribute.Bool(key, x)
	case int:
		return attribute.Int(key, x)
	case int64:
		return attribute.Int64(key, x)
	case float64:
		return attribute.Float64(key, x)
	case []string:
		return attribute.StringSlice(key, x)
	case []any:
		ss := make([]string, len(x))
		for i, v := range x {
			ss[i] = fmt.Sprint(v)
		}
		return attribute.StringSlice(key, ss)
	default:
		return attribute.String(key, fmt.Sprint(x))
	}
}
