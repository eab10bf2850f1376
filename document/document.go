// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package document defines the in-memory model of the declarative
// telemetry configuration document.
//
// The model mirrors the versioned file format: a top-level file_format
// marker, an optional disabled flag, shared propagator, resource and
// attribute limit sections and one optional section per telemetry
// signal. A parsed [Document] is read-only; assembly never mutates it.
package document

// Document is the root of the parsed configuration document.
type Document struct {
	// FileFormat declares the schema version this document was
	// authored against, e.g. "0.4" or "1.0-rc.1".
	FileFormat string `config:"file_format"`

	// Disabled distinguishes between absent, false and true.
	Disabled *bool `config:"disabled"`

	Propagator      *Propagator      `config:"propagator"`
	Resource        *Resource        `config:"resource"`
	AttributeLimits *AttributeLimits `config:"attribute_limits"`

	LoggerProvider *LoggerProvider `config:"logger_provider"`
	TracerProvider *TracerProvider `config:"tracer_provider"`
	MeterProvider  *MeterProvider  `config:"meter_provider"`
}

// IsDisabled reports whether the document explicitly disables the SDK.
func (d *Document) IsDisabled() bool {
	return d.Disabled != nil && *d.Disabled
}

// Propagator configures context propagation. Composite lists the
// named propagators to compose, in order.
type Propagator struct {
	Composite []Component `config:"composite"`
}

// Resource configures the identity metadata attached uniformly to
// all signals produced by one assembly.
type Resource struct {
	Attributes map[string]any `config:"attributes"`
	Detectors  []Component    `config:"detectors"`
	SchemaURL  string         `config:"schema_url"`
}

// AttributeLimits caps attribute cardinality and value size. The
// top-level section is shared across signals; signal sections may
// override individual fields.
type AttributeLimits struct {
	AttributeValueLengthLimit *int `config:"attribute_value_length_limit"`
	AttributeCountLimit       *int `config:"attribute_count_limit"`
}

// Merge returns l overlaid with any fields set on override.
// Signal-specific values win on conflict.
func (l *AttributeLimits) Merge(override *AttributeLimits) AttributeLimits {
	var merged AttributeLimits
	if l != nil {
		merged = *l
	}
	if override == nil {
		return merged
	}
	if override.AttributeValueLengthLimit != nil {
		merged.AttributeValueLengthLimit = override.AttributeValueLengthLimit
	}
	if override.AttributeCountLimit != nil {
		merged.AttributeCountLimit = override.AttributeCountLimit
	}
	return merged
}

// TracerProvider configures the tracing signal.
type TracerProvider struct {
	Processors []Component `config:"processors"`
	Sampler    *Component  `config:"sampler"`
	Limits     *SpanLimits `config:"limits"`
}

// SpanLimits extends the shared attribute limits with span-specific caps.
type SpanLimits struct {
	AttributeLimits `config:",squash"`

	EventCountLimit          *int `config:"event_count_limit"`
	LinkCountLimit           *int `config:"link_count_limit"`
	EventAttributeCountLimit *int `config:"event_attribute_count_limit"`
	LinkAttributeCountLimit  *int `config:"link_attribute_count_limit"`
}

// LoggerProvider configures the logging signal.
type LoggerProvider struct {
	Processors []Component      `config:"processors"`
	Limits     *AttributeLimits `config:"limits"`
}

// MeterProvider configures the metering signal.
type MeterProvider struct {
	Readers []Component `config:"readers"`
}
