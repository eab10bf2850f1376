// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelkit assembles a fully operational OpenTelemetry runtime
// (propagation, tracing, metering and logging) from a single declarative
// configuration document.
//
// The document is parsed into a [document.Document] (see [document.Parse])
// and handed to [Assemble], which validates the declared file format,
// resolves every referenced component through a [registry.Registry] and
// returns a [Runtime] holding the propagator and the three signal
// providers. Components are contributed by collaborator packages which
// register factories by (kind, name); the packages under component/ cover
// the standard set and register themselves on import:
//
//	import (
//		_ "github.com/treelinelabs/otelkit/component/otlp"
//		_ "github.com/treelinelabs/otelkit/component/propagator"
//		_ "github.com/treelinelabs/otelkit/component/sampler"
//		_ "github.com/treelinelabs/otelkit/component/processor"
//		_ "github.com/treelinelabs/otelkit/component/reader"
//	)
//
// Every shutdown-bearing resource acquired during assembly is tracked on
// a [lifecycle.Ledger]. If assembly fails partway through, everything
// already acquired is released in reverse order before the error is
// returned; on success the same ledger backs [Runtime.Shutdown].
package otelkit
