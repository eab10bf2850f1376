// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	"embed"
	"log/slog"
	"os"
	"time"

	"github.com/treelinelabs/otelkit"
	"github.com/treelinelabs/otelkit/config"
	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/otelslog"

	_ "github.com/treelinelabs/otelkit/component/processor"
	_ "github.com/treelinelabs/otelkit/component/propagator"
	_ "github.com/treelinelabs/otelkit/component/reader"
	_ "github.com/treelinelabs/otelkit/component/sampler"
	_ "github.com/treelinelabs/otelkit/component/stdout"

	"go.opentelemetry.io/otel"
)

//go:embed config.yaml
var configBytes embed.FS

func main() {
	log := otelslog.New(slog.NewJSONHandler(os.Stderr, nil))

	err := run(context.Background(), log)
	if err != nil {
		log.Error("failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	b, err := configBytes.ReadFile("config.yaml")
	if err != nil {
		return err
	}

	doc, err := document.Parse(config.FromYaml(bytes.NewReader(b)))
	if err != nil {
		return err
	}

	rt, err := otelkit.Assemble(ctx, doc)
	if err != nil {
		return err
	}
	defer rt.Shutdown(ctx)

	rt.Install()

	spanCtx, span := otel.Tracer("declarative").Start(ctx, "do work")
	defer span.End()

	log.InfoContext(spanCtx, "working", slog.Duration("for", 100*time.Millisecond))
	time.Sleep(100 * time.Millisecond)
	return nil
}
