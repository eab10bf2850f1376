// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"os"

	"github.com/treelinelabs/otelkit"
	"github.com/treelinelabs/otelkit/config"
	"github.com/treelinelabs/otelkit/document"
	"github.com/treelinelabs/otelkit/otelslog"

	_ "github.com/treelinelabs/otelkit/component/otlp"
	_ "github.com/treelinelabs/otelkit/component/processor"
	_ "github.com/treelinelabs/otelkit/component/reader"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
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

	mux := http.NewServeMux()
	mux.HandleFunc("/roll", func(w http.ResponseWriter, r *http.Request) {
		n := 1 + rand.Intn(6)
		log.InfoContext(r.Context(), "rolled", slog.Int("n", n))

		err := json.NewEncoder(w).Encode(struct{ N int }{N: n})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	log.InfoContext(ctx, "listening", slog.String("addr", ":8080"))
	return http.ListenAndServe(":8080", otelhttp.NewHandler(mux, "httpserver"))
}
