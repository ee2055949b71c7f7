package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/oaiiae/contacts-directory/cli/api"
	"github.com/oaiiae/contacts-directory/cli/datastore"
	"github.com/oaiiae/contacts-directory/cli/logger"
	"github.com/oaiiae/contacts-directory/handlers"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Every flag can also be set with a `SERVICE_` env var,
// e.g. `--port` with `SERVICE_PORT`.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	datastore.StoreOptions
	logger.Options
}

func main() {
	handlers.UseEnvelopeErrors()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options, slog.String("service", "contacts-directory"), slog.String("version", version))

		storeMetrics := metrics.NewSet()
		store, blob, err := datastore.NewContactsStore(&options.StoreOptions, storeMetrics, log)
		if err != nil {
			log.Error("failed to open store", "err", err)
			os.Exit(1)
		}

		srv := api.NewServer(&options.ServerOptions,
			api.NewRouter(&options.RouterOptions,
				api.Build{Title: "Contacts Directory", Version: version, Revision: revision, Created: created},
				store, storeMetrics, log,
			),
			log,
		)

		hooks.OnStart(func() {
			log.Info("listening", "addr", srv.Addr, "store", options.StoreBackend)
			err := srv.ListenAndServe()
			if err != http.ErrServerClosed {
				log.Error("failed to listen and serve", "err", err)
			} else {
				log.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
			err = blob.Close()
			if err != nil {
				log.Warn("could not close the store", "err", err)
			}
		})
	})
	cli.Run()
}
