// Command ailispd serves the interpreter over HTTP, optionally
// persisting request history to Postgres.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/melvinzhang/ailisp/config"
	"github.com/melvinzhang/ailisp/server"
	"github.com/melvinzhang/ailisp/telemetry"
)

var (
	addr           = flag.String("addr", ":8080", "address to listen on")
	logLevel       = flag.String("log-level", "info", "zap log level: debug, info, warn, error")
	pgConnString   = flag.String("postgres", "", "postgres connection string for eval history; empty disables persistence")
	embeddedPG     = flag.Bool("embedded-postgres", false, "start a disposable embedded postgres for eval history instead of -postgres")
	embeddedPGPort = flag.Int("embedded-postgres-port", 5433, "port for -embedded-postgres")
)

func main() {
	flag.Parse()

	logger, err := telemetry.NewLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailispd: %s\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	conf := config.New(logger)
	conf.SetRunID(telemetry.NewRunID())

	var store *server.Store
	ctx := context.Background()
	switch {
	case *embeddedPG:
		store, err = server.OpenEmbedded(ctx, uint32(*embeddedPGPort))
	case *pgConnString != "":
		store, err = server.Open(ctx, *pgConnString)
	}
	if err != nil {
		conf.Logger().Errorw("failed to open eval history store", "error", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	srv := server.New(conf, store)
	conf.Logger().Infow("listening", "addr", *addr, "run_id", conf.RunID())
	if err := srv.Router().Run(*addr); err != nil {
		conf.Logger().Errorw("server exited", "error", err)
		os.Exit(1)
	}
}
