package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/taskdesk/internal/client/cli"
	"github.com/dmitrijs2005/taskdesk/internal/client/config"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.New(os.Stderr, level)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, cli.WithLogger(logger))
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close failed", logging.KeyError, err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped", logging.KeyError, err)
	}
}
