package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/constructhub/internal/buildinfo"
	"github.com/dmitrijs2005/constructhub/internal/client/cli"
	"github.com/dmitrijs2005/constructhub/internal/client/config"
	"github.com/dmitrijs2005/constructhub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
