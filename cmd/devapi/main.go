package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/constructhub/internal/buildinfo"
	"github.com/dmitrijs2005/constructhub/internal/devapi"
	"github.com/dmitrijs2005/constructhub/internal/devapi/config"
	"github.com/dmitrijs2005/constructhub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stdout, cfg.LogLevel)

	app := devapi.NewApp(cfg, logger)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
