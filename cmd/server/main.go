package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/planplant/internal/buildinfo"
	"github.com/dmitrijs2005/planplant/internal/logging"
	"github.com/dmitrijs2005/planplant/internal/server"
	"github.com/dmitrijs2005/planplant/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, cfg.LogLevel)

	if err := server.NewApp(cfg, logger).Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
