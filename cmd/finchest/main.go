package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finchest/finchest/internal/client"
	"github.com/finchest/finchest/internal/config"
	"github.com/finchest/finchest/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetAppConfig()
	if err != nil {
		bootLog := logger.NewLogger("finchest", zerolog.InfoLevel)
		bootLog.Fatal().Err(err).Msg("error getting configs")
	}

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewFileLogger("finchest", level)

	app, err := client.NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}
	defer app.Close()

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("app run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
