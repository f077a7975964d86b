package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"edgegate/app"
	"edgegate/internal"
	"edgegate/internal/api"
	"edgegate/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	validator, err := app.NewValidationService(cfg.Validation.Thresholds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sweeper := app.NewSweepService(validator, cfg.Validation.SweepWorkers)

	server := api.NewServer(validator, sweeper, logger)
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
