// Package main is the entry point for the interactive skin viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/app"
	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Fatal("failed to start viewer", zap.Error(err))
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		a.Close()
		logger.Sync()
		os.Exit(1)
	}
}
