// Package main is the entry point for the tessellation demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/tessellation-demo/internal/config"
	"github.com/Faultbox/tessellation-demo/internal/demo"
	"github.com/Faultbox/tessellation-demo/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", config.ConfigDir())
		return
	}

	logger.Setup(logger.Options{
		Level:   cfg.Logging.Level,
		Console: true,
		File:    logger.DefaultFileOptions(cfg.Logging.LogFile),
	})
	defer logger.Sync()

	logger.Info("=== Tessellation Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	d, err := demo.New(cfg)
	if err != nil {
		logger.Error("failed to start demo", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	runErr := d.Run()
	d.Close()
	if runErr != nil {
		logger.Error("demo error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}
