package main

import (
	"flag"
	"os"

	"card-binder/internal/app"
	"card-binder/internal/config"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config; overrides CONFIG_PATH")
	logLevel := flag.String("loglevel", "info", "Logging level: trace, debug, info, warn, error")
	console := flag.Bool("console", false, "Human-readable console logs instead of JSON")
	flag.Parse()

	if *console {
		zlog.InitConsole()
	} else {
		zlog.Init()
	}
	if err := zlog.SetLevel(*logLevel); err != nil {
		zlog.Logger.Fatal().Err(err).Str("level", *logLevel).Msg("Invalid log level")
	}

	if *configPath != "" {
		if err := os.Setenv("CONFIG_PATH", *configPath); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("Failed to set config path")
		}
	}

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Str("config", os.Getenv("CONFIG_PATH")).Msg("Failed to load config")
	}

	zlog.Logger.Info().
		Str("config", configSource()).
		Str("addr", cfg.Server.Addr).
		Str("log_level", *logLevel).
		Msg("Starting card binder")

	application, err := app.NewApp(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create app")
	}

	if err := application.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("App failed")
	}

	zlog.Logger.Info().Msg("App exited successfully")
	os.Exit(0)
}

func configSource() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "env"
}
