package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photo-brander/internal/app"
	"photo-brander/internal/config"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: $CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	zlog.Init()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "brander: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.MustLoad()
	}
	return config.Load(path)
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	brander, err := app.NewApp(ctx, cfg, &zlog.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := brander.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to close event producer")
		}
	}()

	summary, err := brander.Run(ctx)
	if err != nil {
		return err
	}

	zlog.Logger.Info().
		Str("run_id", summary.RunID).
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Bool("interrupted", summary.Interrupted).
		Msg("Brander exited successfully")
	return nil
}
