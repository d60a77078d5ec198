package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/duskfall/mstro/internal/api"
	"github.com/duskfall/mstro/internal/composer"
	"github.com/duskfall/mstro/internal/notify"
	"github.com/duskfall/mstro/internal/services"
	"github.com/duskfall/mstro/internal/session"
	"github.com/duskfall/mstro/internal/shared"
	"github.com/duskfall/mstro/internal/store"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	timeout := time.Duration(config.API.TimeoutSeconds) * time.Second
	client := api.NewClient(config.API.BaseURL, timeout, notify.NewLog(logger))

	opts := RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Client:     client,
		Logger:     logger,
	}

	if db, err := shared.NewDatabase(config.Database.Path); err != nil {
		logger.Warn("local store unavailable, run 'mstro setup database'", "error", err)
	} else {
		defer db.Close()
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		kv := store.NewKV(db)
		opts.Creds = store.NewCredStore(kv)
		opts.Drafts = store.NewDraftStore(kv)
		opts.Settings = store.NewSettingsStore(kv)
		opts.Configs = composer.NewConfigStore(kv)

		manager := session.NewManager(client, opts.Creds, logger)
		client.SetAuthority(manager)
		opts.Session = manager
	}

	opts.Studio = services.NewStudio(client, config)

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "mstro",
		Usage:    "Generate and manage AI songs and images from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
