package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ziadkadry99/copybtn/internal/config"
	"github.com/ziadkadry99/copybtn/internal/copybutton"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `copybtn init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger for cfg and installs it as the default.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// injectorOptions maps the config onto copy button options. The clipboard
// and clock are left to the injector defaults.
func injectorOptions(cfg *config.Config, logger *slog.Logger) copybutton.Options {
	idle, confirmed := cfg.ButtonContent()
	return copybutton.Options{
		Selector:      cfg.Selector,
		TextSelector:  cfg.TextSelector,
		ClassName:     cfg.ButtonClass,
		IdleHTML:      idle,
		ConfirmedHTML: confirmed,
		RevertAfter:   cfg.RevertAfter(),
		Logger:        logger,
	}
}
