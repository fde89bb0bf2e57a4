package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todoui/internal/api"
	"github.com/sandeepkv93/todoui/internal/config"
	"github.com/sandeepkv93/todoui/internal/logging"
	"github.com/sandeepkv93/todoui/internal/model"
	"github.com/sandeepkv93/todoui/internal/querycache"
	"github.com/sandeepkv93/todoui/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default $TODOUI_CONFIG or ~/.config/todoui/config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "todoui failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewFileLogger(cfg.Log.File, cfg.Log.Level, "todoui")
	if err != nil {
		return err
	}
	defer logger.Close()

	client, err := api.NewHTTPClient(cfg.API.BaseURL)
	if err != nil {
		return err
	}
	logger.Info("starting", "base_url", cfg.API.BaseURL, "timeout", cfg.API.Timeout)

	rc := update.RuntimeConfigFrom(cfg)
	m := update.NewModelWithConfig(client, rc, update.Options{
		Cache:    querycache.New[[]model.Todo](rc.CacheTTL),
		Notifier: update.ExecDesktopNotifier{},
		Logger:   logger.Logger,
	})

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}
