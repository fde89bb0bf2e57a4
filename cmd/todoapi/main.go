package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/sandeepkv93/todoui/internal/config"
	"github.com/sandeepkv93/todoui/internal/logging"
	"github.com/sandeepkv93/todoui/internal/server"
	"github.com/sandeepkv93/todoui/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default $TODOAPI_CONFIG or ~/.config/todoapi/config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "todoapi failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadServer(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewServerLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(repo, logger, registry)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("database", cfg.Database.Path),
	)
	return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
}
