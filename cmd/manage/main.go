package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/app"
	"github.com/djangocon/conference-site/internal/commands"
	"github.com/djangocon/conference-site/internal/config"
	"github.com/djangocon/conference-site/internal/logger"
)

func main() {
	logCfg, err := config.LoadLoggerSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "manage: load logger settings: %v\n", err)
		os.Exit(1)
	}
	// Вывод команд идёт в stdout, поэтому консольный лог пишем в stderr.
	log, err := logger.NewWriter(logCfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "manage: init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCmd(commands.Options{
		Out: os.Stdout,
		Log: log,
		OpenDB: func(migrate bool) (*gorm.DB, func() error, error) {
			return app.OpenDB(log, migrate)
		},
		LoadConfig: config.LoadSiteConfig,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "manage: %v\n", err)
		os.Exit(1)
	}
}
