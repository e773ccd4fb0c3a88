package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/tempo/internal/auth"
	"github.com/alexanderramin/tempo/internal/cli"
	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/config"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/timer"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.Failure(domain.UserMessage(err)))
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	cfgPath := os.Getenv("TEMPO_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath(home)
	}
	cfg, err := config.Load(home, cfgPath, filepath.Join(filepath.Dir(cfgPath), ".env"))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	clientRepo := repository.NewSQLiteClientRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry: Prometheus always, slog text on stderr when enabled.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var logOut io.Writer
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	observers := []service.UseCaseObserver{
		service.NewPrometheusUseCaseObserver(reg),
		service.NewLogUseCaseObserver(logOut, cfg.SlogLevel()),
	}

	app := &cli.App{
		Auth: auth.NewLocalProvider(
			repository.NewSQLiteUserRepo(database),
			repository.NewSQLiteAuthSessionRepo(database),
		),
		Clients:      service.NewClientService(clientRepo, uow, observers...),
		Sessions:     service.NewSessionService(sessionRepo, uow, observers...),
		Summary:      service.NewSummaryService(clientRepo, sessionRepo, observers...),
		Clock:        timer.SystemClock{},
		TickInterval: cfg.TickInterval,
		ListenAddr:   cfg.ListenAddr,
		Metrics:      reg,
		Interactive:  isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
