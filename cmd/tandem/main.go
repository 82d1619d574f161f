package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexanderramin/tandem/internal/cli"
	"github.com/alexanderramin/tandem/internal/config"
	"github.com/alexanderramin/tandem/internal/db"
	"github.com/alexanderramin/tandem/internal/devserver"
	"github.com/alexanderramin/tandem/internal/logging"
	"github.com/alexanderramin/tandem/internal/remote"
	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/alexanderramin/tandem/internal/service"
	"github.com/alexanderramin/tandem/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --config must be known before the services are wired, so it is read
	// ahead of cobra's own parse.
	configPath := peekConfigFlag(os.Args[1:])

	bootLogger := logging.New(os.Stderr, logLevelOrWarn(os.Getenv("TANDEM_LOG_LEVEL")))
	cfg, err := config.Load(config.LoaderOptions{ConfigPath: configPath, Logger: bootLogger})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(os.Stderr, logLevelOrWarn(cfg.LogLevel))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire the store and repositories
	st := store.NewSQLiteStore(database, store.WithUnitOfWork(db.NewSQLiteUnitOfWork(database)))
	grids := repository.NewStoreAvailabilityRepo(st)
	projects := repository.NewStoreProjectRepo(st)
	queue := repository.NewStoreRetryQueueRepo(st)
	stats := repository.NewStoreFocusStatsRepo(st)
	profiles := repository.NewStoreProfileRepo(st)

	// Wire the backend client
	var callObserver remote.Observer = remote.NoopObserver{}
	if cfg.LogCalls {
		callObserver = remote.NewLogObserver(logger)
	}
	client := remote.NewHTTPClient(cfg.Remote(), callObserver)

	// Wire services
	useCases := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Profiles:     service.NewProfileService(profiles),
		Projects:     service.NewProjectService(projects),
		Availability: service.NewAvailabilityService(grids, useCases),
		Meetings:     service.NewMeetingService(grids, projects, client, useCases),
		Telemetry:    service.NewTelemetryService(client, queue, stats, useCases),

		Backend:       devserver.New(st, logger).Handler(),
		DevServerAddr: cfg.DevServerAddr,
	}

	// Forms and the live timer need a terminal on both ends.
	app.IsInteractive = func() bool {
		return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
			(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.tandem/config.toml)")
	return rootCmd.ExecuteContext(ctx)
}

// peekConfigFlag extracts --config from args, ignoring every other flag.
func peekConfigFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "--":
			return ""
		case a == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

func logLevelOrWarn(s string) slog.Level {
	level, err := logging.ParseLevel(s)
	if err != nil || s == "" {
		return slog.LevelWarn
	}
	return level
}
