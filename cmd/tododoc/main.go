package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/tododoc/internal/cli"
	"github.com/alexanderramin/tododoc/internal/config"
	"github.com/alexanderramin/tododoc/internal/db"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/repository"
	"github.com/alexanderramin/tododoc/internal/service"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	cfg, err := config.Load(config.Path(home), home)
	if err != nil {
		return err
	}

	logHandler := service.NewLogHandler(os.Stderr, cfg.LogLevel)
	logger := slog.New(logHandler)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Debug("store ready", "storage", cfg.Storage)

	docs := service.NewDocumentService(store, service.Options{
		Policy:   cfg.Policy(),
		Defaults: cfg.EditorDefaults(),
	}, service.NewLogUseCaseObserver(logger))

	app := &cli.App{
		Docs:     docs,
		Version:  version,
		Document: cfg.Document,
		Defaults: editor.DefaultDefaults().Merge(cfg.EditorDefaults()),
		IsInteractive: func() bool {
			in, out := os.Stdin.Fd(), os.Stdout.Fd()
			return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
				(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
		},
		SetVerbose: func() { logHandler.SetLevel(log.DebugLevel) },
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout())
		defer cancel()
		database, err := db.ConnectMongo(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() { _ = database.Client().Disconnect(context.Background()) }
		store := repository.NewMongoStore(database)
		if err := store.EnsureIndexes(connectCtx); err != nil {
			disconnect()
			return nil, nil, err
		}
		return store, disconnect, nil
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		store := repository.NewSQLiteStore(db.NewSQLiteUnitOfWork(database))
		return store, func() { database.Close() }, nil
	}
}
