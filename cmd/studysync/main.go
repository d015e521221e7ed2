package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/studysync/internal/cli"
	"github.com/alexanderramin/studysync/internal/config"
	"github.com/alexanderramin/studysync/internal/db"
	"github.com/alexanderramin/studysync/internal/intelligence"
	"github.com/alexanderramin/studysync/internal/llm"
	"github.com/alexanderramin/studysync/internal/planner"
	"github.com/alexanderramin/studysync/internal/repository"
	"github.com/alexanderramin/studysync/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag picks --config out of the arguments before the command tree
// exists, since the tree is built from the loaded config.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("studysync", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(config.Options{ConfigFile: configFlag(os.Args[1:])})
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	slots := repository.NewSQLiteSlotRepo(database)
	runs := repository.NewSQLitePlanRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	store, report, err := service.OpenStore(ctx, slots, uow,
		service.WithObserver(service.NewLogUseCaseObserver(logger)))
	if err != nil {
		return err
	}
	if len(report.Corrupt) > 0 {
		logger.Warn("saved data could not be read, defaults used", "slots", report.Corrupt)
	}
	if len(report.Missing) > 0 && !report.Fresh() {
		logger.Warn("saved data incomplete, defaults used", "slots", report.Missing)
	}

	// Content generation degrades to nil services when disabled or when
	// the client cannot be built.
	var client llm.LLMClient
	if cfg.LLM.Enabled {
		client, err = llm.NewClient(ctx, cfg.LLM, llm.ObserverFor(cfg.LLM, logger))
		if err != nil {
			logger.Warn("content generation unavailable", "provider", cfg.LLM.Provider, "error", err)
			client = nil
		} else {
			defer client.Close()
		}
	}

	app := &cli.App{
		In: os.Stdin,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	var tips *service.TipTracker
	if client != nil {
		app.Drafts = intelligence.NewResourceDraftService(client, logger)
		tips = service.NewTipTracker(store, intelligence.NewTipService(client, logger), logger)
		app.Tips = tips
		defer tips.Wait()
	}

	generator := planner.NewGenerator(cfg.Planner)
	app.Study = service.NewStudyService(store, generator, runs, tips)
	app.Catalog = service.NewCatalogService(store)
	app.Transfer = service.NewTransferService(store, tips)

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
