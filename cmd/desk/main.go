package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/projectdesk/internal/cli"
	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/config"
	"github.com/alexanderramin/projectdesk/internal/db"
	"github.com/alexanderramin/projectdesk/internal/logging"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	sessionRepo := repository.NewSQLiteWorkSessionRepo(database)
	eventRepo := repository.NewSQLiteWorkEventRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	clk := clock.System{}
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, clk),
		Members:   service.NewMemberService(memberRepo, clk),
		Tasks:     service.NewTaskService(repository.NewSQLiteTaskRepo(database), clk),
		Notes:     service.NewNoteService(repository.NewSQLiteNoteRepo(database), clk),
		FollowUps: service.NewFollowUpService(repository.NewSQLiteFollowUpRepo(database), clk),
		Work:      service.NewWorkService(projectRepo, memberRepo, sessionRepo, uow, clk, observer),
		History:   service.NewHistoryService(projectRepo, eventRepo, clk, loc, logger, observer),

		Clock:        clk,
		Location:     loc,
		Logger:       logger,
		HistoryDays:  cfg.HistoryDays,
		TickInterval: cfg.TickInterval,
	}

	// The watch view and the end-note prompt need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
