package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/producthouse/producthouse/internal/collab"
	"github.com/producthouse/producthouse/internal/config"
	"github.com/producthouse/producthouse/internal/db"
	"github.com/producthouse/producthouse/internal/httpapi"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/repository"
	"github.com/producthouse/producthouse/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "producthouse",
		Short: "Masterplan document service",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.AddCommand(serve)

	return root
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewZapObserver(logger)
	}
	completions := llm.NewClient(llm.Config{
		Endpoint:    cfg.LLM.Endpoint,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		TimeoutMs:   cfg.LLM.TimeoutMs,
		LogCalls:    cfg.LLM.LogCalls,
	}, observer)

	plans := repository.NewSQLiteMasterplanRepo(database)
	versions := repository.NewSQLiteVersionRepo(database)
	comments := repository.NewSQLiteCommentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	policy := collab.VersionPolicy{RecordEmpty: cfg.RecordEmptyVersions()}

	server, err := httpapi.NewServer(
		httpapi.Config{Host: cfg.Server.Host, Port: cfg.Server.Port},
		logger,
		service.NewMasterplanService(plans, completions),
		service.NewCollabService(plans, versions, completions, uow, policy),
		service.NewCommentService(plans, comments),
		completions,
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
