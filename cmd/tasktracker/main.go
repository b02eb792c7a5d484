package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AlibekovAA/tasktracker/internal/app"
	"github.com/AlibekovAA/tasktracker/internal/common/bootstrap"
	"github.com/AlibekovAA/tasktracker/internal/common/config"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	srv "github.com/AlibekovAA/tasktracker/internal/common/server"
)

const serviceName = "tasktracker"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Multi-user task tracker web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDotEnv()
		},
		RunE: serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newMigrateCommand())

	return root
}

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and run the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides HTTP_PORT)")

	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runServe(ctx context.Context, port string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return err
	}
	if port != "" {
		cfg.HTTPPort = port
	}
	log.Infof("configuration loaded: %s", cfg)

	store, err := bootstrap.OpenStore(ctx, log, cfg.DatabaseURL)
	if err != nil {
		log.Errorf("failed to open store: %v", err)
		return err
	}
	defer store.Close()

	if _, err := store.Migrate(ctx, log); err != nil {
		log.Errorf("failed to apply migrations: %v", err)
		return err
	}

	application, err := app.New(cfg, store, log, app.Options{})
	if err != nil {
		log.Errorf("failed to build application: %v", err)
		return err
	}

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	application.StartBackground(bgCtx)

	server := srv.NewServer(srv.FromConfig(cfg), application.Handler())

	shutdownHooks := []srv.ShutdownHook{
		func(context.Context) error {
			log.Infof("%s service: stopping background workers", serviceName)
			cancel()
			application.Close()
			return nil
		},
	}

	return srv.Run(ctx, server, log, serviceName, shutdownHooks)
}

func runMigrate(ctx context.Context) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	databaseURL, err := config.LoadDatabaseURL()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return err
	}

	store, err := bootstrap.OpenStore(ctx, log, databaseURL)
	if err != nil {
		log.Errorf("failed to open store: %v", err)
		return err
	}
	defer store.Close()

	applied, err := store.Migrate(ctx, log)
	if err != nil {
		log.Errorf("failed to apply migrations: %v", err)
		return err
	}

	log.Infof("migrations complete: %d applied", applied)
	return nil
}

func newLogger() (*logger.Logger, error) {
	log, err := bootstrap.InitializeLogger(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return nil, err
	}
	return log, nil
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
