package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/workfolio/internal/api"
	"github.com/good-yellow-bee/workfolio/internal/api/health"
	"github.com/good-yellow-bee/workfolio/internal/metrics"
	"github.com/good-yellow-bee/workfolio/internal/storage"
	"github.com/good-yellow-bee/workfolio/pkg/config"
)

var (
	configFile string
	httpAddr   string
	dbPath     string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "workfolio-server",
	Short: "Workfolio Server - work experience project API",
	Long: `Workfolio Server exposes a REST API for managing work experience
projects backed by a single SQLite database file.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("workfolio-server %s\n", config.Version)
		fmt.Printf("  commit: %s\n", config.Commit)
		fmt.Printf("  built:  %s\n", config.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "database file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg *Config
	var err error

	// Load configuration from file if provided
	if configFile != "" {
		cfg, err = LoadConfig(configFile)
	} else {
		cfg, err = DefaultConfig()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.Server.Address = httpAddr
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	cfg.Verbose = verbose

	// Auto-create data directory
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Initialize storage
	store := storage.NewSQLiteStorage(cfg.Database.Path)
	if err := store.Open(); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Printf("database initialized at %s", cfg.Database.Path)

	// Create API server
	srv, err := api.New(&api.Config{
		Address: cfg.Server.Address,
		Verbose: cfg.Verbose,
	}, store)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	srv.RegisterHealthChecker(health.NewSQLiteChecker(store.DB()))

	metrics.SetBuildInfo(config.Version, config.Commit, config.BuildTime)

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	log.Printf("starting workfolio-server %s", config.Version)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if cfg.Metrics.Enabled {
		metricsSrv := metrics.NewServer(cfg.Metrics.Address)
		g.Go(func() error {
			return metricsSrv.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Printf("server stopped")
	return nil
}
