package main

import (
	"fmt"
	"net"
	"os"

	"github.com/dp-tools/privacy-atlas/pkg/server"
	"github.com/dp-tools/privacy-atlas/pkg/services/azure"
	"github.com/dp-tools/privacy-atlas/pkg/services/classify"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/dp-tools/privacy-atlas/pkg/services/report"
	"github.com/dp-tools/privacy-atlas/pkg/services/scan"
	"github.com/dp-tools/privacy-atlas/pkg/services/secfeed"
	"github.com/dp-tools/privacy-atlas/pkg/store/duckdb"
	"github.com/dp-tools/privacy-atlas/pkg/store/duckdb/history"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profile   string
	rulesPath string
	workers   int
	dbPath    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Privacy Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Azure config profile to authenticate with")
	rootCmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a detection rules file")
	rootCmd.Flags().IntVar(&workers, "workers", 2, "Number of accounts scanned in parallel")
	rootCmd.Flags().StringVar(&dbPath, "db", "privacy-atlas.db", "Path to the scan history database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := azure.LoadConfig(profile)
	if err != nil {
		return fmt.Errorf("failed to establish Azure session: %w", err)
	}

	registry := patterns.Builtin()
	if rulesPath != "" {
		registry, err = patterns.Load(rulesPath)
		if err != nil {
			return err
		}
	}

	explorer, err := azure.NewStorageExplorer(cfg.SubscriptionID, cfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to create storage explorer: %w", err)
	}
	feed, err := azure.NewSecurityFeed(cfg.SubscriptionID, cfg.Credentials)
	if err != nil {
		return fmt.Errorf("failed to create security feed: %w", err)
	}

	settings := scan.DefaultSettings()
	settings.Workers = workers

	runner := report.NewRunner(
		scan.NewScanner(explorer, classify.NewClassifier(registry), settings),
		secfeed.NewMerger(feed),
	)

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open scan history database: %w", err)
	}
	historyStore, err := history.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create scan history store: %w", err)
	}

	logger.Info().Int("rules", len(registry.Rules())).Msg("detection rules loaded")

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Runner:   runner,
			History:  historyStore,
			Registry: registry,
		},
	})

	return api.Start()
}
