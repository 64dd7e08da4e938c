package commands

import (
	"fmt"
	"os"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/runtime/terminal/export"
	"github.com/dp-tools/privacy-atlas/pkg/services/azure"
	"github.com/dp-tools/privacy-atlas/pkg/services/classify"
	"github.com/dp-tools/privacy-atlas/pkg/services/config"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/dp-tools/privacy-atlas/pkg/services/report"
	"github.com/dp-tools/privacy-atlas/pkg/services/scan"
	"github.com/dp-tools/privacy-atlas/pkg/services/secfeed"
	storeexport "github.com/dp-tools/privacy-atlas/pkg/store/export"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ScanCmd struct {
	profile       string
	subscription  string
	resourceGroup string
	settingsPath  string
	rulesPath     string
	workers       int
	content       bool
	outputPath    string
	reporter      *export.Reporter
}

func NewScanCmd(reporter *export.Reporter) *cobra.Command {
	sc := &ScanCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan storage accounts for personal data",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "", "Azure config profile to authenticate with")
	cmd.Flags().StringVar(&sc.subscription, "subscription", "", "Subscription to scan")
	cmd.Flags().StringVar(&sc.resourceGroup, "resource-group", "", "Restrict the scan to one resource group")
	cmd.Flags().StringVar(&sc.settingsPath, "settings", "", "Path to a scanner settings file")
	cmd.Flags().StringVar(&sc.rulesPath, "rules", "", "Path to a detection rules file (defaults to the builtin rules)")
	cmd.Flags().IntVar(&sc.workers, "workers", 0, "Number of accounts scanned in parallel")
	cmd.Flags().BoolVar(&sc.content, "content", false, "Also scan object content, not just metadata")
	cmd.Flags().StringVar(&sc.outputPath, "output", "", "Write the full JSON report to this path")

	_ = cmd.MarkFlagRequired("subscription")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := azure.LoadConfig(sc.profile)
	if err != nil {
		return fmt.Errorf("failed to establish Azure session: %w", err)
	}

	subscription := sc.subscription
	if subscription == "" {
		subscription = cfg.SubscriptionID
	}
	if subscription == "" {
		return fmt.Errorf("no subscription given and none configured in profile")
	}

	settings := scan.DefaultSettings()
	keywords := secfeed.DefaultKeywords
	rulesPath := sc.rulesPath

	if sc.settingsPath != "" {
		profile, err := config.LoadScanProfile(sc.settingsPath)
		if err != nil {
			return err
		}
		settings.Workers = profile.Workers
		settings.IncludeContent = profile.IncludeContent
		settings.ContentLimitBytes = profile.ContentLimitBytes
		if len(profile.Keywords) > 0 {
			keywords = profile.Keywords
		}
		if rulesPath == "" {
			rulesPath = profile.RulesPath
		}
	}
	if cmd.Flags().Changed("workers") {
		settings.Workers = sc.workers
	}
	if cmd.Flags().Changed("content") {
		settings.IncludeContent = sc.content
	}

	registry := patterns.Builtin()
	if rulesPath != "" {
		registry, err = patterns.Load(rulesPath)
		if err != nil {
			return err
		}
	}

	explorer, err := azure.NewStorageExplorer(subscription, cfg.Credentials)
	if err != nil {
		return err
	}
	feed, err := azure.NewSecurityFeed(subscription, cfg.Credentials)
	if err != nil {
		return err
	}

	runner := report.NewRunner(
		scan.NewScanner(explorer, classify.NewClassifier(registry), settings),
		secfeed.NewMergerWithKeywords(feed, keywords),
	)

	result, err := runner.Run(ctx, domain.ScanScope{
		SubscriptionID: subscription,
		ResourceGroup:  sc.resourceGroup,
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if sc.outputPath != "" {
		if err := storeexport.WriteFile(sc.outputPath, result); err != nil {
			return err
		}
		logger.Info().Str("path", sc.outputPath).Msg("report written")
	}

	return sc.reporter.Handle(result)
}
