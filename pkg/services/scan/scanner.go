package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/classify"
	"github.com/rs/zerolog"
)

// Account is a storage account visible within the scan scope.
type Account struct {
	Name          string
	ResourceGroup string
}

type Container struct {
	Account Account
	Name    string
}

type Object struct {
	Container Container
	Name      string
}

// Location is the account/container/object path prefix used in findings.
func (o Object) Location() string {
	return o.Container.Account.Name + "/" + o.Container.Name + "/" + o.Name
}

// StorageExplorer enumerates storage accounts, containers and objects.
// Implementations are read-only against the backend.
type StorageExplorer interface {
	ListAccounts(ctx context.Context, resourceGroup string) ([]Account, error)
	ListContainers(ctx context.Context, account Account) ([]Container, error)
	ListObjects(ctx context.Context, container Container) ([]Object, error)
	GetMetadata(ctx context.Context, object Object) (map[string]string, error)
	ReadContent(ctx context.Context, object Object, limit int64) (string, error)
}

// Settings control scan parallelism and the optional content mode.
// Metadata analysis is always performed; content analysis is opt-in and
// reads at most ContentLimitBytes per object.
type Settings struct {
	Workers           int
	IncludeContent    bool
	ContentLimitBytes int64
}

func DefaultSettings() Settings {
	return Settings{
		Workers:           1,
		ContentLimitBytes: 1 << 20,
	}
}

// Scanner walks storage accounts depth-first and classifies every
// candidate text field it encounters. Accounts are independent units of
// work: a failure in one account is logged and skipped, never fatal.
type Scanner struct {
	explorer   StorageExplorer
	classifier *classify.Classifier
	settings   Settings
}

func NewScanner(explorer StorageExplorer, classifier *classify.Classifier, settings Settings) *Scanner {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.ContentLimitBytes <= 0 {
		settings.ContentLimitBytes = DefaultSettings().ContentLimitBytes
	}
	return &Scanner{
		explorer:   explorer,
		classifier: classifier,
		settings:   settings,
	}
}

// Scan enumerates every account in scope and returns the accumulated
// findings. Only a total enumeration failure (ListAccounts) is an
// error; zero accounts yields an empty result. On cancellation the
// findings collected so far are returned rather than discarded.
func (s *Scanner) Scan(ctx context.Context, scope domain.ScanScope) ([]domain.Finding, error) {
	logger := zerolog.Ctx(ctx)

	accounts, err := s.explorer.ListAccounts(ctx, scope.ResourceGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate storage accounts: %w", err)
	}
	if len(accounts) == 0 {
		logger.Info().Str("scope", scope.String()).Msg("no storage accounts in scope")
		return nil, nil
	}

	workers := s.settings.Workers
	if workers > len(accounts) {
		workers = len(accounts)
	}

	jobs := make(chan Account)
	results := make(chan []domain.Finding, len(accounts))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for account := range jobs {
				findings, err := s.scanAccount(ctx, account)
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().
						Err(err).
						Str("account", account.Name).
						Msg("account scan failed, skipping")
				}
				if len(findings) > 0 {
					results <- findings
				}
				logger.Info().
					Str("account", account.Name).
					Int("findings", len(findings)).
					Msg("account scanned")
			}
		}()
	}

feed:
	for _, account := range accounts {
		select {
		case jobs <- account:
		case <-ctx.Done():
			logger.Info().Msg("scan cancelled, returning partial results")
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	var all []domain.Finding
	for findings := range results {
		all = append(all, findings...)
	}
	return all, nil
}

// scanAccount walks one account's containers, objects and metadata. It
// returns whatever findings it collected alongside the first error that
// stopped it, so a partially scanned account still contributes results.
func (s *Scanner) scanAccount(ctx context.Context, account Account) ([]domain.Finding, error) {
	var findings []domain.Finding
	logger := zerolog.Ctx(ctx)

	containers, err := s.explorer.ListContainers(ctx, account)
	if err != nil {
		return findings, fmt.Errorf("failed to list containers for %s: %w", account.Name, err)
	}

	for _, container := range containers {
		if err := ctx.Err(); err != nil {
			return findings, err
		}

		objects, err := s.explorer.ListObjects(ctx, container)
		if err != nil {
			logger.Error().
				Err(err).
				Str("container", container.Name).
				Msg("failed to list objects, skipping container")
			continue
		}

		for _, object := range objects {
			if err := ctx.Err(); err != nil {
				return findings, err
			}
			findings = append(findings, s.scanObject(ctx, object)...)
		}
	}
	return findings, nil
}

func (s *Scanner) scanObject(ctx context.Context, object Object) []domain.Finding {
	var findings []domain.Finding
	logger := zerolog.Ctx(ctx)

	metadata, err := s.explorer.GetMetadata(ctx, object)
	if err != nil {
		logger.Error().
			Err(err).
			Str("object", object.Location()).
			Msg("failed to read object metadata, skipping object")
		return nil
	}

	for key, value := range metadata {
		location := object.Location() + "/metadata:" + key
		findings = append(findings, s.classifier.Classify(location, value, domain.DetectionMetadata)...)
	}

	if s.settings.IncludeContent {
		content, err := s.explorer.ReadContent(ctx, object, s.settings.ContentLimitBytes)
		if err != nil {
			logger.Error().
				Err(err).
				Str("object", object.Location()).
				Msg("failed to read object content")
			return findings
		}
		location := object.Location() + "/content"
		findings = append(findings, s.classifier.Classify(location, content, domain.DetectionContent)...)
	}

	return findings
}
