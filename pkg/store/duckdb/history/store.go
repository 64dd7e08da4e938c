package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

// Run is one persisted scan summary. Full reports are exported
// separately; the history keeps only what the listing endpoints need.
type Run struct {
	ID                   string
	SubscriptionID       string
	ScanScope            string
	OverallRisk          string
	FindingCount         int
	SensitiveCount       int
	SecurityFindingCount int
	RecommendationCount  int
	CreatedAt            time.Time
}

// Store records scan runs in DuckDB.
type Store interface {
	Add(ctx context.Context, report domain.ComplianceReport) (Run, error)
	List(ctx context.Context, subscriptionID string) ([]Run, error)
}

type historyStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &historyStore{db: db}, nil
}

func (s *historyStore) Add(ctx context.Context, report domain.ComplianceReport) (Run, error) {
	run := Run{
		ID:                   uuid.NewString(),
		SubscriptionID:       report.Scope.SubscriptionID,
		ScanScope:            report.Scope.String(),
		OverallRisk:          string(report.Status.OverallRisk),
		FindingCount:         report.Status.FindingCount,
		SensitiveCount:       report.Status.SensitiveCount,
		SecurityFindingCount: report.Status.SecurityFindingCount,
		RecommendationCount:  report.Status.RecommendationCount,
		CreatedAt:            report.Timestamp,
	}

	query := `
		INSERT INTO scan_history (
			id, subscription, scan_scope, overall_risk,
			finding_count, sensitive_count, security_finding_count,
			recommendation_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.SubscriptionID, run.ScanScope, run.OverallRisk,
		run.FindingCount, run.SensitiveCount, run.SecurityFindingCount,
		run.RecommendationCount, run.CreatedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert scan run: %w", err)
	}
	return run, nil
}

func (s *historyStore) List(ctx context.Context, subscriptionID string) ([]Run, error) {
	query := `
		SELECT id, subscription, scan_scope, overall_risk,
			finding_count, sensitive_count, security_finding_count,
			recommendation_count, created_at
		FROM scan_history
		WHERE subscription = ?
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.SubscriptionID, &run.ScanScope, &run.OverallRisk,
			&run.FindingCount, &run.SensitiveCount, &run.SecurityFindingCount,
			&run.RecommendationCount, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
