package secfeed

import (
	"context"
	"strings"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// SecurityFeed exposes the two external feeds the merger consumes.
type SecurityFeed interface {
	ListAlerts(ctx context.Context, subscriptionID string) ([]domain.SecurityFinding, error)
	ListAssessments(ctx context.Context, subscriptionID string) ([]domain.SecurityFinding, error)
}

// DefaultKeywords is the relevance filter applied to feed items. It is a
// coarse heuristic: findings phrased without these terms are missed, so
// the filter trades recall for noise reduction.
var DefaultKeywords = []string{"data", "personal", "privacy", "gdpr", "encryption", "access"}

// Merger pulls alerts and assessments from the external security feed
// and keeps the ones relevant to data protection.
type Merger struct {
	feed     SecurityFeed
	keywords []string
}

func NewMerger(feed SecurityFeed) *Merger {
	return NewMergerWithKeywords(feed, DefaultKeywords)
}

func NewMergerWithKeywords(feed SecurityFeed, keywords []string) *Merger {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lowered = append(lowered, strings.ToLower(kw))
	}
	return &Merger{feed: feed, keywords: lowered}
}

// FetchRelevant queries both feeds and returns the filtered union. An
// unavailable feed degrades its section to empty and is logged; it never
// aborts the scan.
func (m *Merger) FetchRelevant(ctx context.Context, subscriptionID string) []domain.SecurityFinding {
	logger := zerolog.Ctx(ctx)
	var relevant []domain.SecurityFinding

	alerts, err := m.feed.ListAlerts(ctx, subscriptionID)
	if err != nil {
		logger.Error().Err(err).Msg("security alerts feed unavailable")
	} else {
		relevant = append(relevant, m.filter(alerts)...)
	}

	assessments, err := m.feed.ListAssessments(ctx, subscriptionID)
	if err != nil {
		logger.Error().Err(err).Msg("security assessments feed unavailable")
	} else {
		relevant = append(relevant, m.filter(assessments)...)
	}

	return relevant
}

func (m *Merger) filter(findings []domain.SecurityFinding) []domain.SecurityFinding {
	var kept []domain.SecurityFinding
	for _, f := range findings {
		if m.relevant(f) {
			kept = append(kept, f)
		}
	}
	return kept
}

func (m *Merger) relevant(f domain.SecurityFinding) bool {
	text := strings.ToLower(f.Name + " " + f.Description)
	for _, kw := range m.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
