package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/dp-tools/privacy-atlas/pkg/services/classify"
	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/dp-tools/privacy-atlas/pkg/services/scan"
	"github.com/dp-tools/privacy-atlas/pkg/services/secfeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExplorer struct{ mock.Mock }

func (m *mockExplorer) ListAccounts(ctx context.Context, resourceGroup string) ([]scan.Account, error) {
	args := m.Called(ctx, resourceGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scan.Account), args.Error(1)
}

func (m *mockExplorer) ListContainers(ctx context.Context, account scan.Account) ([]scan.Container, error) {
	args := m.Called(ctx, account)
	return args.Get(0).([]scan.Container), args.Error(1)
}

func (m *mockExplorer) ListObjects(ctx context.Context, container scan.Container) ([]scan.Object, error) {
	args := m.Called(ctx, container)
	return args.Get(0).([]scan.Object), args.Error(1)
}

func (m *mockExplorer) GetMetadata(ctx context.Context, object scan.Object) (map[string]string, error) {
	args := m.Called(ctx, object)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *mockExplorer) ReadContent(ctx context.Context, object scan.Object, limit int64) (string, error) {
	args := m.Called(ctx, object, limit)
	return args.String(0), args.Error(1)
}

type mockFeed struct{ mock.Mock }

func (m *mockFeed) ListAlerts(ctx context.Context, subscriptionID string) ([]domain.SecurityFinding, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityFinding), args.Error(1)
}

func (m *mockFeed) ListAssessments(ctx context.Context, subscriptionID string) ([]domain.SecurityFinding, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityFinding), args.Error(1)
}

func TestRun_EndToEnd(t *testing.T) {
	account := scan.Account{Name: "acct"}
	container := scan.Container{Account: account, Name: "docs"}
	blobNote := scan.Object{Container: container, Name: "note.txt"}
	blobID := scan.Object{Container: container, Name: "ids.txt"}

	explorer := new(mockExplorer)
	explorer.On("ListAccounts", mock.Anything, "").Return([]scan.Account{account}, nil)
	explorer.On("ListContainers", mock.Anything, account).Return([]scan.Container{container}, nil)
	explorer.On("ListObjects", mock.Anything, container).Return([]scan.Object{blobNote, blobID}, nil)
	explorer.On("GetMetadata", mock.Anything, blobNote).
		Return(map[string]string{"note": "contact: alice@example.com"}, nil)
	explorer.On("GetMetadata", mock.Anything, blobID).
		Return(map[string]string{"id": "123-45-6789"}, nil)

	feed := new(mockFeed)
	feed.On("ListAlerts", mock.Anything, "sub").Return([]domain.SecurityFinding{}, nil)
	feed.On("ListAssessments", mock.Anything, "sub").Return([]domain.SecurityFinding{}, nil)

	runner := NewRunner(
		scan.NewScanner(explorer, classify.NewClassifier(patterns.Builtin()), scan.DefaultSettings()),
		secfeed.NewMerger(feed),
	)

	result, err := runner.Run(context.Background(), domain.ScanScope{SubscriptionID: "sub"})
	require.NoError(t, err)

	require.Len(t, result.Findings, 2)
	byType := map[domain.DataType]domain.Finding{}
	for _, f := range result.Findings {
		byType[f.DataType] = f
	}
	assert.Equal(t, domain.RiskMedium, byType[domain.DataTypeEmail].RiskLevel)
	assert.Equal(t, domain.RiskHigh, byType[domain.DataTypeSSN].RiskLevel)

	assert.Equal(t, domain.RiskHigh, result.Status.OverallRisk)
	require.GreaterOrEqual(t, len(result.Recommendations), 2)
	assert.Equal(t, "Data Protection", result.Recommendations[0].Category)
	assert.Equal(t, "Special Category Data", result.Recommendations[1].Category)
}

func TestRun_SecurityFeedMergedIntoReport(t *testing.T) {
	explorer := new(mockExplorer)
	explorer.On("ListAccounts", mock.Anything, "").Return([]scan.Account{}, nil)

	feed := new(mockFeed)
	feed.On("ListAlerts", mock.Anything, "sub").Return([]domain.SecurityFinding{
		{Name: "Suspicious data access", Severity: domain.SecuritySeverityHigh},
	}, nil)
	feed.On("ListAssessments", mock.Anything, "sub").Return([]domain.SecurityFinding{}, nil)

	runner := NewRunner(
		scan.NewScanner(explorer, classify.NewClassifier(patterns.Builtin()), scan.DefaultSettings()),
		secfeed.NewMerger(feed),
	)

	result, err := runner.Run(context.Background(), domain.ScanScope{SubscriptionID: "sub"})
	require.NoError(t, err)

	assert.Empty(t, result.Findings)
	require.Len(t, result.SecurityFindings, 1)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, domain.PriorityCritical, result.Recommendations[0].Priority)
	assert.Equal(t, domain.RiskMedium, result.Status.OverallRisk)
}

func TestRun_FatalEnumerationFailure(t *testing.T) {
	explorer := new(mockExplorer)
	explorer.On("ListAccounts", mock.Anything, "").Return(nil, fmt.Errorf("invalid subscription"))

	feed := new(mockFeed)
	feed.On("ListAlerts", mock.Anything, "sub").Return([]domain.SecurityFinding{}, nil).Maybe()
	feed.On("ListAssessments", mock.Anything, "sub").Return([]domain.SecurityFinding{}, nil).Maybe()

	runner := NewRunner(
		scan.NewScanner(explorer, classify.NewClassifier(patterns.Builtin()), scan.DefaultSettings()),
		secfeed.NewMerger(feed),
	)

	_, err := runner.Run(context.Background(), domain.ScanScope{SubscriptionID: "sub"})
	assert.Error(t, err)
}
