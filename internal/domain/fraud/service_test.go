package fraud

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupAuditRepo(t *testing.T) *AuditRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:fraud_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&AuditEntry{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewAuditRepository(db)
}

type fakeReviewStore struct {
	corpus      []CorpusItem
	authorCount int64
	countErr    error
	corpusErr   error
	corpusCalls int
	flagged     map[int64]string
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{flagged: make(map[int64]string)}
}

func (f *fakeReviewStore) CountByAuthorSince(_ context.Context, _ int64, _ time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.authorCount, nil
}

func (f *fakeReviewStore) RecentCorpus(_ context.Context, _ time.Time, _ int) ([]CorpusItem, error) {
	f.corpusCalls++
	if f.corpusErr != nil {
		return nil, f.corpusErr
	}
	return f.corpus, nil
}

func (f *fakeReviewStore) MarkFlagged(_ context.Context, reviewID int64, reason string) error {
	f.flagged[reviewID] = reason
	return nil
}

type failingAuditStore struct {
	AuditStore
	appendErr error
}

func (f *failingAuditStore) Append(ctx context.Context, e *AuditEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	return f.AuditStore.Append(ctx, e)
}

const cleanContent = "The crew arrived on time and handled the whole move with genuine care."

func TestEvaluateWritesAuditEntryEvenWhenClean(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	svc := NewService(DefaultConfig(), reviews, audit)

	ev, err := svc.Evaluate(context.Background(), EvaluateInput{
		ReviewID:  1,
		UserID:    10,
		CompanyID: 100,
		Content:   cleanContent,
		IPAddress: "198.51.100.7",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)

	assert.Zero(t, ev.RiskScore)
	assert.Equal(t, FraudTypeNone, ev.FraudType)
	assert.False(t, ev.Flagged)
	assert.Empty(t, reviews.flagged)

	entries, err := audit.GetByReviewID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FraudTypeNone, entries[0].FraudType)
	assert.Equal(t, "198.51.100.7", entries[0].IPAddress)
	assert.Zero(t, entries[0].RiskScore)
}

func TestEvaluateSixSubmissionsFromSameIP(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	svc := NewService(DefaultConfig(), reviews, audit)

	const ip = "203.0.113.5"
	var last *Evaluation
	for i := 1; i <= 6; i++ {
		ev, err := svc.Evaluate(context.Background(), EvaluateInput{
			ReviewID:  int64(i),
			UserID:    int64(i),
			CompanyID: 100,
			Content:   "Great service, fast and friendly staff",
			IPAddress: ip,
		})
		require.NoError(t, err)
		last = ev
	}

	assert.Contains(t, last.Indicators, "5+ reviews from same IP in 24h")
	assert.GreaterOrEqual(t, last.RiskScore, 0.30)
	assert.Equal(t, FraudTypeIPAbuse, last.FraudType)
}

func TestEvaluateDuplicateContentFlagged(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	reviews.corpus = []CorpusItem{{ID: 7, Content: "The service was excellent and fast"}}
	// three submissions by this author in the last hour trip the rapid-
	// submission heuristic alongside the duplicate signal
	reviews.authorCount = 3
	svc := NewService(DefaultConfig(), reviews, audit)

	ev, err := svc.Evaluate(context.Background(), EvaluateInput{
		ReviewID:  8,
		UserID:    10,
		CompanyID: 100,
		Content:   "The service was excellent and very fast",
		IPAddress: "198.51.100.7",
	})
	require.NoError(t, err)

	assert.Equal(t, FraudTypeDuplicateContent, ev.FraudType)
	assert.Greater(t, ev.MaxSimilarity, 0.8)
	require.NotNil(t, ev.SimilarReviewID)
	assert.Equal(t, int64(7), *ev.SimilarReviewID)
	assert.True(t, ev.Flagged)

	reason, ok := reviews.flagged[int64(8)]
	require.True(t, ok)
	assert.Contains(t, reason, "similar review found")

	entries, err := audit.GetByReviewID(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FraudTypeDuplicateContent, entries[0].FraudType)
}

func TestEvaluateDegradedStoresContributeNothing(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	reviews.countErr = errors.New("store down")
	reviews.corpusErr = errors.New("store down")
	svc := NewService(DefaultConfig(), reviews, audit)

	ev, err := svc.Evaluate(context.Background(), EvaluateInput{
		ReviewID:  1,
		UserID:    10,
		CompanyID: 100,
		Content:   cleanContent,
		IPAddress: "198.51.100.7",
	})
	require.NoError(t, err)

	assert.Zero(t, ev.RiskScore)
	assert.Equal(t, FraudTypeNone, ev.FraudType)
	assert.ElementsMatch(t, []string{"user_rate", "duplicate_content"}, ev.Degraded)

	// the evaluation is still audited
	entries, err := audit.GetByReviewID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEvaluateAuditFailurePreventsFlagging(t *testing.T) {
	reviews := newFakeReviewStore()
	reviews.corpus = []CorpusItem{{ID: 7, Content: "The service was excellent and fast"}}
	reviews.authorCount = 3
	audit := &failingAuditStore{
		AuditStore: setupAuditRepo(t),
		appendErr:  errors.New("audit log unavailable"),
	}
	svc := NewService(DefaultConfig(), reviews, audit)

	_, err := svc.Evaluate(context.Background(), EvaluateInput{
		ReviewID:  8,
		UserID:    10,
		CompanyID: 100,
		Content:   "The service was excellent and very fast",
		IPAddress: "198.51.100.7",
	})
	require.Error(t, err)

	// the audit entry comes first; if it cannot be written the flag must not
	// be either
	assert.Empty(t, reviews.flagged)
}

func TestEvaluateIsIdempotentAgainstFixedCorpus(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	reviews.corpus = []CorpusItem{{ID: 7, Content: "Completely unrelated text about gardening tools"}}
	svc := NewService(DefaultConfig(), reviews, audit)

	in := EvaluateInput{
		ReviewID:               1,
		UserID:                 10,
		CompanyID:              100,
		Content:                cleanContent,
		IPAddress:              "198.51.100.7",
		WritingDurationSeconds: 120,
	}

	first, err := svc.Evaluate(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.Evaluate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.FraudType, second.FraudType)
	assert.Equal(t, first.Indicators, second.Indicators)
}

func TestEvaluateTimeoutAbortsWithoutSideEffects(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	cfg := DefaultConfig()
	cfg.PipelineTimeout = -time.Second // already expired

	svc := NewService(cfg, reviews, audit)

	_, err := svc.Evaluate(context.Background(), EvaluateInput{
		ReviewID:  1,
		UserID:    10,
		CompanyID: 100,
		Content:   cleanContent,
		IPAddress: "198.51.100.7",
	})
	require.Error(t, err)

	assert.Empty(t, reviews.flagged)
	entries, err := audit.GetByReviewID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecentCorpusIsCached(t *testing.T) {
	audit := setupAuditRepo(t)
	reviews := newFakeReviewStore()
	svc := NewService(DefaultConfig(), reviews, audit)

	in := EvaluateInput{ReviewID: 1, UserID: 10, CompanyID: 100, Content: cleanContent, IPAddress: "198.51.100.7"}

	_, err := svc.Evaluate(context.Background(), in)
	require.NoError(t, err)
	in.ReviewID = 2
	_, err = svc.Evaluate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, reviews.corpusCalls)
}
