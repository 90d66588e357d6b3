package fraud

import (
	"context"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReviewStore is the slice of the review table the pipeline reads and writes.
type ReviewStore interface {
	CountByAuthorSince(ctx context.Context, userID int64, since time.Time) (int64, error)
	RecentCorpus(ctx context.Context, since time.Time, limit int) ([]CorpusItem, error)
	MarkFlagged(ctx context.Context, reviewID int64, reason string) error
}

// AuditStore is the append-only fraud audit log.
type AuditStore interface {
	Append(ctx context.Context, e *AuditEntry) error
	CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)
}

const corpusCacheKey = "recent_corpus"

type Service struct {
	cfg     Config
	reviews ReviewStore
	audit   AuditStore
	corpus  *cache.Cache
}

func NewService(cfg Config, reviews ReviewStore, audit AuditStore) *Service {
	return &Service{
		cfg:     cfg,
		reviews: reviews,
		audit:   audit,
		corpus:  cache.New(cfg.CorpusCacheTTL, 2*cfg.CorpusCacheTTL),
	}
}

// EvaluateInput is everything one evaluation needs: the review's content plus
// the client-reported submission metadata.
type EvaluateInput struct {
	ReviewID               int64
	UserID                 int64
	CompanyID              int64
	Content                string
	IPAddress              string
	UserAgent              string
	WritingDurationSeconds float64
	IsCopyPaste            bool
}

// Evaluate runs the three detectors concurrently, aggregates their signals,
// appends the audit entry and, when the score crosses the flag threshold,
// marks the review. The audit entry is always written first so a moderator
// looking at a flagged review can always find the evaluation behind it.
//
// Individual detector failures degrade to "unknown" (zero contribution, logged)
// rather than failing the evaluation. A failure past aggregation aborts only
// this evaluation; the caller must never roll back the submission for it.
func (s *Service) Evaluate(ctx context.Context, in EvaluateInput) (*Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PipelineTimeout)
	defer cancel()

	now := time.Now().UTC()

	var (
		ipRate   rateResult
		userRate rateResult
		sim      similarityResult
	)

	// The three reads are independent; run them in parallel and join before
	// aggregating. Degradations are recorded, never treated as innocence.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.audit.CountByIPSince(gctx, in.IPAddress, now.Add(-s.cfg.IPWindow))
		if err != nil {
			ipRate.unknown = true
			s.logDegraded(in.ReviewID, "ip_rate", err)
			return nil
		}
		ipRate.count = count
		return nil
	})
	g.Go(func() error {
		count, err := s.reviews.CountByAuthorSince(gctx, in.UserID, now.Add(-s.cfg.UserWindow))
		if err != nil {
			userRate.unknown = true
			s.logDegraded(in.ReviewID, "user_rate", err)
			return nil
		}
		userRate.count = count
		return nil
	})
	g.Go(func() error {
		corpus, err := s.recentCorpus(gctx, now)
		if err != nil {
			sim.unknown = true
			s.logDegraded(in.ReviewID, "duplicate_content", err)
			return nil
		}
		sim.max, sim.matchID = bestMatch(in.Content, corpus, in.ReviewID, s.cfg.CorpusLimit)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var degraded []string
	if ipRate.unknown {
		degraded = append(degraded, "ip_rate")
	}
	if userRate.unknown {
		degraded = append(degraded, "user_rate")
	}
	if sim.unknown {
		degraded = append(degraded, "duplicate_content")
	}

	behavior := analyzeBehavior(s.cfg, in.Content, in.WritingDurationSeconds, in.IsCopyPaste)

	ev := aggregate(s.cfg, aggregateInput{
		ipRate:   ipRate,
		userRate: userRate,
		sim:      sim,
		behavior: behavior,
		degraded: degraded,
	})

	entry := &AuditEntry{
		ReviewID:        in.ReviewID,
		UserID:          in.UserID,
		IPAddress:       in.IPAddress,
		UserAgent:       in.UserAgent,
		TypingSpeedWPM:  ev.TypingSpeedWPM,
		IsCopyPaste:     in.IsCopyPaste,
		MaxSimilarity:   ev.MaxSimilarity,
		SimilarReviewID: ev.SimilarReviewID,
		FraudType:       ev.FraudType,
		RiskScore:       ev.RiskScore,
		CreatedAt:       now,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return nil, err
	}

	// The flag is only ever set here, never cleared: clearing is a moderator
	// action.
	if ev.Flagged {
		reason := strings.Join(ev.Indicators, "; ")
		if err := s.reviews.MarkFlagged(ctx, in.ReviewID, reason); err != nil {
			return nil, err
		}
	}

	fields := log.Fields{
		"review_id":  in.ReviewID,
		"user_id":    in.UserID,
		"risk_score": ev.RiskScore,
		"fraud_type": ev.FraudType,
		"flagged":    ev.Flagged,
	}
	if len(degraded) > 0 {
		fields["degraded"] = strings.Join(degraded, ",")
	}
	log.WithFields(fields).Info("fraud evaluation completed")

	return &ev, nil
}

// recentCorpus serves the candidate corpus through a short-TTL cache; the
// corpus is platform-wide, so one fetch serves every evaluation in the window.
func (s *Service) recentCorpus(ctx context.Context, now time.Time) ([]CorpusItem, error) {
	if cached, ok := s.corpus.Get(corpusCacheKey); ok {
		return cached.([]CorpusItem), nil
	}

	// one extra row so excluding the review under evaluation still leaves a
	// full window of candidates
	items, err := s.reviews.RecentCorpus(ctx, now.Add(-s.cfg.CorpusWindow), s.cfg.CorpusLimit+1)
	if err != nil {
		return nil, err
	}

	s.corpus.Set(corpusCacheKey, items, cache.DefaultExpiration)
	return items, nil
}

func (s *Service) logDegraded(reviewID int64, detector string, err error) {
	log.WithFields(log.Fields{
		"review_id": reviewID,
		"detector":  detector,
	}).WithError(err).Warn("detector degraded to unknown")
}
