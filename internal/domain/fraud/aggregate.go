package fraud

import "fmt"

// Evaluation is the verdict of one pipeline run.
type Evaluation struct {
	RiskScore       float64   `json:"risk_score"`
	FraudType       FraudType `json:"fraud_type"`
	Indicators      []string  `json:"indicators"`
	Flagged         bool      `json:"flagged"`
	MaxSimilarity   float64   `json:"max_similarity"`
	SimilarReviewID *int64    `json:"similar_review_id,omitempty"`
	TypingSpeedWPM  *float64  `json:"typing_speed_wpm,omitempty"`
	Degraded        []string  `json:"-"`
}

type aggregateInput struct {
	ipRate   rateResult
	userRate rateResult
	sim      similarityResult
	behavior behaviorResult
	degraded []string
}

// aggregate merges detector outputs into a clamped additive score, the ordered
// indicator list and a priority-classified fraud type. The model is linear on
// purpose: a moderator can account for every point of the score by reading the
// indicators.
func aggregate(cfg Config, in aggregateInput) Evaluation {
	var (
		risk       float64
		indicators []string
	)

	ipTripped := in.ipRate.tripped(cfg.IPThreshold)
	if ipTripped {
		indicators = append(indicators, fmt.Sprintf("%d+ reviews from same IP in 24h", cfg.IPThreshold))
		risk += cfg.IPRisk
	}

	userTripped := in.userRate.tripped(cfg.UserThreshold)
	if userTripped {
		indicators = append(indicators, fmt.Sprintf("%d+ reviews in 1h", cfg.UserThreshold))
		risk += cfg.UserRisk
	}

	duplicate := false
	if !in.sim.unknown {
		switch {
		case in.sim.max > cfg.SimilarityHigh:
			indicators = append(indicators, fmt.Sprintf("%.0f%% similar review found", in.sim.max*100))
			risk += cfg.SimilarityHighRisk
			duplicate = true
		case in.sim.max > cfg.SimilarityLow:
			indicators = append(indicators, fmt.Sprintf("%.0f%% similarity", in.sim.max*100))
			risk += cfg.SimilarityLowRisk
		}
	}

	indicators = append(indicators, in.behavior.indicators...)
	risk += in.behavior.risk

	if risk > 1.0 {
		risk = 1.0
	}

	botLike := in.behavior.copyPaste ||
		(in.behavior.duration > 0 && in.behavior.duration < cfg.BotMinWritingSeconds)

	fraudType := FraudTypeNone
	switch {
	case ipTripped:
		fraudType = FraudTypeIPAbuse
	case duplicate:
		fraudType = FraudTypeDuplicateContent
	case botLike:
		fraudType = FraudTypeBotBehavior
	case userTripped:
		fraudType = FraudTypeRapidSubmission
	}

	return Evaluation{
		RiskScore:       risk,
		FraudType:       fraudType,
		Indicators:      indicators,
		Flagged:         risk > cfg.FlagThreshold,
		MaxSimilarity:   in.sim.max,
		SimilarReviewID: in.sim.matchID,
		TypingSpeedWPM:  in.behavior.wpm,
		Degraded:        in.degraded,
	}
}
