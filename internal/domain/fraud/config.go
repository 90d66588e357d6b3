package fraud

import "time"

// Config gathers every threshold and weight of the pipeline in one place, so
// tuning never touches detector logic.
type Config struct {
	// rate tracking
	IPWindow      time.Duration
	IPThreshold   int
	IPRisk        float64
	UserWindow    time.Duration
	UserThreshold int
	UserRisk      float64

	// duplicate content
	SimilarityHigh     float64
	SimilarityHighRisk float64
	SimilarityLow      float64
	SimilarityLowRisk  float64
	CorpusWindow       time.Duration
	CorpusLimit        int
	CorpusCacheTTL     time.Duration

	// behavior
	FastTypingWPM        float64
	FastTypingRisk       float64
	CopyPasteRisk        float64
	ShortBodyChars       int
	ShortBodyRisk        float64
	BotMinWritingSeconds float64

	// decision
	FlagThreshold   float64
	PipelineTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		IPWindow:      24 * time.Hour,
		IPThreshold:   5,
		IPRisk:        0.30,
		UserWindow:    time.Hour,
		UserThreshold: 3,
		UserRisk:      0.25,

		SimilarityHigh:     0.8,
		SimilarityHighRisk: 0.35,
		SimilarityLow:      0.6,
		SimilarityLowRisk:  0.15,
		CorpusWindow:       30 * 24 * time.Hour,
		CorpusLimit:        100,
		CorpusCacheTTL:     30 * time.Second,

		FastTypingWPM:        200,
		FastTypingRisk:       0.20,
		CopyPasteRisk:        0.15,
		ShortBodyChars:       50,
		ShortBodyRisk:        0.10,
		BotMinWritingSeconds: 10,

		FlagThreshold:   0.6,
		PipelineTimeout: 5 * time.Second,
	}
}
