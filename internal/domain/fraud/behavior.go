package fraud

import (
	"strings"
	"unicode/utf8"
)

// behaviorResult carries the outcome of the client-metadata heuristics. The
// three rules are independent and additive; missing metadata skips a rule
// rather than penalizing.
type behaviorResult struct {
	indicators []string
	risk       float64
	wpm        *float64
	copyPaste  bool
	duration   float64
}

func analyzeBehavior(cfg Config, content string, writingDurationSeconds float64, isCopyPaste bool) behaviorResult {
	res := behaviorResult{
		copyPaste: isCopyPaste,
		duration:  writingDurationSeconds,
	}

	if writingDurationSeconds > 0 {
		words := len(strings.Fields(content))
		wpm := float64(words) / writingDurationSeconds * 60
		res.wpm = &wpm
		if wpm > cfg.FastTypingWPM {
			res.indicators = append(res.indicators, "abnormally fast typing")
			res.risk += cfg.FastTypingRisk
		}
	}

	if isCopyPaste {
		res.indicators = append(res.indicators, "content pasted rather than typed")
		res.risk += cfg.CopyPasteRisk
	}

	// characters, not bytes: multibyte scripts must not dodge the rule
	if utf8.RuneCountInString(content) < cfg.ShortBodyChars {
		res.indicators = append(res.indicators, "very short review")
		res.risk += cfg.ShortBodyRisk
	}

	return res
}
