package fraud

import "strings"

// CorpusItem is one candidate review the duplicate detector compares against.
type CorpusItem struct {
	ID      int64
	Content string
}

type similarityResult struct {
	max     float64
	matchID *int64
	unknown bool
}

// tokenSet lowercases, splits on whitespace and drops tokens of length <= 2.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if len(tok) <= 2 {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// jaccard returns |intersection| / |union| of two token sets, 0 when either
// set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// bestMatch scans the candidate corpus for the highest similarity to content.
// The review under evaluation is excluded and the scan is capped at limit
// candidates; corpus items arrive newest first.
func bestMatch(content string, corpus []CorpusItem, excludeID int64, limit int) (float64, *int64) {
	tokens := tokenSet(content)
	if len(tokens) == 0 {
		return 0, nil
	}

	var (
		max     float64
		matchID *int64
		scanned int
	)
	for _, item := range corpus {
		if item.ID == excludeID {
			continue
		}
		if limit > 0 && scanned >= limit {
			break
		}
		scanned++

		sim := jaccard(tokens, tokenSet(item.Content))
		if sim > max {
			max = sim
			id := item.ID
			matchID = &id
		}
	}
	return max, matchID
}
