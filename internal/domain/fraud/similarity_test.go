package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetFiltersShortTokens(t *testing.T) {
	set := tokenSet("An OK day at THE spa")

	// "an", "ok", "at" are dropped, everything is lowercased
	assert.Equal(t, map[string]struct{}{
		"day": {},
		"the": {},
		"spa": {},
	}, set)
}

func TestJaccardSymmetry(t *testing.T) {
	a := tokenSet("the service was excellent and fast")
	b := tokenSet("the staff was friendly and helpful")

	assert.Equal(t, jaccard(a, b), jaccard(b, a))
}

func TestJaccardIdentity(t *testing.T) {
	a := tokenSet("the service was excellent and fast")

	assert.Equal(t, 1.0, jaccard(a, a))
}

func TestJaccardEmptySets(t *testing.T) {
	empty := tokenSet("a an it")
	full := tokenSet("the service was excellent")

	assert.Equal(t, 0.0, jaccard(empty, full))
	assert.Equal(t, 0.0, jaccard(full, empty))
	assert.Equal(t, 0.0, jaccard(empty, empty))
}

func TestJaccardNearDuplicate(t *testing.T) {
	// 6 shared tokens out of 7 in the union
	a := tokenSet("The service was excellent and fast")
	b := tokenSet("The service was excellent and very fast")

	sim := jaccard(a, b)
	assert.Greater(t, sim, 0.8)
}

func TestBestMatchExcludesSelfAndPicksHighest(t *testing.T) {
	corpus := []CorpusItem{
		{ID: 1, Content: "The service was excellent and fast"},
		{ID: 2, Content: "Terrible experience, would not come back here again"},
		{ID: 3, Content: "The service was excellent and very fast"},
	}

	sim, matchID := bestMatch("The service was excellent and fast", corpus, 1, 100)

	assert.Greater(t, sim, 0.8)
	if assert.NotNil(t, matchID) {
		assert.Equal(t, int64(3), *matchID)
	}
}

func TestBestMatchEmptyContent(t *testing.T) {
	corpus := []CorpusItem{{ID: 1, Content: "The service was excellent"}}

	sim, matchID := bestMatch("a an so", corpus, 0, 100)

	assert.Equal(t, 0.0, sim)
	assert.Nil(t, matchID)
}

func TestBestMatchHonorsCandidateCap(t *testing.T) {
	corpus := []CorpusItem{
		{ID: 1, Content: "Something else entirely unrelated content here"},
		{ID: 2, Content: "The service was excellent and fast"},
	}

	// cap of one candidate means the newest item is the only one scanned
	sim, matchID := bestMatch("The service was excellent and fast", corpus, 0, 1)

	assert.Equal(t, 0.0, sim)
	assert.Nil(t, matchID)
}
