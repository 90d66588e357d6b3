package fraud

// rateResult is one window count from the rate tracker. A store failure makes
// the count unknown: unknown contributes zero risk but is never read as proof
// of innocence, and the degradation is surfaced to the operational log.
type rateResult struct {
	count   int64
	unknown bool
}

func (r rateResult) tripped(threshold int) bool {
	return !r.unknown && r.count >= int64(threshold)
}
