package model

// RegistrySummary is the portfolio-wide read model shown on the admin
// dashboard.  TotalCollectedCents sums the frozen AmountPaidCents of
// the reservations rather than recomputing current price × quotas
// sold, so a later price edit never rewrites what contributors
// actually paid.
type RegistrySummary struct {
	GiftCount           int     `json:"gift_count"`
	CompletedCount      int     `json:"completed_count"`
	TotalQuotasSold     uint64  `json:"total_quotas_sold"`
	TotalTargetCents    int64   `json:"total_target_cents"`
	TotalCollectedCents int64   `json:"total_collected_cents"`
	TotalRemainingCents int64   `json:"total_remaining_cents"`
	OverallPercent      float64 `json:"overall_percent"`
}

// BuildRegistrySummary folds the gift and reservation collections into
// a RegistrySummary.  It is a pure function over a consistent snapshot
// of both collections; it performs no I/O and mutates nothing.
func BuildRegistrySummary(gifts []Gift, reservations []Reservation) RegistrySummary {
	var s RegistrySummary
	s.GiftCount = len(gifts)
	for _, g := range gifts {
		s.TotalTargetCents += g.TotalValueCents
		s.TotalQuotasSold += uint64(g.QuotasSold)
		if g.Completed() {
			s.CompletedCount++
		}
	}
	for _, r := range reservations {
		s.TotalCollectedCents += r.AmountPaidCents
	}
	s.TotalRemainingCents = s.TotalTargetCents - s.TotalCollectedCents
	if s.TotalTargetCents > 0 {
		s.OverallPercent = float64(s.TotalCollectedCents) / float64(s.TotalTargetCents) * 100
	}
	return s
}
