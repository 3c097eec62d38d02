package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRegistrySummary(t *testing.T) {
	gifts := []Gift{
		{Name: "Geladeira", TotalValueCents: 300000, TotalQuotas: 20, QuotasSold: 5},
		{Name: "Cafeteira", TotalValueCents: 25000, TotalQuotas: 1, QuotasSold: 1},
	}
	reservations := []Reservation{
		{GiftID: 1, Quantity: 3, AmountPaidCents: 45000},
		{GiftID: 1, Quantity: 2, AmountPaidCents: 30000},
		{GiftID: 2, Quantity: 1, AmountPaidCents: 25000},
	}

	s := BuildRegistrySummary(gifts, reservations)

	assert.Equal(t, 2, s.GiftCount)
	assert.Equal(t, 1, s.CompletedCount)
	assert.Equal(t, uint64(6), s.TotalQuotasSold)
	assert.Equal(t, int64(325000), s.TotalTargetCents)
	assert.Equal(t, int64(100000), s.TotalCollectedCents)
	assert.Equal(t, int64(225000), s.TotalRemainingCents)
	assert.InDelta(t, 100000.0/325000.0*100, s.OverallPercent, 0.0001)
}

func TestBuildRegistrySummaryFrozenAmounts(t *testing.T) {
	// the gift's price changed after the purchase; the collected total
	// keeps the amount the contributor actually paid
	gifts := []Gift{
		{Name: "Geladeira", TotalValueCents: 400000, TotalQuotas: 20, QuotasSold: 5},
	}
	reservations := []Reservation{
		// paid under the old 300000-cent price, 15000 per quota
		{GiftID: 1, Quantity: 5, AmountPaidCents: 75000},
	}

	s := BuildRegistrySummary(gifts, reservations)

	assert.Equal(t, int64(75000), s.TotalCollectedCents)
	// remaining reflects the new target minus the frozen payments
	assert.Equal(t, int64(325000), s.TotalRemainingCents)
}

func TestBuildRegistrySummaryEmpty(t *testing.T) {
	s := BuildRegistrySummary(nil, nil)

	assert.Equal(t, 0, s.GiftCount)
	assert.Equal(t, int64(0), s.TotalTargetCents)
	// no divide-by-zero on an empty registry
	assert.Equal(t, float64(0), s.OverallPercent)
}
