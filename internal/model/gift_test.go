package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftDerivedFields(t *testing.T) {
	// R$ 3000.00 split into 20 quotas with 5 sold
	g := Gift{
		Name:            "Geladeira",
		TotalValueCents: 300000,
		HasQuotas:       true,
		TotalQuotas:     20,
		QuotasSold:      5,
		Active:          true,
	}

	assert.Equal(t, int64(15000), g.QuotaPriceCents())
	assert.Equal(t, uint32(15), g.Available())
	assert.InDelta(t, 25.0, g.FundedPercent(), 0.0001)
	assert.False(t, g.Completed())
}

func TestGiftQuotaPriceDivisionGuard(t *testing.T) {
	// a zero quota count never reaches the store, but the read path
	// must still not divide by zero
	g := Gift{TotalValueCents: 300000, TotalQuotas: 0}
	assert.Equal(t, int64(0), g.QuotaPriceCents())
	assert.Equal(t, float64(0), g.FundedPercent())
}

func TestGiftClampingAfterOverride(t *testing.T) {
	// a manual correction pushed the sold counter past the total
	g := Gift{TotalValueCents: 100000, TotalQuotas: 10, QuotasSold: 12}

	assert.Equal(t, uint32(0), g.Available())
	assert.Equal(t, float64(100), g.FundedPercent())
	assert.True(t, g.Completed())
}

func TestGiftNormalize(t *testing.T) {
	g := Gift{Name: "  Jogo de Panelas  ", Description: " antiaderente ", HasQuotas: false, TotalQuotas: 7}
	g.Normalize()

	assert.Equal(t, "Jogo de Panelas", g.Name)
	assert.Equal(t, "antiaderente", g.Description)
	// indivisible gifts always collapse to a single quota
	assert.Equal(t, uint32(1), g.TotalQuotas)
}

func TestGiftValidate(t *testing.T) {
	tests := []struct {
		name    string
		gift    Gift
		wantErr string
	}{
		{
			name: "valid",
			gift: Gift{Name: "Cafeteira", TotalValueCents: 25000, TotalQuotas: 1},
		},
		{
			name:    "empty name",
			gift:    Gift{TotalValueCents: 25000, TotalQuotas: 1},
			wantErr: "name is required",
		},
		{
			name:    "negative value",
			gift:    Gift{Name: "Cafeteira", TotalValueCents: -1, TotalQuotas: 1},
			wantErr: "total value must not be negative",
		},
		{
			name:    "zero quotas",
			gift:    Gift{Name: "Cafeteira", TotalValueCents: 25000, TotalQuotas: 0},
			wantErr: "total quotas must be at least 1",
		},
		{
			name:    "sold above total",
			gift:    Gift{Name: "Cafeteira", TotalValueCents: 25000, TotalQuotas: 5, QuotasSold: 6},
			wantErr: "quotas sold cannot exceed total quotas",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.gift.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestGiftPurchaseArithmetic(t *testing.T) {
	g := Gift{
		Name:            "Lua de Mel",
		TotalValueCents: 500000,
		HasQuotas:       true,
		TotalQuotas:     50,
		Active:          true,
	}

	// buy 3 quotas
	qty := uint32(3)
	amount := g.QuotaPriceCents() * int64(qty)
	g.QuotasSold += qty

	assert.Equal(t, int64(30000), amount)
	assert.Equal(t, uint32(47), g.Available())

	// the frozen amount survives a later price edit
	g.TotalValueCents = 600000
	assert.Equal(t, int64(30000), amount)
	assert.Equal(t, int64(12000), g.QuotaPriceCents())

	// cancel returns the quotas
	g.QuotasSold -= qty
	assert.Equal(t, uint32(50), g.Available())
	assert.False(t, g.Completed())
}

func TestGiftView(t *testing.T) {
	g := Gift{Name: "Adega", TotalValueCents: 80000, HasQuotas: true, TotalQuotas: 8, QuotasSold: 8}
	v := g.View()

	assert.Equal(t, int64(10000), v.QuotaPriceCents)
	assert.Equal(t, uint32(0), v.Available)
	assert.Equal(t, float64(100), v.FundedPercent)
	assert.True(t, v.Completed)
	assert.Equal(t, g.Name, v.Name)
}
