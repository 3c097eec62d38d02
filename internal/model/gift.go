package model

import (
	"errors"
	"strings"
	"time"
)

// Gift is one item on the couple's registry.  A gift has a fixed total
// price that may be split into equal quotas so several guests can fund
// it together.  Indivisible gifts keep TotalQuotas at 1, which makes a
// full purchase equivalent to buying the single quota.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name shown on the invite page.
//  Description     – optional longer text shown under the name.
//  TotalValueCents – full price of the item in cents.
//  HasQuotas       – whether the item is split into quotas.
//  TotalQuotas     – number of quotas the price is divided by (>= 1).
//  QuotasSold      – quotas already purchased; only the reservation
//                    flow and the explicit admin override touch it.
//  ImageURL        – optional display asset reference.
//  StoreURL        – optional external store link.
//  Active          – visibility flag for the public listing.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Gift struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	TotalValueCents int64     `json:"total_value_cents"`
	HasQuotas       bool      `json:"has_quotas"`
	TotalQuotas     uint32    `json:"total_quotas"`
	QuotasSold      uint32    `json:"quotas_sold"`
	ImageURL        *string   `json:"image_url,omitempty"`
	StoreURL        *string   `json:"store_url,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// QuotaPriceCents returns the price of a single quota.  TotalQuotas is
// guaranteed >= 1 by Normalize/Validate before a gift reaches the
// store, so the division is safe; a zero value would otherwise surface
// on every read, which is why it is rejected at write time instead.
func (g *Gift) QuotaPriceCents() int64 {
	if g.TotalQuotas == 0 {
		return 0
	}
	return g.TotalValueCents / int64(g.TotalQuotas)
}

// Available returns how many quotas can still be purchased.  The value
// is clamped at zero so a manual admin correction that pushed
// QuotasSold past TotalQuotas never produces a negative count.
func (g *Gift) Available() uint32 {
	if g.QuotasSold >= g.TotalQuotas {
		return 0
	}
	return g.TotalQuotas - g.QuotasSold
}

// FundedPercent returns how much of the gift is funded, in [0,100].
func (g *Gift) FundedPercent() float64 {
	if g.TotalQuotas == 0 {
		return 0
	}
	p := float64(g.QuotasSold) / float64(g.TotalQuotas) * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Completed reports whether every quota has been sold.
func (g *Gift) Completed() bool {
	return g.QuotasSold >= g.TotalQuotas
}

// Normalize trims the name and forces TotalQuotas to 1 for gifts that
// are not split into quotas, mirroring how the admin form submits them.
func (g *Gift) Normalize() {
	g.Name = strings.TrimSpace(g.Name)
	g.Description = strings.TrimSpace(g.Description)
	if !g.HasQuotas {
		g.TotalQuotas = 1
	}
}

// Validate checks the write-time rules for a gift.  It returns a plain
// descriptive error; repositories wrap it with ErrValidation so
// handlers can map it to a 400 response.
func (g *Gift) Validate() error {
	if g.Name == "" {
		return errors.New("name is required")
	}
	if g.TotalValueCents < 0 {
		return errors.New("total value must not be negative")
	}
	if g.TotalQuotas < 1 {
		return errors.New("total quotas must be at least 1")
	}
	if g.QuotasSold > g.TotalQuotas {
		return errors.New("quotas sold cannot exceed total quotas")
	}
	return nil
}

// GiftView is the read model served to the public listing and the
// admin table.  It carries the stored fields plus the derived figures
// so clients never recompute them.
type GiftView struct {
	Gift
	QuotaPriceCents int64   `json:"quota_price_cents"`
	Available       uint32  `json:"available"`
	FundedPercent   float64 `json:"funded_percent"`
	Completed       bool    `json:"completed"`
}

// View builds the GiftView projection for a gift.
func (g Gift) View() GiftView {
	return GiftView{
		Gift:            g,
		QuotaPriceCents: g.QuotaPriceCents(),
		Available:       g.Available(),
		FundedPercent:   g.FundedPercent(),
		Completed:       g.Completed(),
	}
}
