// Package queue defines message payloads exchanged over the message broker.
package queue

// QuotaPurchasedEvent is published after a quota purchase commits.  It
// carries everything downstream consumers need to log or notify the
// couple without querying the primary database.
type QuotaPurchasedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	GiftID          uint64 `json:"gift_id"`
	GiftName        string `json:"gift_name"`
	ContributorName string `json:"contributor_name"`
	Quantity        uint32 `json:"quantity"`
	AmountPaidCents int64  `json:"amount_paid_cents"`
	QuotasSold      uint32 `json:"quotas_sold"`
	TotalQuotas     uint32 `json:"total_quotas"`
	PurchasedAt     string `json:"purchased_at"`
}
