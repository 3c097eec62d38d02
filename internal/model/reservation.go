package model

import "time"

// Reservation records one completed quota purchase against a gift.
// It is an append/delete-only contribution record, not a shopping-cart
// hold: there is no unpaid intermediate state, and a quantity change is
// modelled as delete plus recreate.
//
// Fields:
//  ID              – primary key identifier.
//  GiftID          – gift the contribution funds.
//  GuestID         – directory guest who contributed, when the purchase
//                    came from an invite page (nullable; free-text
//                    contributors have no guest record).
//  ContributorName – display name of the contributor.
//  Quantity        – number of quotas purchased in this transaction.
//  AmountPaidCents – quota price at purchase time × quantity.  The
//                    amount is frozen; later price edits on the gift
//                    never change it.
//  Message         – optional note to the hosts.
//  CreatedAt       – creation timestamp.
type Reservation struct {
	ID              uint64    `json:"id"`
	GiftID          uint64    `json:"gift_id"`
	GuestID         *uint64   `json:"guest_id,omitempty"`
	ContributorName string    `json:"contributor_name"`
	Quantity        uint32    `json:"quantity"`
	AmountPaidCents int64     `json:"amount_paid_cents"`
	Message         *string   `json:"message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
