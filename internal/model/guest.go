package model

import "time"

// Guest is one invited party on the guest list.  Each guest receives a
// unique invite token that unlocks their personal invite page, where
// they confirm attendance and optionally contribute to the registry.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – guest name as printed on the invitation.
//  Email          – contact email for email invitations.
//  Phone          – contact phone for SMS/WhatsApp invitations.
//  InviteToken    – unique token embedded in the invite link.
//  GroupName      – free-form grouping (family, friends, work, ...).
//  Notes          – optional admin-only notes.
//  MaxCompanions  – how many companions this guest may bring.
//  CompanionCount – companions declared at confirmation time.
//  Confirmed      – whether the guest confirmed attendance.
//  ConfirmedAt    – when attendance was confirmed.
//  Message        – optional message left at confirmation time.
//  InviteSent     – whether any invitation has been dispatched.
//  InviteSentAt   – when the last invitation was dispatched.
//  ViewedAt       – when the invite page was last opened.
//  ViewCount      – how many times the invite page was opened.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Guest struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	InviteToken    string     `json:"invite_token"`
	GroupName      string     `json:"group_name"`
	Notes          *string    `json:"notes,omitempty"`
	MaxCompanions  uint32     `json:"max_companions"`
	CompanionCount uint32     `json:"companion_count"`
	Confirmed      bool       `json:"confirmed"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	Message        *string    `json:"message,omitempty"`
	InviteSent     bool       `json:"invite_sent"`
	InviteSentAt   *time.Time `json:"invite_sent_at,omitempty"`
	ViewedAt       *time.Time `json:"viewed_at,omitempty"`
	ViewCount      uint32     `json:"view_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// GroupStatistics aggregates RSVP state for one guest group.
type GroupStatistics struct {
	GroupName   string `json:"group_name"`
	Total       int64  `json:"total"`
	Confirmed   int64  `json:"confirmed"`
	TotalPeople int64  `json:"total_people"`
}

// GuestStatistics is the aggregate RSVP read model for the admin
// dashboard.  TotalPeople counts confirmed guests plus their declared
// companions.
type GuestStatistics struct {
	Total            int64             `json:"total"`
	Confirmed        int64             `json:"confirmed"`
	TotalPeople      int64             `json:"total_people"`
	ConfirmationRate float64           `json:"confirmation_rate"`
	InvitesSent      int64             `json:"invites_sent"`
	ByGroup          []GroupStatistics `json:"by_group"`
}
