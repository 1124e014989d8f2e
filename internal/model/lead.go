package model

import (
	"time"
)

// Lead is one service request from the storefront: a repair inquiry, an
// estimate request, or an emergency call-out.
type Lead struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email,omitempty"`
	Service   string    `db:"service" json:"service,omitempty"` // e.g. "furnace-repair", "ac-install"
	Message   string    `db:"message" json:"message,omitempty"`
	Emergency bool      `db:"emergency" json:"emergency"`
	Status    string    `db:"status" json:"status"`
	PhotoKeys []string  `db:"-" json:"photoKeys,omitempty"` // storage keys, loaded separately
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// LeadPhoto is one attachment a customer uploaded with a request,
// typically a photo of the unit or its data plate.
type LeadPhoto struct {
	ID         string    `db:"id"`
	LeadID     string    `db:"lead_id"`
	StorageKey string    `db:"storage_key"`
	CreatedAt  time.Time `db:"created_at"`
}
