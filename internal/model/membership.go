package model

import (
	"time"
)

// Membership carries a user's Pro entitlement. Two flag columns exist
// because two grant mechanisms were merged: has_pro_access is written by
// the current checkout flow, has_pro by the older entitlement sync.
// Either one alone entitles the member.
type Membership struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	HasProAccess       bool       `db:"has_pro_access"`
	HasPro             bool       `db:"has_pro"`
	Status             string     `db:"status"`
	Provider           string     `db:"provider"`
	ProviderCustomerID *string    `db:"provider_customer_id"`
	ProviderPaymentID  *string    `db:"provider_payment_id"`
	GrantedAt          *time.Time `db:"granted_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

const (
	MembershipStatusActive  = "active"
	MembershipStatusRevoked = "revoked"
)

const (
	ProviderStripe = "stripe"
	ProviderSync   = "entitlement_sync"
)

// Entitled combines the two flags. Kept identical to gate.Viewer.Entitled
// so the ingestion boundary and the decision agree.
func (m *Membership) Entitled() bool {
	return m.HasProAccess || m.HasPro
}

func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
