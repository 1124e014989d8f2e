package repository

import (
	"database/sql"
	"errors"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
)

type MembershipRepository interface {
	Create(m *model.Membership) error
	ByUserID(userID string) (*model.Membership, error)
	ByProviderCustomerID(providerCustomerID string) (*model.Membership, error)
	Update(m *model.Membership) error
}

type membershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(m *model.Membership) error {
	query := `
		INSERT INTO memberships (
			id, user_id, has_pro_access, has_pro, status, provider,
			provider_customer_id, provider_payment_id, granted_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(
		query,
		m.ID,
		m.UserID,
		m.HasProAccess,
		m.HasPro,
		m.Status,
		m.Provider,
		m.ProviderCustomerID,
		m.ProviderPaymentID,
		m.GrantedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)

	return err
}

func (r *membershipRepository) ByUserID(userID string) (*model.Membership, error) {
	m := &model.Membership{}
	query := `SELECT * FROM memberships WHERE user_id = $1`

	err := r.db.Get(m, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *membershipRepository) ByProviderCustomerID(providerCustomerID string) (*model.Membership, error) {
	m := &model.Membership{}
	query := `SELECT * FROM memberships WHERE provider_customer_id = $1`

	err := r.db.Get(m, query, providerCustomerID)
	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *membershipRepository) Update(m *model.Membership) error {
	query := `
		UPDATE memberships
		SET has_pro_access = $1,
		    has_pro = $2,
		    status = $3,
		    provider = $4,
		    provider_customer_id = $5,
		    provider_payment_id = $6,
		    granted_at = $7,
		    updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(
		query,
		m.HasProAccess,
		m.HasPro,
		m.Status,
		m.Provider,
		m.ProviderCustomerID,
		m.ProviderPaymentID,
		m.GrantedAt,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMembershipNotFound
	}

	return nil
}
