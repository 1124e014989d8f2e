package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/repository"
)

type MembershipService struct {
	repo repository.MembershipRepository
}

func NewMembershipService(repo repository.MembershipRepository) *MembershipService {
	return &MembershipService{repo: repo}
}

// EnsureMembership creates the user's membership row if it does not
// exist yet. New rows carry no entitlement.
func (s *MembershipService) EnsureMembership(userID string) error {
	_, err := s.repo.ByUserID(userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrMembershipNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	now := time.Now()
	membership := &model.Membership{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    model.MembershipStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Create(membership)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

func (s *MembershipService) Membership(userID string) (*model.Membership, error) {
	m, err := s.repo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

// GrantPro marks the membership entitled after a completed checkout.
// Writes the current flag; the legacy has_pro column is only ever set by
// the entitlement sync.
func (s *MembershipService) GrantPro(userID, providerCustomerID, providerPaymentID string) error {
	err := s.EnsureMembership(userID)
	if err != nil {
		return err
	}

	m, err := s.repo.ByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	now := time.Now()
	m.HasProAccess = true
	m.Status = model.MembershipStatusActive
	m.Provider = model.ProviderStripe
	if providerCustomerID != "" {
		m.ProviderCustomerID = &providerCustomerID
	}
	if providerPaymentID != "" {
		m.ProviderPaymentID = &providerPaymentID
	}
	m.GrantedAt = &now
	m.UpdatedAt = now

	err = s.repo.Update(m)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	return nil
}

// SyncEntitlements overwrites both flags with whatever the external auth
// collaborator reports. This is the ingestion boundary for the legacy
// flag; no meaning beyond the OR is assigned to either column.
func (s *MembershipService) SyncEntitlements(userID string, hasProAccess, hasPro bool) error {
	err := s.EnsureMembership(userID)
	if err != nil {
		return err
	}

	m, err := s.repo.ByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	m.HasProAccess = hasProAccess
	m.HasPro = hasPro
	m.Provider = model.ProviderSync
	m.UpdatedAt = time.Now()

	err = s.repo.Update(m)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	return nil
}

// Revoke clears both entitlement flags.
func (s *MembershipService) Revoke(userID string) error {
	m, err := s.repo.ByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	m.HasProAccess = false
	m.HasPro = false
	m.Status = model.MembershipStatusRevoked
	m.UpdatedAt = time.Now()

	err = s.repo.Update(m)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	return nil
}
