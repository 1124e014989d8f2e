package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/frostlinehq/frostline/internal/db"
	"github.com/frostlinehq/frostline/internal/model"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := db.RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return database
}

func createTestUser(t *testing.T, database *sqlx.DB) *model.User {
	t.Helper()

	repo := NewUserRepository(database)
	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		Name:      "Test User",
		CreatedAt: time.Now(),
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestMembershipCreateAndLookup(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database)
	repo := NewMembershipRepository(database)

	now := time.Now()
	m := &model.Membership{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Status:    model.MembershipStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(m); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}

	got, err := repo.ByUserID(user.ID)
	if err != nil {
		t.Fatalf("failed to look up membership: %v", err)
	}
	if got.HasProAccess || got.HasPro {
		t.Error("fresh membership should carry no entitlement")
	}
	if got.Entitled() {
		t.Error("fresh membership should not be entitled")
	}

	_, err = repo.ByUserID("no-such-user")
	if !errors.Is(err, ErrMembershipNotFound) {
		t.Errorf("expected ErrMembershipNotFound, got %v", err)
	}
}

func TestMembershipUpdateEntitlement(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database)
	repo := NewMembershipRepository(database)

	now := time.Now()
	m := &model.Membership{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Status:    model.MembershipStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(m); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}

	customerID := "cus_123"
	m.HasProAccess = true
	m.Provider = model.ProviderStripe
	m.ProviderCustomerID = &customerID
	m.GrantedAt = &now
	if err := repo.Update(m); err != nil {
		t.Fatalf("failed to update membership: %v", err)
	}

	got, err := repo.ByUserID(user.ID)
	if err != nil {
		t.Fatalf("failed to look up membership: %v", err)
	}
	if !got.HasProAccess {
		t.Error("expected has_pro_access to persist")
	}
	if got.HasPro {
		t.Error("legacy flag should be untouched by a checkout grant")
	}
	if !got.Entitled() {
		t.Error("expected entitlement after grant")
	}

	byCustomer, err := repo.ByProviderCustomerID(customerID)
	if err != nil {
		t.Fatalf("failed to look up by customer id: %v", err)
	}
	if byCustomer.UserID != user.ID {
		t.Errorf("expected membership for user %s, got %s", user.ID, byCustomer.UserID)
	}
}

func TestTokenConsumeIsSingleUse(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database)
	repo := NewTokenRepository(database)

	token := &model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeMagicLink,
		Token:     "tok_abc123",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := repo.Create(token); err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	got, err := repo.ConsumeToken("tok_abc123")
	if err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("expected token for user %s, got %s", user.ID, got.UserID)
	}
	if got.UsedAt == nil {
		t.Error("expected used_at to be set after consume")
	}

	_, err = repo.ConsumeToken("tok_abc123")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("second consume should fail with ErrTokenNotFound, got %v", err)
	}
}

func TestTokenConsumeExpired(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database)
	repo := NewTokenRepository(database)

	token := &model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeMagicLink,
		Token:     "tok_expired",
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	}
	if err := repo.Create(token); err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	_, err := repo.ConsumeToken("tok_expired")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expired token should not be consumable, got %v", err)
	}
}
