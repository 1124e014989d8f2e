package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
)

type AuthService struct {
	userRepository       repository.UserRepository
	tokenRepository      repository.TokenRepository
	membershipService    *MembershipService
	emailService         *EmailService
	jwtSecret            string
	isProduction         bool
	jwtExpiry            time.Duration
	tokenMagicLinkExpiry time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	membershipService *MembershipService,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	tokenMagicLinkExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:       userRepository,
		tokenRepository:      tokenRepository,
		membershipService:    membershipService,
		emailService:         emailService,
		jwtSecret:            jwtSecret,
		isProduction:         isProduction,
		jwtExpiry:            jwtExpiry,
		tokenMagicLinkExpiry: tokenMagicLinkExpiry,
	}
}

// Register creates a password account and its empty membership row.
func (s *AuthService) Register(email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: &hash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.membershipService.EnsureMembership(user.ID)
	if err != nil {
		slog.Warn("failed to create membership row", "error", err, "user_id", user.ID)
		// Don't fail registration; the row is created lazily elsewhere
	}

	err = s.emailService.SendWelcomeEmail(user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "email", user.Email)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, fmt.Errorf("this account uses passwordless login, use the magic link option")
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// SendMagicLink handles the combined login/signup flow.
// If the user exists, sends a login link; otherwise creates a
// passwordless account first.
func (s *AuthService) SendMagicLink(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		now := time.Now()
		user = &model.User{
			ID:        uuid.New().String(),
			Email:     email,
			CreatedAt: now,
			// password_hash stays NULL for passwordless accounts
		}

		err = s.userRepository.Create(user)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		err = s.membershipService.EnsureMembership(user.ID)
		if err != nil {
			slog.Warn("failed to create membership row", "error", err, "user_id", user.ID)
		}

		slog.Info("new passwordless user created", "email", email, "user_id", user.ID)
	}

	err = s.tokenRepository.DeleteByUserAndType(user.ID, model.TokenTypeMagicLink)
	if err != nil {
		slog.Warn("failed to delete old magic link tokens", "error", err, "user_id", user.ID)
	}

	magicToken, err := s.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeMagicLink,
		Token:     magicToken,
		ExpiresAt: time.Now().Add(s.tokenMagicLinkExpiry),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	err = s.emailService.SendMagicLinkEmail(user.Email, magicToken, user.Name)
	if err != nil {
		slog.Error("failed to send magic link email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("magic link sent", "email", user.Email)
	return nil
}

// VerifyMagicLink consumes the token and returns the authenticated user.
func (s *AuthService) VerifyMagicLink(token string) (*model.User, error) {
	tokenModel, err := s.tokenRepository.ConsumeToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired magic link")
	}

	if tokenModel.Type != model.TokenTypeMagicLink {
		return nil, fmt.Errorf("invalid token type")
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// First successful link click also verifies the address
	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			slog.Warn("failed to verify email", "error", err, "user_id", user.ID)
		}
	}

	slog.Info("user authenticated via magic link", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// AuthenticateOAuth upserts a user from a verified OAuth identity.
func (s *AuthService) AuthenticateOAuth(email, provider string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to lookup user: %w", err)
		}

		now := time.Now()
		user = &model.User{
			ID:              uuid.New().String(),
			Email:           email,
			EmailVerifiedAt: &now, // OAuth provider has verified the address
			CreatedAt:       now,
		}

		err = s.userRepository.Create(user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		err = s.membershipService.EnsureMembership(user.ID)
		if err != nil {
			slog.Warn("failed to create membership row", "error", err, "user_id", user.ID)
		}

		slog.Info("new OAuth user created", "email", email, "user_id", user.ID, "provider", provider)
		return user, nil
	}

	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			slog.Warn("failed to mark email as verified", "error", err, "user_id", user.ID)
		}
	}

	slog.Info("user authenticated via OAuth", "user_id", user.ID, "email", user.Email, "provider", provider)
	return user, nil
}
