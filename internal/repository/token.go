package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTokenNotFound = errors.New("token not found")
)

type TokenRepository interface {
	Create(token *model.Token) error
	// ConsumeToken atomically marks an unused, unexpired token as used and
	// returns it. A second consume of the same token fails.
	ConsumeToken(token string) (*model.Token, error)
	DeleteByUserAndType(userID, tokenType string) error
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *model.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO tokens (id, user_id, type, token, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(query, token.ID, token.UserID, token.Type, token.Token, token.ExpiresAt, token.UsedAt, token.CreatedAt)
	return err
}

func (r *tokenRepository) ConsumeToken(tokenValue string) (*model.Token, error) {
	now := time.Now()

	result, err := r.db.Exec(
		`UPDATE tokens SET used_at = $1 WHERE token = $2 AND used_at IS NULL AND expires_at > $3`,
		now, tokenValue, now,
	)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrTokenNotFound
	}

	token := &model.Token{}
	err = r.db.Get(token, `SELECT * FROM tokens WHERE token = $1`, tokenValue)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (r *tokenRepository) DeleteByUserAndType(userID, tokenType string) error {
	_, err := r.db.Exec(`DELETE FROM tokens WHERE user_id = $1 AND type = $2`, userID, tokenType)
	return err
}
