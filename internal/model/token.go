package model

import (
	"time"
)

type Token struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Type      string     `db:"type"`
	Token     string     `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

const (
	TokenTypeMagicLink = "magic_link"
)

func (t *Token) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}
