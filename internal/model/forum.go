package model

import (
	"time"
)

type Thread struct {
	ID         string    `db:"id" json:"id"`
	AuthorID   string    `db:"author_id" json:"-"`
	Category   string    `db:"category" json:"category"`
	Title      string    `db:"title" json:"title"`
	Body       string    `db:"body" json:"body"`
	ReplyCount int       `db:"reply_count" json:"replyCount"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	// Joined, not stored
	AuthorName string `db:"author_name" json:"authorName"`
}

type Reply struct {
	ID        string    `db:"id" json:"id"`
	ThreadID  string    `db:"thread_id" json:"threadId"`
	AuthorID  string    `db:"author_id" json:"-"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	AuthorName string `db:"author_name" json:"authorName"`
}

const (
	// CategoryGeneral is open to any signed-in user.
	CategoryGeneral = "general"
	// CategoryProLounge requires an entitled membership.
	CategoryProLounge = "pro-lounge"
)

func ValidCategory(c string) bool {
	return c == CategoryGeneral || c == CategoryProLounge
}
