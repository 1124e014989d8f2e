package repository

import (
	"database/sql"
	"errors"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrThreadNotFound = errors.New("thread not found")
)

type ForumRepository interface {
	CreateThread(thread *model.Thread) error
	ThreadByID(id string) (*model.Thread, error)
	ThreadsByCategory(category string, limit int) ([]*model.Thread, error)
	CreateReply(reply *model.Reply) error
	Replies(threadID string) ([]*model.Reply, error)
}

type forumRepository struct {
	db *sqlx.DB
}

func NewForumRepository(db *sqlx.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) CreateThread(thread *model.Thread) error {
	query := `
		INSERT INTO threads (id, author_id, category, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query, thread.ID, thread.AuthorID, thread.Category, thread.Title, thread.Body, thread.CreatedAt)
	return err
}

func (r *forumRepository) ThreadByID(id string) (*model.Thread, error) {
	thread := &model.Thread{}
	query := `
		SELECT t.id, t.author_id, t.category, t.title, t.body, t.created_at,
		       u.name AS author_name,
		       (SELECT COUNT(*) FROM replies WHERE thread_id = t.id) AS reply_count
		FROM threads t
		JOIN users u ON u.id = t.author_id
		WHERE t.id = $1
	`

	err := r.db.Get(thread, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}

	return thread, nil
}

func (r *forumRepository) ThreadsByCategory(category string, limit int) ([]*model.Thread, error) {
	threads := []*model.Thread{}
	query := `
		SELECT t.id, t.author_id, t.category, t.title, t.body, t.created_at,
		       u.name AS author_name,
		       (SELECT COUNT(*) FROM replies WHERE thread_id = t.id) AS reply_count
		FROM threads t
		JOIN users u ON u.id = t.author_id
		WHERE t.category = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`

	err := r.db.Select(&threads, query, category, limit)
	return threads, err
}

func (r *forumRepository) CreateReply(reply *model.Reply) error {
	query := `
		INSERT INTO replies (id, thread_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query, reply.ID, reply.ThreadID, reply.AuthorID, reply.Body, reply.CreatedAt)
	return err
}

func (r *forumRepository) Replies(threadID string) ([]*model.Reply, error) {
	replies := []*model.Reply{}
	query := `
		SELECT r.id, r.thread_id, r.author_id, r.body, r.created_at,
		       u.name AS author_name
		FROM replies r
		JOIN users u ON u.id = r.author_id
		WHERE r.thread_id = $1
		ORDER BY r.created_at
	`

	err := r.db.Select(&replies, query, threadID)
	return replies, err
}
