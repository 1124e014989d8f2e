package repository

import (
	"database/sql"
	"errors"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
)

type LeadRepository interface {
	Create(lead *model.Lead) error
	ByID(id string) (*model.Lead, error)
	List(status string, limit int) ([]*model.Lead, error)
	UpdateStatus(id, status string) error
	AddPhoto(photo *model.LeadPhoto) error
	Photos(leadID string) ([]*model.LeadPhoto, error)
}

type leadRepository struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(lead *model.Lead) error {
	query := `
		INSERT INTO leads (id, name, phone, email, service, message, emergency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		query,
		lead.ID,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Service,
		lead.Message,
		lead.Emergency,
		lead.Status,
		lead.CreatedAt,
	)

	return err
}

func (r *leadRepository) ByID(id string) (*model.Lead, error) {
	lead := &model.Lead{}
	query := `SELECT * FROM leads WHERE id = $1`

	err := r.db.Get(lead, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *leadRepository) List(status string, limit int) ([]*model.Lead, error) {
	leads := []*model.Lead{}

	if status == "" {
		query := `SELECT * FROM leads ORDER BY created_at DESC LIMIT $1`
		err := r.db.Select(&leads, query, limit)
		return leads, err
	}

	query := `SELECT * FROM leads WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
	err := r.db.Select(&leads, query, status, limit)
	return leads, err
}

func (r *leadRepository) UpdateStatus(id, status string) error {
	query := `UPDATE leads SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrLeadNotFound
	}

	return nil
}

func (r *leadRepository) AddPhoto(photo *model.LeadPhoto) error {
	query := `INSERT INTO lead_photos (id, lead_id, storage_key, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, photo.ID, photo.LeadID, photo.StorageKey, photo.CreatedAt)
	return err
}

func (r *leadRepository) Photos(leadID string) ([]*model.LeadPhoto, error) {
	photos := []*model.LeadPhoto{}
	query := `SELECT * FROM lead_photos WHERE lead_id = $1 ORDER BY created_at`

	err := r.db.Select(&photos, query, leadID)
	return photos, err
}
