package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/storage"
	"github.com/frostlinehq/frostline/internal/validation"
)

var ErrPhotosDisabled = errors.New("photo attachments are not configured")

type LeadService struct {
	leadRepo     repository.LeadRepository
	emailService *EmailService
	storage      storage.Storage // nil when S3 is not configured
}

func NewLeadService(leadRepo repository.LeadRepository, emailService *EmailService, storage storage.Storage) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		emailService: emailService,
		storage:      storage,
	}
}

// CreateLead records a service request and notifies dispatch. The lead
// is persisted even if the notification email fails; dispatch also
// works the inbox from the admin panel.
func (s *LeadService) CreateLead(name, phone, email, serviceSlug, message string, emergency bool) (*model.Lead, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := validation.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, err
		}
	}

	lead := &model.Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Service:   serviceSlug,
		Message:   message,
		Emergency: emergency,
		Status:    model.LeadStatusNew,
		CreatedAt: time.Now(),
	}

	if err := s.leadRepo.Create(lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	if err := s.emailService.SendLeadNotification(lead); err != nil {
		slog.Error("failed to send lead notification", "error", err, "lead_id", lead.ID, "emergency", lead.Emergency)
	}

	if lead.Emergency {
		slog.Warn("emergency lead received", "lead_id", lead.ID, "service", lead.Service)
	}

	return lead, nil
}

// AttachPhoto uploads a photo for a lead and records it.
// Note: File validation (type, size) should be done by the caller.
func (s *LeadService) AttachPhoto(leadID string, file multipart.File, header *multipart.FileHeader) (*model.LeadPhoto, error) {
	if s.storage == nil {
		return nil, ErrPhotosDisabled
	}

	if _, err := s.leadRepo.ByID(leadID); err != nil {
		return nil, err
	}

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("leads/%s/%s%s", leadID, uuid.New().String(), ext)

	if err := s.storage.Save(key, file, header.Header.Get("Content-Type")); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	photo := &model.LeadPhoto{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		StorageKey: key,
		CreatedAt:  time.Now(),
	}

	if err := s.leadRepo.AddPhoto(photo); err != nil {
		// Don't leave orphaned objects in the bucket
		if delErr := s.storage.Delete(key); delErr != nil {
			slog.Error("failed to clean up orphaned photo", "error", delErr, "key", key)
		}
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	return photo, nil
}

func (s *LeadService) Lead(id string) (*model.Lead, error) {
	lead, err := s.leadRepo.ByID(id)
	if err != nil {
		return nil, err
	}

	photos, err := s.leadRepo.Photos(id)
	if err != nil {
		return nil, err
	}
	for _, p := range photos {
		lead.PhotoKeys = append(lead.PhotoKeys, p.StorageKey)
	}

	return lead, nil
}

func (s *LeadService) Leads(status string, limit int) ([]*model.Lead, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.leadRepo.List(status, limit)
}

func (s *LeadService) UpdateStatus(id, status string) error {
	switch status {
	case model.LeadStatusNew, model.LeadStatusContacted, model.LeadStatusClosed:
	default:
		return fmt.Errorf("invalid lead status %q", status)
	}
	return s.leadRepo.UpdateStatus(id, status)
}

// PhotoURLs returns presigned download links for a lead's photos.
func (s *LeadService) PhotoURLs(leadID string) ([]string, error) {
	if s.storage == nil {
		return nil, nil
	}

	photos, err := s.leadRepo.Photos(leadID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		url, err := s.storage.PresignedURL(p.StorageKey)
		if err != nil {
			slog.Error("failed to presign photo URL", "error", err, "key", p.StorageKey)
			continue
		}
		urls = append(urls, url)
	}

	return urls, nil
}
