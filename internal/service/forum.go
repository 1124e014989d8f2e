package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/frostlinehq/frostline/internal/gate"
	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/repository"
)

const maxThreadTitleLen = 200

// ForumService manages the community forum. The general category is
// open to any signed-in user; the pro lounge requires an entitled
// membership, for reading and for posting.
type ForumService struct {
	forumRepo repository.ForumRepository
}

func NewForumService(forumRepo repository.ForumRepository) *ForumService {
	return &ForumService{forumRepo: forumRepo}
}

// categoryPredicates returns the access rules for a category.
func categoryPredicates(category string) []gate.Predicate {
	if category == model.CategoryProLounge {
		return []gate.Predicate{gate.RequireAuth(), gate.RequireEntitlement()}
	}
	return []gate.Predicate{gate.RequireAuth()}
}

func (s *ForumService) CreateThread(viewer *gate.Viewer, authorID, category, title, body string) (*model.Thread, error) {
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if err := gate.Check(viewer, categoryPredicates(category)...); err != nil {
		return nil, err
	}
	if title == "" || body == "" {
		return nil, fmt.Errorf("title and body are required")
	}
	if len(title) > maxThreadTitleLen {
		return nil, fmt.Errorf("title must be at most %d characters", maxThreadTitleLen)
	}

	thread := &model.Thread{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Category:  category,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.forumRepo.CreateThread(thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	return thread, nil
}

func (s *ForumService) Threads(viewer *gate.Viewer, category string, limit int) ([]*model.Thread, error) {
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if err := gate.Check(viewer, categoryPredicates(category)...); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.forumRepo.ThreadsByCategory(category, limit)
}

func (s *ForumService) Thread(viewer *gate.Viewer, id string) (*model.Thread, []*model.Reply, error) {
	thread, err := s.forumRepo.ThreadByID(id)
	if err != nil {
		return nil, nil, err
	}
	if err := gate.Check(viewer, categoryPredicates(thread.Category)...); err != nil {
		return nil, nil, err
	}

	replies, err := s.forumRepo.Replies(id)
	if err != nil {
		return nil, nil, err
	}

	return thread, replies, nil
}

func (s *ForumService) CreateReply(viewer *gate.Viewer, authorID, threadID, body string) (*model.Reply, error) {
	thread, err := s.forumRepo.ThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	if err := gate.Check(viewer, categoryPredicates(thread.Category)...); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("body is required")
	}

	reply := &model.Reply{
		ID:        uuid.New().String(),
		ThreadID:  threadID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.forumRepo.CreateReply(reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	return reply, nil
}
