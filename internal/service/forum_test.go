package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/frostlinehq/frostline/internal/gate"
	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/repository"
)

type fakeForumRepo struct {
	threads map[string]*model.Thread
	replies map[string][]*model.Reply
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{
		threads: map[string]*model.Thread{},
		replies: map[string][]*model.Reply{},
	}
}

func (r *fakeForumRepo) CreateThread(thread *model.Thread) error {
	r.threads[thread.ID] = thread
	return nil
}

func (r *fakeForumRepo) ThreadByID(id string) (*model.Thread, error) {
	thread, ok := r.threads[id]
	if !ok {
		return nil, repository.ErrThreadNotFound
	}
	return thread, nil
}

func (r *fakeForumRepo) ThreadsByCategory(category string, limit int) ([]*model.Thread, error) {
	var out []*model.Thread
	for _, t := range r.threads {
		if t.Category == category {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeForumRepo) CreateReply(reply *model.Reply) error {
	r.replies[reply.ThreadID] = append(r.replies[reply.ThreadID], reply)
	return nil
}

func (r *fakeForumRepo) Replies(threadID string) ([]*model.Reply, error) {
	return r.replies[threadID], nil
}

func (r *fakeForumRepo) seedThread(id, category string) {
	r.threads[id] = &model.Thread{
		ID:        id,
		AuthorID:  "author-1",
		Category:  category,
		Title:     "seed",
		Body:      "seed body",
		CreatedAt: time.Now(),
	}
}

func memberViewer() *gate.Viewer {
	return &gate.Viewer{Authenticated: true}
}

func proViewer() *gate.Viewer {
	return &gate.Viewer{Authenticated: true, HasProAccess: true}
}

func TestCreateThreadGeneralAllowsAnyMember(t *testing.T) {
	svc := NewForumService(newFakeForumRepo())

	thread, err := svc.CreateThread(memberViewer(), "user-1", model.CategoryGeneral, "Banging duct noise", "It knocks at night.")
	if err != nil {
		t.Fatalf("CreateThread: %v", err)
	}
	if thread.ID == "" {
		t.Error("expected a generated thread ID")
	}
	if thread.Category != model.CategoryGeneral {
		t.Errorf("category = %q, want %q", thread.Category, model.CategoryGeneral)
	}
}

func TestCreateThreadRejectsAnonymous(t *testing.T) {
	svc := NewForumService(newFakeForumRepo())

	_, err := svc.CreateThread(nil, "", model.CategoryGeneral, "title", "body")
	if !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestProLoungeRequiresEntitlement(t *testing.T) {
	repo := newFakeForumRepo()
	repo.seedThread("t1", model.CategoryProLounge)
	svc := NewForumService(repo)

	// A signed-in member without the entitlement is kept out of every
	// pro lounge path, reads included.
	if _, err := svc.Threads(memberViewer(), model.CategoryProLounge, 10); !errors.Is(err, gate.ErrMembershipRequired) {
		t.Errorf("Threads error = %v, want ErrMembershipRequired", err)
	}
	if _, _, err := svc.Thread(memberViewer(), "t1"); !errors.Is(err, gate.ErrMembershipRequired) {
		t.Errorf("Thread error = %v, want ErrMembershipRequired", err)
	}
	if _, err := svc.CreateReply(memberViewer(), "user-1", "t1", "me too"); !errors.Is(err, gate.ErrMembershipRequired) {
		t.Errorf("CreateReply error = %v, want ErrMembershipRequired", err)
	}

	if _, _, err := svc.Thread(proViewer(), "t1"); err != nil {
		t.Errorf("entitled Thread: %v", err)
	}
	if _, err := svc.CreateReply(proViewer(), "user-2", "t1", "check the limit switch"); err != nil {
		t.Errorf("entitled CreateReply: %v", err)
	}
}

func TestCreateThreadRejectsInvalidCategory(t *testing.T) {
	svc := NewForumService(newFakeForumRepo())

	if _, err := svc.CreateThread(proViewer(), "user-1", "off-topic", "title", "body"); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestCreateThreadRejectsOverlongTitle(t *testing.T) {
	svc := NewForumService(newFakeForumRepo())

	title := strings.Repeat("x", maxThreadTitleLen+1)
	if _, err := svc.CreateThread(memberViewer(), "user-1", model.CategoryGeneral, title, "body"); err == nil {
		t.Error("expected an error for an overlong title")
	}
}
