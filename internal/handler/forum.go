package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frostlinehq/frostline/internal/ctxkeys"
	"github.com/frostlinehq/frostline/internal/gate"
	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/service"
)

type ForumHandler struct {
	forumService *service.ForumService
}

func NewForumHandler(forumService *service.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

func writeForumError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gate.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, gate.ErrMembershipRequired), errors.Is(err, gate.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrThreadNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (h *ForumHandler) Threads(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "general"
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	threads, err := h.forumService.Threads(ctxkeys.Viewer(r.Context()), category, limit)
	if err != nil {
		writeForumError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, threads)
}

func (h *ForumHandler) Thread(w http.ResponseWriter, r *http.Request) {
	thread, replies, err := h.forumService.Thread(ctxkeys.Viewer(r.Context()), r.PathValue("id"))
	if err != nil {
		writeForumError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"thread":  thread,
		"replies": replies,
	})
}

type createThreadRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

func (h *ForumHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	thread, err := h.forumService.CreateThread(ctxkeys.Viewer(r.Context()), user.ID, req.Category, req.Title, req.Body)
	if err != nil {
		writeForumError(w, err)
		return
	}

	slog.Info("thread created", "thread_id", thread.ID, "category", thread.Category, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, thread)
}

type createReplyRequest struct {
	Body string `json:"body"`
}

func (h *ForumHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reply, err := h.forumService.CreateReply(ctxkeys.Viewer(r.Context()), user.ID, r.PathValue("id"), req.Body)
	if err != nil {
		writeForumError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reply)
}
