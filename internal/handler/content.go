package handler

import (
	"net/http"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

type blogPostSummary struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Date        string   `json:"date"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ReadTime    int      `json:"readTime"`
	HeroImage   string   `json:"heroImage,omitempty"`
}

func summarize(post *model.BlogPost) blogPostSummary {
	return blogPostSummary{
		Title:       post.Title,
		Slug:        post.Slug,
		Date:        post.Date.Format("2006-01-02"),
		Author:      post.Author,
		Description: post.Description,
		Tags:        post.Tags,
		ReadTime:    post.ReadTime,
		HeroImage:   post.HeroImage,
	}
}

func (h *ContentHandler) Posts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []*model.BlogPost
		err   error
	)
	if tag := r.URL.Query().Get("tag"); tag != "" {
		posts, err = h.contentService.PostsByTag(tag)
	} else {
		posts, err = h.contentService.Posts()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}

	summaries := make([]blogPostSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, summarize(post))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *ContentHandler) Post(w http.ResponseWriter, r *http.Request) {
	post, err := h.contentService.Post(r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"title":       post.Title,
		"slug":        post.Slug,
		"date":        post.Date.Format("2006-01-02"),
		"author":      post.Author,
		"description": post.Description,
		"tags":        post.Tags,
		"readTime":    post.ReadTime,
		"heroImage":   post.HeroImage,
		"html":        post.HTMLContent,
	})
}

func (h *ContentHandler) Pages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.contentService.Pages()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load pages")
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *ContentHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.contentService.Page(r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Guides serves the Pro-only maintenance guides. Routes wrap these in
// the entitlement gate; guide content never leaves the server for a
// viewer who isn't granted access.
func (h *ContentHandler) Guides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.contentService.Guides()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load guides")
		return
	}
	writeJSON(w, http.StatusOK, guides)
}

func (h *ContentHandler) Guide(w http.ResponseWriter, r *http.Request) {
	guide, err := h.contentService.Guide(r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusNotFound, "guide not found")
		return
	}
	writeJSON(w, http.StatusOK, guide)
}
