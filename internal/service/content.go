package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/frostlinehq/frostline/internal/markdown"
	"github.com/frostlinehq/frostline/internal/model"
)

// ContentService serves the markdown-backed site content: the blog,
// the static service pages, and the Pro-only maintenance guides.
// Content is read from disk on every request so edits show up without
// a restart.
type ContentService struct {
	parser      *markdown.Parser
	contentPath string
}

func NewContentService(contentPath string) *ContentService {
	return &ContentService{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
	}
}

func (s *ContentService) Posts() ([]*model.BlogPost, error) {
	pattern := filepath.Join(s.contentPath, "blog", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var posts []*model.BlogPost
	for _, file := range files {
		post, err := s.Post(strings.TrimSuffix(filepath.Base(file), ".md"))
		if err != nil {
			continue
		}
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	return posts, nil
}

func (s *ContentService) Post(slug string) (*model.BlogPost, error) {
	path := filepath.Join(s.contentPath, "blog", slug+".md")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blog post not found: %s", slug)
	}

	htmlContent, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, err
	}

	post := &model.BlogPost{
		Slug:        slug,
		HTMLContent: string(htmlContent),
		Content:     string(content),
	}

	if title, ok := meta["title"].(string); ok {
		post.Title = title
	}
	if author, ok := meta["author"].(string); ok {
		post.Author = author
	}
	if description, ok := meta["description"].(string); ok {
		post.Description = description
	}
	if heroImage, ok := meta["hero_image"].(string); ok {
		post.HeroImage = heroImage
	}

	if dateStr, ok := meta["date"].(string); ok {
		date, err := time.Parse("2006-01-02", dateStr)
		if err == nil {
			post.Date = date
		}
	}

	if tags, ok := meta["tags"].([]any); ok {
		for _, tag := range tags {
			if tagStr, ok := tag.(string); ok {
				post.Tags = append(post.Tags, tagStr)
			}
		}
	}

	post.ReadTime = calculateReadTime(string(content))

	return post, nil
}

func (s *ContentService) PostsByTag(tag string) ([]*model.BlogPost, error) {
	allPosts, err := s.Posts()
	if err != nil {
		return nil, err
	}

	var posts []*model.BlogPost
	for _, post := range allPosts {
		for _, postTag := range post.Tags {
			if strings.EqualFold(postTag, tag) {
				posts = append(posts, post)
				break
			}
		}
	}

	return posts, nil
}

// Pages lists the static service pages (furnace repair, AC install,
// duct cleaning and so on).
func (s *ContentService) Pages() ([]*model.Page, error) {
	pattern := filepath.Join(s.contentPath, "services", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var pages []*model.Page
	for _, file := range files {
		page, err := s.Page(strings.TrimSuffix(filepath.Base(file), ".md"))
		if err != nil {
			continue
		}
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Slug < pages[j].Slug
	})

	return pages, nil
}

func (s *ContentService) Page(slug string) (*model.Page, error) {
	path := filepath.Join(s.contentPath, "services", slug+".md")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("page not found: %s", slug)
	}

	htmlContent, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, err
	}

	page := &model.Page{
		Slug:        slug,
		HTMLContent: string(htmlContent),
	}

	if title, ok := meta["title"].(string); ok {
		page.Title = title
	}
	if page.Title == "" {
		page.Title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}
	if description, ok := meta["description"].(string); ok {
		page.Description = description
	}

	return page, nil
}

// Guides lists the Pro-only maintenance guides. Callers gate access;
// this service only reads files.
func (s *ContentService) Guides() ([]*model.Guide, error) {
	pattern := filepath.Join(s.contentPath, "pro", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var guides []*model.Guide
	for _, file := range files {
		guide, err := s.Guide(strings.TrimSuffix(filepath.Base(file), ".md"))
		if err != nil {
			continue
		}
		guides = append(guides, guide)
	}

	sort.Slice(guides, func(i, j int) bool {
		return guides[i].Slug < guides[j].Slug
	})

	return guides, nil
}

func (s *ContentService) Guide(slug string) (*model.Guide, error) {
	path := filepath.Join(s.contentPath, "pro", slug+".md")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("guide not found: %s", slug)
	}

	htmlContent, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, err
	}

	guide := &model.Guide{
		Slug:        slug,
		HTMLContent: string(htmlContent),
		ReadTime:    calculateReadTime(string(content)),
	}

	if title, ok := meta["title"].(string); ok {
		guide.Title = title
	}
	if guide.Title == "" {
		guide.Title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}
	if description, ok := meta["description"].(string); ok {
		guide.Description = description
	}

	return guide, nil
}

func calculateReadTime(content string) int {
	words := strings.Fields(content)
	wordsPerMinute := 200
	readTime := len(words) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}
	return readTime
}
