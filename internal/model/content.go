package model

import (
	"time"
)

type BlogPost struct {
	Title       string
	Slug        string
	Date        time.Time
	Author      string
	Description string
	Tags        []string
	Content     string
	HTMLContent string
	ReadTime    int
	HeroImage   string
}

// Page is one static marketing page (service descriptions, seasonal
// specials) rendered from markdown.
type Page struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	HTMLContent string `json:"html"`
}

// Guide is a Pro-only maintenance guide. Guides are never serialized for
// a viewer whose gate decision is not Granted.
type Guide struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	HTMLContent string `json:"html"`
	ReadTime    int    `json:"readTime"`
}
