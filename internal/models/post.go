package models

import "time"

// Category is the fixed set of post categories the editor offers.
type Category string

const (
	CategoryTech     Category = "tech"
	CategoryIdea     Category = "idea"
	CategoryAbstract Category = "abstract"
	CategoryArt      Category = "art"
	CategoryFinance  Category = "finance"
	CategoryProject  Category = "project"
	CategoryOther    Category = "other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryTech, CategoryIdea, CategoryAbstract, CategoryArt,
		CategoryFinance, CategoryProject, CategoryOther:
		return true
	}
	return false
}

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Post is a blog entry. A post with IsDraft=true is a draft and is
// excluded from public listings; drafts and published posts partition
// the full record set on that flag alone.
type Post struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	Category   Category `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage,omitempty"`
	Images     []string `json:"images"`
	IsDraft    bool     `json:"isDraft"`
	// Timestamps are server-assigned, never client-supplied.
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	LastEdited  time.Time `json:"lastEdited"`
	Author      Author    `json:"author"`
}
