package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
	"github.com/AsukaFurukawa/MyBlog/internal/storage"
)

// Posts is the post repository. It owns id/slug generation, server-side
// timestamps and validation; persistence goes through the injected store.
type Posts struct {
	store storage.Store
}

func NewPosts(store storage.Store) *Posts {
	return &Posts{store: store}
}

// PostInput carries the client-settable fields for creation.
type PostInput struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Excerpt    string          `json:"excerpt"`
	Category   models.Category `json:"category"`
	Tags       []string        `json:"tags"`
	CoverImage string          `json:"coverImage"`
	Images     []string        `json:"images"`
	IsDraft    bool            `json:"isDraft"`
	Author     models.Author   `json:"author"`
}

// PostPatch is a partial update; nil fields are left untouched.
type PostPatch struct {
	Title      *string          `json:"title"`
	Content    *string          `json:"content"`
	Excerpt    *string          `json:"excerpt"`
	Category   *models.Category `json:"category"`
	Tags       *[]string        `json:"tags"`
	CoverImage *string          `json:"coverImage"`
	Images     *[]string        `json:"images"`
	IsDraft    *bool            `json:"isDraft"`
	Author     *models.Author   `json:"author"`
}

// List returns every post whose IsDraft flag matches, in insertion order.
func (p *Posts) List(ctx context.Context, isDraft bool) ([]models.Post, error) {
	all, err := p.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	out := make([]models.Post, 0, len(all))
	for _, post := range all {
		if post.IsDraft == isDraft {
			out = append(out, post)
		}
	}
	return out, nil
}

func (p *Posts) Get(ctx context.Context, id string) (*models.Post, error) {
	return p.store.GetPost(ctx, id)
}

func (p *Posts) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return p.store.GetPostBySlug(ctx, slug)
}

// Search returns published posts whose title or any tag contains the
// query, case-insensitively.
func (p *Posts) Search(ctx context.Context, query string) ([]models.Post, error) {
	published, err := p.List(ctx, false)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]models.Post, 0)
	for _, post := range published {
		if postMatches(post, q) {
			out = append(out, post)
		}
	}
	return out, nil
}

func postMatches(post models.Post, q string) bool {
	if strings.Contains(strings.ToLower(post.Title), q) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Create validates the input and persists a new post with a fresh id,
// derived slug and server-assigned timestamps.
func (p *Posts) Create(ctx context.Context, input PostInput) (*models.Post, error) {
	if err := validatePost(input.Title, input.Content, input.Category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Slug:        Slugify(input.Title),
		Content:     input.Content,
		Excerpt:     input.Excerpt,
		Category:    normalizeCategory(input.Category),
		Tags:        normalizeTags(input.Tags),
		CoverImage:  input.CoverImage,
		Images:      normalizeImages(input.Images),
		IsDraft:     input.IsDraft,
		PublishedAt: now,
		UpdatedAt:   now,
		LastEdited:  now,
		Author:      input.Author,
	}
	if err := p.store.PutPost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Update shallow-merges the patch onto the stored record, re-runs the
// creation-time validation and refreshes UpdatedAt/LastEdited. An empty
// patch still bumps the timestamps.
func (p *Posts) Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error) {
	post, err := p.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		post.Title = *patch.Title
		post.Slug = Slugify(post.Title)
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.Category != nil {
		post.Category = normalizeCategory(*patch.Category)
	}
	if patch.Tags != nil {
		post.Tags = normalizeTags(*patch.Tags)
	}
	if patch.CoverImage != nil {
		post.CoverImage = *patch.CoverImage
	}
	if patch.Images != nil {
		post.Images = normalizeImages(*patch.Images)
	}
	if patch.IsDraft != nil {
		post.IsDraft = *patch.IsDraft
	}
	if patch.Author != nil {
		post.Author = *patch.Author
	}

	if err := validatePost(post.Title, post.Content, post.Category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.UpdatedAt = now
	post.LastEdited = now

	if err := p.store.PutPost(ctx, *post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes the post permanently. There is no tombstone.
func (p *Posts) Delete(ctx context.Context, id string) error {
	return p.store.DeletePost(ctx, id)
}

func validatePost(title, content string, category models.Category) error {
	if strings.TrimSpace(title) == "" {
		return validationErrorf("title is required")
	}
	if strings.TrimSpace(content) == "" {
		return validationErrorf("content is required")
	}
	if category != "" && !models.ValidCategory(category) {
		return validationErrorf(fmt.Sprintf("unknown category %q", category))
	}
	return nil
}

func normalizeCategory(c models.Category) models.Category {
	if c == "" {
		return models.CategoryOther
	}
	return c
}

// normalizeTags trims entries and drops empties and duplicates while
// keeping insertion order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func normalizeImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
