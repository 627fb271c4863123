package blog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
	"github.com/AsukaFurukawa/MyBlog/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Comments is the comment repository.
type Comments struct {
	store storage.Store
}

func NewComments(store storage.Store) *Comments {
	return &Comments{store: store}
}

type CommentInput struct {
	PostID  string `json:"postId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// ListApproved returns the reader-visible comments for a post:
// approved only, ascending by creation time.
func (c *Comments) ListApproved(ctx context.Context, postID string) ([]models.Comment, error) {
	all, err := c.store.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	out := make([]models.Comment, 0, len(all))
	for _, comment := range all {
		if comment.Approved {
			out = append(out, comment)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Create validates and persists a comment. Comments are auto-approved;
// moderation is limited to admin deletion.
func (c *Comments) Create(ctx context.Context, input CommentInput) (*models.Comment, error) {
	postID := strings.TrimSpace(input.PostID)
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	content := strings.TrimSpace(input.Content)

	if postID == "" || name == "" || email == "" || content == "" {
		return nil, validationErrorf("postId, name, email and content are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, validationErrorf("invalid email format")
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Name:      name,
		Email:     email,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Approved:  true,
	}
	if err := c.store.PutComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (c *Comments) Delete(ctx context.Context, id string) error {
	return c.store.DeleteComment(ctx, id)
}
