package storage

import (
	"context"
	"errors"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary. The site historically had two
// competing route implementations (one database-backed, one writing
// flat JSON files); they are consolidated behind this interface with
// the backend chosen at startup.
type Store interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	// PutPost inserts the post, or replaces the record with the same id.
	PutPost(ctx context.Context, post models.Post) error
	DeletePost(ctx context.Context, id string) error

	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	PutComment(ctx context.Context, comment models.Comment) error
	DeleteComment(ctx context.Context, id string) error

	Close() error
}
