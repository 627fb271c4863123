package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
)

// FileStore keeps every record in memory and rewrites one JSON array
// per entity (posts.json, comments.json) on each mutation. A single
// mutex serializes the read-merge-persist sequence, so concurrent
// requests cannot clobber each other's writes.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	posts    []models.Post
	comments []models.Comment
}

const (
	postsFile    = "posts.json"
	commentsFile = "comments.json"
)

// OpenFile loads existing records from dir, creating it if needed.
// Missing files are treated as empty collections.
func OpenFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	fs := &FileStore{dir: dir}
	if err := loadJSON(filepath.Join(dir, postsFile), &fs.posts); err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	if err := loadJSON(filepath.Join(dir, commentsFile), &fs.comments); err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return fs, nil
}

func loadJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

// saveJSON writes through a temp file and renames it into place so a
// crash mid-write cannot leave a truncated collection behind.
func saveJSON(path string, src interface{}) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (fs *FileStore) savePosts() error {
	return saveJSON(filepath.Join(fs.dir, postsFile), fs.posts)
}

func (fs *FileStore) saveComments() error {
	return saveJSON(filepath.Join(fs.dir, commentsFile), fs.comments)
}

func (fs *FileStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]models.Post, len(fs.posts))
	copy(out, fs.posts)
	return out, nil
}

func (fs *FileStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.posts {
		if fs.posts[i].ID == id {
			post := fs.posts[i]
			return &post, nil
		}
	}
	return nil, ErrNotFound
}

func (fs *FileStore) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.posts {
		if fs.posts[i].Slug == slug {
			post := fs.posts[i]
			return &post, nil
		}
	}
	return nil, ErrNotFound
}

func (fs *FileStore) PutPost(ctx context.Context, post models.Post) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	replaced := false
	for i := range fs.posts {
		if fs.posts[i].ID == post.ID {
			fs.posts[i] = post
			replaced = true
			break
		}
	}
	if !replaced {
		fs.posts = append(fs.posts, post)
	}
	if err := fs.savePosts(); err != nil {
		return fmt.Errorf("persist posts: %w", err)
	}
	return nil
}

func (fs *FileStore) DeletePost(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.posts {
		if fs.posts[i].ID == id {
			fs.posts = append(fs.posts[:i], fs.posts[i+1:]...)
			if err := fs.savePosts(); err != nil {
				return fmt.Errorf("persist posts: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (fs *FileStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]models.Comment, 0)
	for _, c := range fs.comments {
		if postID == "" || c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (fs *FileStore) PutComment(ctx context.Context, comment models.Comment) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	replaced := false
	for i := range fs.comments {
		if fs.comments[i].ID == comment.ID {
			fs.comments[i] = comment
			replaced = true
			break
		}
	}
	if !replaced {
		fs.comments = append(fs.comments, comment)
	}
	if err := fs.saveComments(); err != nil {
		return fmt.Errorf("persist comments: %w", err)
	}
	return nil
}

func (fs *FileStore) DeleteComment(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.comments {
		if fs.comments[i].ID == id {
			fs.comments = append(fs.comments[:i], fs.comments[i+1:]...)
			if err := fs.saveComments(); err != nil {
				return fmt.Errorf("persist comments: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (fs *FileStore) Close() error {
	return nil
}
