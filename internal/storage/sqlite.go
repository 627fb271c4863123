package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
)

// SQLiteStore is the embedded single-file backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		content TEXT NOT NULL,
		excerpt TEXT,
		category TEXT NOT NULL,
		tags TEXT,
		cover_image TEXT,
		images TEXT,
		is_draft INTEGER NOT NULL DEFAULT 0,
		published_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		last_edited TIMESTAMP NOT NULL,
		author_name TEXT,
		author_avatar TEXT
	);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		approved INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug);
	CREATE INDEX IF NOT EXISTS idx_posts_draft ON posts(is_draft);
	CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

const postColumns = `id, title, slug, content, excerpt, category, tags,
	cover_image, images, is_draft, published_at, updated_at, last_edited,
	author_name, author_avatar`

func scanPost(row interface{ Scan(...interface{}) error }) (*models.Post, error) {
	var post models.Post
	var tags, images string
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt,
		&post.Category, &tags, &post.CoverImage, &images, &post.IsDraft,
		&post.PublishedAt, &post.UpdatedAt, &post.LastEdited,
		&post.Author.Name, &post.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	if post.Tags, err = unmarshalStrings(tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if post.Images, err = unmarshalStrings(images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &post, nil
}

func (s *SQLiteStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (s *SQLiteStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *SQLiteStore) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ? ORDER BY rowid LIMIT 1`, slug))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}

func (s *SQLiteStore) PutPost(ctx context.Context, post models.Post) error {
	tags, err := marshalStrings(post.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	images, err := marshalStrings(post.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	query := `
	INSERT INTO posts (` + postColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		slug = excluded.slug,
		content = excluded.content,
		excerpt = excluded.excerpt,
		category = excluded.category,
		tags = excluded.tags,
		cover_image = excluded.cover_image,
		images = excluded.images,
		is_draft = excluded.is_draft,
		published_at = excluded.published_at,
		updated_at = excluded.updated_at,
		last_edited = excluded.last_edited,
		author_name = excluded.author_name,
		author_avatar = excluded.author_avatar
	`
	_, err = s.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Excerpt,
		post.Category, tags, post.CoverImage, images, post.IsDraft,
		post.PublishedAt, post.UpdatedAt, post.LastEdited,
		post.Author.Name, post.Author.Avatar,
	)
	if err != nil {
		return fmt.Errorf("put post: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT id, post_id, name, email, content, created_at, approved
		FROM comments`
	args := []interface{}{}
	if postID != "" {
		query += ` WHERE post_id = ?`
		args = append(args, postID)
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Content,
			&c.CreatedAt, &c.Approved); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return comments, nil
}

func (s *SQLiteStore) PutComment(ctx context.Context, comment models.Comment) error {
	query := `
	INSERT INTO comments (id, post_id, name, email, content, created_at, approved)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		post_id = excluded.post_id,
		name = excluded.name,
		email = excluded.email,
		content = excluded.content,
		created_at = excluded.created_at,
		approved = excluded.approved
	`
	_, err := s.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.Name, comment.Email,
		comment.Content, comment.CreatedAt, comment.Approved)
	if err != nil {
		return fmt.Errorf("put comment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
