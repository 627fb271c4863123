package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
)

// PostgresStore is the managed-database backend.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	store := &PostgresStore{pool: pool}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
	    id TEXT PRIMARY KEY,
	    seq BIGSERIAL,
	    title TEXT NOT NULL,
	    slug TEXT NOT NULL,
	    content TEXT NOT NULL,
	    excerpt TEXT NOT NULL DEFAULT '',
	    category TEXT NOT NULL,
	    tags TEXT[] NOT NULL DEFAULT '{}',
	    cover_image TEXT NOT NULL DEFAULT '',
	    images TEXT[] NOT NULL DEFAULT '{}',
	    is_draft BOOLEAN NOT NULL DEFAULT false,
	    published_at TIMESTAMPTZ NOT NULL,
	    updated_at TIMESTAMPTZ NOT NULL,
	    last_edited TIMESTAMPTZ NOT NULL,
	    author_name TEXT NOT NULL DEFAULT '',
	    author_avatar TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS comments (
	    id TEXT PRIMARY KEY,
	    seq BIGSERIAL,
	    post_id TEXT NOT NULL,
	    name TEXT NOT NULL,
	    email TEXT NOT NULL,
	    content TEXT NOT NULL,
	    created_at TIMESTAMPTZ NOT NULL,
	    approved BOOLEAN NOT NULL DEFAULT true
	);

	CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug);
	CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
	`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

const pgPostColumns = `id, title, slug, content, excerpt, category, tags,
	cover_image, images, is_draft, published_at, updated_at, last_edited,
	author_name, author_avatar`

func scanPgPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt,
		&post.Category, &post.Tags, &post.CoverImage, &post.Images,
		&post.IsDraft, &post.PublishedAt, &post.UpdatedAt, &post.LastEdited,
		&post.Author.Name, &post.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostgresStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+pgPostColumns+` FROM posts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPgPost(rows)
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

func (s *PostgresStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := scanPgPost(s.pool.QueryRow(ctx,
		`SELECT `+pgPostColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostgresStore) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := scanPgPost(s.pool.QueryRow(ctx,
		`SELECT `+pgPostColumns+` FROM posts WHERE slug = $1 ORDER BY seq LIMIT 1`, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}

func (s *PostgresStore) PutPost(ctx context.Context, post models.Post) error {
	query := `
	INSERT INTO posts (` + pgPostColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		slug = EXCLUDED.slug,
		content = EXCLUDED.content,
		excerpt = EXCLUDED.excerpt,
		category = EXCLUDED.category,
		tags = EXCLUDED.tags,
		cover_image = EXCLUDED.cover_image,
		images = EXCLUDED.images,
		is_draft = EXCLUDED.is_draft,
		published_at = EXCLUDED.published_at,
		updated_at = EXCLUDED.updated_at,
		last_edited = EXCLUDED.last_edited,
		author_name = EXCLUDED.author_name,
		author_avatar = EXCLUDED.author_avatar
	`
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	images := post.Images
	if images == nil {
		images = []string{}
	}
	_, err := s.pool.Exec(ctx, query,
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

func (s *PostgresStore) DeletePost(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT id, post_id, name, email, content, created_at, approved
		FROM comments`
	args := []interface{}{}
	if postID != "" {
		query += ` WHERE post_id = $1`
		args = append(args, postID)
	}
	query += ` ORDER BY seq`

	rows, err := s.pool.Query(ctx, query, args...)
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

func (s *PostgresStore) PutComment(ctx context.Context, comment models.Comment) error {
	query := `
	INSERT INTO comments (id, post_id, name, email, content, created_at, approved)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		post_id = EXCLUDED.post_id,
		name = EXCLUDED.name,
		email = EXCLUDED.email,
		content = EXCLUDED.content,
		created_at = EXCLUDED.created_at,
		approved = EXCLUDED.approved
	`
	_, err := s.pool.Exec(ctx, query,
		comment.ID, comment.PostID, comment.Name, comment.Email,
		comment.Content, comment.CreatedAt, comment.Approved)
	if err != nil {
		return fmt.Errorf("put comment: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
