package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsukaFurukawa/MyBlog/internal/models"
)

func samplePost(id, title string) models.Post {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Post{
		ID:          id,
		Title:       title,
		Slug:        "slug-" + id,
		Content:     "content",
		Category:    models.CategoryTech,
		Tags:        []string{"go"},
		Images:      []string{},
		PublishedAt: now,
		UpdatedAt:   now,
		LastEdited:  now,
		Author:      models.Author{Name: "author"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := OpenFile(dir)
	require.NoError(t, err)

	require.NoError(t, fs.PutPost(ctx, samplePost("a", "First")))
	require.NoError(t, fs.PutPost(ctx, samplePost("b", "Second")))

	got, err := fs.GetPost(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	_, err = fs.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	bySlug, err := fs.GetPostBySlug(ctx, "slug-b")
	require.NoError(t, err)
	assert.Equal(t, "b", bySlug.ID)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, fs.PutPost(ctx, samplePost("a", "Persisted")))
	require.NoError(t, fs.PutComment(ctx, models.Comment{
		ID: "c1", PostID: "a", Name: "n", Email: "n@x.io",
		Content: "hi", CreatedAt: time.Now().UTC(), Approved: true,
	}))

	reopened, err := OpenFile(dir)
	require.NoError(t, err)

	post, err := reopened.GetPost(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Persisted", post.Title)

	comments, err := reopened.ListComments(ctx, "a")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hi", comments[0].Content)
}

func TestFileStoreWritesPlainJSONArrays(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, fs.PutPost(ctx, samplePost("a", "On Disk")))

	data, err := os.ReadFile(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)

	var arr []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &arr))
	require.Len(t, arr, 1)
	assert.Equal(t, "On Disk", arr[0]["title"])
}

func TestFileStorePutReplacesById(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, fs.PutPost(ctx, samplePost("a", "Before")))

	updated := samplePost("a", "After")
	require.NoError(t, fs.PutPost(ctx, updated))

	all, err := fs.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "After", all[0].Title)
}

func TestFileStoreDelete(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, fs.PutPost(ctx, samplePost("a", "Doomed")))

	require.NoError(t, fs.DeletePost(ctx, "a"))
	assert.ErrorIs(t, fs.DeletePost(ctx, "a"), ErrNotFound)
	assert.ErrorIs(t, fs.DeleteComment(ctx, "nope"), ErrNotFound)
}
