package blog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsukaFurukawa/MyBlog/internal/storage"
)

func newTestComments(t *testing.T) *Comments {
	t.Helper()
	store, err := storage.OpenFile(t.TempDir())
	require.NoError(t, err)
	return NewComments(store)
}

func TestCommentCreateNormalizes(t *testing.T) {
	comments := newTestComments(t)

	created, err := comments.Create(context.Background(), CommentInput{
		PostID:  "post-1",
		Name:    "  Reader  ",
		Email:   "  Reader@Example.COM ",
		Content: " nice post ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Reader", created.Name)
	assert.Equal(t, "reader@example.com", created.Email)
	assert.Equal(t, "nice post", created.Content)
	assert.True(t, created.Approved)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCommentCreateValidation(t *testing.T) {
	comments := newTestComments(t)
	ctx := context.Background()
	var vErr *ValidationError

	_, err := comments.Create(ctx, CommentInput{Name: "n", Email: "a@b.co", Content: "c"})
	require.ErrorAs(t, err, &vErr, "missing postId")

	_, err = comments.Create(ctx, CommentInput{PostID: "p", Email: "a@b.co", Content: "c"})
	require.ErrorAs(t, err, &vErr, "missing name")

	_, err = comments.Create(ctx, CommentInput{PostID: "p", Name: "n", Content: "c"})
	require.ErrorAs(t, err, &vErr, "missing email")

	_, err = comments.Create(ctx, CommentInput{PostID: "p", Name: "n", Email: "a@b.co"})
	require.ErrorAs(t, err, &vErr, "missing content")

	for _, bad := range []string{"not-an-email", "a@b", "a b@c.io", "@c.io"} {
		_, err = comments.Create(ctx, CommentInput{PostID: "p", Name: "n", Email: bad, Content: "c"})
		require.ErrorAs(t, err, &vErr, "email %q", bad)
	}

	// Rejected comments never surface in listings.
	listed, err := comments.ListApproved(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestListApprovedScopedAndOrdered(t *testing.T) {
	comments := newTestComments(t)
	ctx := context.Background()

	for _, in := range []CommentInput{
		{PostID: "p1", Name: "a", Email: "a@x.io", Content: "first"},
		{PostID: "p2", Name: "b", Email: "b@x.io", Content: "other post"},
		{PostID: "p1", Name: "c", Email: "c@x.io", Content: "second"},
	} {
		_, err := comments.Create(ctx, in)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	listed, err := comments.ListApproved(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Content)
	assert.Equal(t, "second", listed[1].Content)
	assert.True(t, listed[0].CreatedAt.Before(listed[1].CreatedAt) ||
		listed[0].CreatedAt.Equal(listed[1].CreatedAt))
}

func TestCommentDelete(t *testing.T) {
	comments := newTestComments(t)
	ctx := context.Background()

	created, err := comments.Create(ctx, CommentInput{
		PostID: "p", Name: "n", Email: "n@x.io", Content: "bye",
	})
	require.NoError(t, err)

	require.NoError(t, comments.Delete(ctx, created.ID))
	assert.ErrorIs(t, comments.Delete(ctx, created.ID), storage.ErrNotFound)

	listed, err := comments.ListApproved(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
