package blog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/blog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return NewService(
		persistence.NewGormPostRepository(db),
		persistence.NewGormCommentRepository(db),
		persistence.NewGormBookmarkRepository(db),
		zap.NewNop(),
	)
}

func TestService_Posts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	author := uuid.New()

	news, err := svc.CreateCategory(ctx, CreateTaxonomyRequest{Title: "Shop News"})
	require.NoError(t, err)
	assert.Equal(t, "shop-news", news.Slug)
	tag, err := svc.CreateTag(ctx, CreateTaxonomyRequest{Title: "Coffee"})
	require.NoError(t, err)

	brewing, err := svc.CreatePost(ctx, author, CreatePostRequest{
		Title:      "Brewing Guide",
		Content:    "Grind, bloom, pour.",
		CategoryID: &news.ID,
		TagIDs:     []uuid.UUID{tag.ID, tag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tag.ID}, brewing.TagIDs)

	_, err = svc.CreatePost(ctx, author, CreatePostRequest{Title: "Opening Hours", Content: "Nine to five."})
	require.NoError(t, err)
	hidden, err := svc.CreatePost(ctx, author, CreatePostRequest{Title: "Draft", Content: "Not yet."})
	require.NoError(t, err)
	require.NoError(t, svc.UnpublishPost(ctx, hidden.ID))

	_, err = svc.CreatePost(ctx, author, CreatePostRequest{Title: "Empty", Content: " "})
	assert.Error(t, err)

	tests := []struct {
		name   string
		filter PostListFilter
		want   int
	}{
		{"active only", PostListFilter{}, 2},
		{"by category", PostListFilter{CategoryID: &news.ID}, 1},
		{"by tag", PostListFilter{TagID: &tag.ID}, 1},
		{"by search", PostListFilter{Search: "hours"}, 1},
		{"no match", PostListFilter{Search: "tea"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListPosts(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(tt.want), page.Total)
			assert.Len(t, page.Items, tt.want)
		})
	}

	got, err := svc.GetPost(ctx, brewing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)
	got, err = svc.GetPost(ctx, brewing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)

	_, err = svc.GetPost(ctx, hidden.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestService_Comments(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	reader := uuid.New()

	post, err := svc.CreatePost(ctx, uuid.New(), CreatePostRequest{Title: "Hello", Content: "World"})
	require.NoError(t, err)

	first, err := svc.AddComment(ctx, reader, post.ID, CreateCommentRequest{Text: "Nice"})
	require.NoError(t, err)
	assert.False(t, first.IsAccepted)
	_, err = svc.AddComment(ctx, reader, post.ID, CreateCommentRequest{Text: "Still waiting"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, reader, uuid.New(), CreateCommentRequest{Text: "Lost"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	visible, err := svc.ListComments(ctx, post.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, visible.Items)

	pending, err := svc.ListPendingComments(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.Total)

	accepted, err := svc.AcceptComment(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)

	visible, err = svc.ListComments(ctx, post.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, visible.Items, 1)
	assert.Equal(t, "Nice", visible.Items[0].Text)

	_, err = svc.AcceptComment(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Bookmarks(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	reader := uuid.New()

	post, err := svc.CreatePost(ctx, uuid.New(), CreatePostRequest{Title: "Keep me", Content: "Saved"})
	require.NoError(t, err)

	toggled, err := svc.ToggleBookmark(ctx, reader, post.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.BookmarkAdded, toggled.Status)

	saved, err := svc.ListBookmarks(ctx, reader, 1, 20)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, post.ID, saved.Items[0].ID)

	toggled, err = svc.ToggleBookmark(ctx, reader, post.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.BookmarkRemoved, toggled.Status)

	saved, err = svc.ListBookmarks(ctx, reader, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, saved.Items)

	_, err = svc.ToggleBookmark(ctx, reader, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
