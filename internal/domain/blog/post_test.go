package blog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost(t *testing.T) {
	post, err := NewPost(uuid.New(), "  Brewing Better Coffee ", "Start with fresh beans.")
	require.NoError(t, err)
	assert.Equal(t, "Brewing Better Coffee", post.Title)
	assert.Equal(t, "brewing-better-coffee", post.Slug)
	assert.True(t, post.IsActive)

	_, err = NewPost(uuid.New(), "", "content")
	assert.Error(t, err)
	_, err = NewPost(uuid.New(), "Title", " ")
	assert.Error(t, err)
}

func TestPost_Categorize(t *testing.T) {
	post, err := NewPost(uuid.New(), "Title", "content")
	require.NoError(t, err)

	tag := uuid.New()
	category := uuid.New()
	post.Categorize(&category, []uuid.UUID{tag, tag, uuid.New()})
	assert.Len(t, post.TagIDs, 2)
	assert.Equal(t, category, *post.CategoryID)
}

func TestComment(t *testing.T) {
	c, err := NewComment(uuid.New(), uuid.New(), "Nice read")
	require.NoError(t, err)
	assert.False(t, c.IsAccepted)

	c.Accept()
	assert.True(t, c.IsAccepted)

	_, err = NewComment(uuid.New(), uuid.New(), "  ")
	assert.Error(t, err)
}
