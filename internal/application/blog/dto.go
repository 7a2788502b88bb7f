package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/blog"
)

// PostListFilter narrows the post listing
type PostListFilter struct {
	Search     string     `form:"search" binding:"max=100"`
	CategoryID *uuid.UUID `form:"category_id"`
	TagID      *uuid.UUID `form:"tag_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreatePostRequest creates a post
type CreatePostRequest struct {
	Title      string      `json:"title" binding:"required,max=200"`
	Content    string      `json:"content" binding:"required"`
	CategoryID *uuid.UUID  `json:"category_id"`
	TagIDs     []uuid.UUID `json:"tag_ids"`
}

// CreateTaxonomyRequest creates a blog category or tag
type CreateTaxonomyRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

// CreateCommentRequest leaves a comment on a post
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// PostResponse is a post as listed
type PostResponse struct {
	ID         uuid.UUID   `json:"id"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	TagIDs     []uuid.UUID `json:"tag_ids"`
	ViewCount  int64       `json:"view_count"`
	CreatedAt  time.Time   `json:"created_at"`
}

// PostDetailResponse is a full post
type PostDetailResponse struct {
	PostResponse
	Content  string    `json:"content"`
	AuthorID uuid.UUID `json:"author_id"`
}

// TaxonomyResponse is a blog category or tag
type TaxonomyResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

// CommentResponse is a comment
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"post_id"`
	UserID     uuid.UUID `json:"user_id"`
	Text       string    `json:"text"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookmarkToggleResponse reports whether the post is now bookmarked
type BookmarkToggleResponse struct {
	Status int `json:"status"`
}

// ToPostResponse converts a post
func ToPostResponse(p *blog.Post) PostResponse {
	tags := p.TagIDs
	if tags == nil {
		tags = []uuid.UUID{}
	}
	return PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		CategoryID: p.CategoryID,
		TagIDs:     tags,
		ViewCount:  p.ViewCount,
		CreatedAt:  p.CreatedAt,
	}
}

// ToCommentResponse converts a comment
func ToCommentResponse(c *blog.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		UserID:     c.UserID,
		Text:       c.Text,
		IsAccepted: c.IsAccepted,
		CreatedAt:  c.CreatedAt,
	}
}

func toPostResponses(posts []blog.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = ToPostResponse(&posts[i])
	}
	return out
}
