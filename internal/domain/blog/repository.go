package blog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// PostQuery narrows a post listing
type PostQuery struct {
	shared.Filter
	CategoryID *uuid.UUID
	TagID      *uuid.UUID
}

// PostRepository persists posts, categories and tags
type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// List returns active posts newest first
	List(ctx context.Context, query PostQuery) ([]Post, int64, error)
	Save(ctx context.Context, post *Post) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]Category, error)
	SaveCategory(ctx context.Context, category *Category) error
	ListTags(ctx context.Context) ([]Tag, error)
	SaveTag(ctx context.Context, tag *Tag) error
}

// CommentRepository persists comments
type CommentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListVisible returns accepted active comments newest first
	ListVisible(ctx context.Context, postID uuid.UUID, filter shared.Filter) ([]Comment, int64, error)
	ListPending(ctx context.Context, filter shared.Filter) ([]Comment, int64, error)
	Save(ctx context.Context, comment *Comment) error
}

// BookmarkRepository persists bookmarks
type BookmarkRepository interface {
	Find(ctx context.Context, postID, userID uuid.UUID) (*Bookmark, error)
	Save(ctx context.Context, bookmark *Bookmark) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Post, int64, error)
}
