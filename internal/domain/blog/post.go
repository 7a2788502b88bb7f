package blog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Post is a blog article
type Post struct {
	shared.BaseAggregateRoot
	Title      string
	Slug       string
	Content    string
	CategoryID *uuid.UUID
	TagIDs     []uuid.UUID
	AuthorID   uuid.UUID
	IsActive   bool
	ViewCount  int64
}

// NewPost creates an active post with a slug derived from its title
func NewPost(authorID uuid.UUID, title, content string) (*Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if utf8.RuneCountInString(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Post title cannot exceed 200 characters")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Post content cannot be empty")
	}
	return &Post{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              shared.Slugify(title),
		Content:           content,
		TagIDs:            []uuid.UUID{},
		AuthorID:          authorID,
		IsActive:          true,
	}, nil
}

// Categorize sets the category and the tags of the post
func (p *Post) Categorize(categoryID *uuid.UUID, tagIDs []uuid.UUID) {
	p.CategoryID = categoryID
	seen := make(map[uuid.UUID]struct{}, len(tagIDs))
	p.TagIDs = make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p.TagIDs = append(p.TagIDs, id)
	}
	p.Touch()
}

// Unpublish hides the post
func (p *Post) Unpublish() {
	p.IsActive = false
	p.Touch()
}

// Category groups posts
type Category struct {
	shared.BaseEntity
	Title string
	Slug  string
}

// NewCategory creates a blog category
func NewCategory(title string) (*Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	return &Category{BaseEntity: shared.NewBaseEntity(), Title: title, Slug: shared.Slugify(title)}, nil
}

// Tag labels posts
type Tag struct {
	shared.BaseEntity
	Title string
	Slug  string
}

// NewTag creates a blog tag
func NewTag(title string) (*Tag, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Tag title cannot be empty")
	}
	return &Tag{BaseEntity: shared.NewBaseEntity(), Title: title, Slug: shared.Slugify(title)}, nil
}

// Comment is a reader's remark on a post; it is hidden until accepted
type Comment struct {
	shared.BaseEntity
	PostID     uuid.UUID
	UserID     uuid.UUID
	Text       string
	IsAccepted bool
	IsActive   bool
}

// NewComment creates a pending comment
func NewComment(postID, userID uuid.UUID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, shared.NewDomainError("INVALID_TEXT", "Comment cannot be empty")
	}
	if utf8.RuneCountInString(text) > 2000 {
		return nil, shared.NewDomainError("INVALID_TEXT", "Comment cannot exceed 2000 characters")
	}
	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		PostID:     postID,
		UserID:     userID,
		Text:       text,
		IsActive:   true,
	}, nil
}

// Accept publishes the comment
func (c *Comment) Accept() {
	c.IsAccepted = true
	c.Touch()
}

// Bookmark marks a post as saved by a user
type Bookmark struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Bookmark toggle results
const (
	BookmarkAdded   = 1
	BookmarkRemoved = 0
)

// NewBookmark creates a bookmark
func NewBookmark(postID, userID uuid.UUID) *Bookmark {
	return &Bookmark{ID: uuid.New(), PostID: postID, UserID: userID, CreatedAt: time.Now()}
}
