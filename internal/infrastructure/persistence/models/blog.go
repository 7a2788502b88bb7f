package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/blog"
)

// PostModel is the persistence model for blog.Post
type PostModel struct {
	AggregateModel
	Title      string      `gorm:"type:varchar(200);not null"`
	Slug       string      `gorm:"type:varchar(250);not null;index"`
	Content    string      `gorm:"type:text;not null"`
	CategoryID *uuid.UUID  `gorm:"type:uuid;index"`
	TagIDs     []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	AuthorID   uuid.UUID   `gorm:"type:uuid;not null"`
	IsActive   bool        `gorm:"not null;index"`
	ViewCount  int64       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PostModel) TableName() string { return "posts" }

// ToDomain converts the model to a domain Post
func (m *PostModel) ToDomain() *blog.Post {
	tags := m.TagIDs
	if tags == nil {
		tags = []uuid.UUID{}
	}
	return &blog.Post{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Title:             m.Title,
		Slug:              m.Slug,
		Content:           m.Content,
		CategoryID:        m.CategoryID,
		TagIDs:            tags,
		AuthorID:          m.AuthorID,
		IsActive:          m.IsActive,
		ViewCount:         m.ViewCount,
	}
}

// PostModelFromDomain creates a model from a domain Post
func PostModelFromDomain(p *blog.Post) *PostModel {
	m := &PostModel{
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		CategoryID: p.CategoryID,
		TagIDs:     p.TagIDs,
		AuthorID:   p.AuthorID,
		IsActive:   p.IsActive,
		ViewCount:  p.ViewCount,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// BlogCategoryModel is a blog category
type BlogCategoryModel struct {
	BaseModel
	Title string `gorm:"type:varchar(100);not null"`
	Slug  string `gorm:"type:varchar(150);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (BlogCategoryModel) TableName() string { return "blog_categories" }

// ToDomain converts the model to a domain Category
func (m *BlogCategoryModel) ToDomain() *blog.Category {
	return &blog.Category{BaseEntity: m.BaseModel.ToDomain(), Title: m.Title, Slug: m.Slug}
}

// BlogCategoryModelFromDomain creates a model from a domain Category
func BlogCategoryModelFromDomain(c *blog.Category) *BlogCategoryModel {
	m := &BlogCategoryModel{Title: c.Title, Slug: c.Slug}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// BlogTagModel is a blog tag
type BlogTagModel struct {
	BaseModel
	Title string `gorm:"type:varchar(100);not null"`
	Slug  string `gorm:"type:varchar(150);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (BlogTagModel) TableName() string { return "blog_tags" }

// ToDomain converts the model to a domain Tag
func (m *BlogTagModel) ToDomain() *blog.Tag {
	return &blog.Tag{BaseEntity: m.BaseModel.ToDomain(), Title: m.Title, Slug: m.Slug}
}

// BlogTagModelFromDomain creates a model from a domain Tag
func BlogTagModelFromDomain(t *blog.Tag) *BlogTagModel {
	m := &BlogTagModel{Title: t.Title, Slug: t.Slug}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// CommentModel is a moderated comment on a post
type CommentModel struct {
	BaseModel
	PostID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
	Text       string    `gorm:"type:varchar(2000);not null"`
	IsAccepted bool      `gorm:"not null;default:false;index"`
	IsActive   bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string { return "comments" }

// ToDomain converts the model to a domain Comment
func (m *CommentModel) ToDomain() *blog.Comment {
	return &blog.Comment{
		BaseEntity: m.BaseModel.ToDomain(),
		PostID:     m.PostID,
		UserID:     m.UserID,
		Text:       m.Text,
		IsAccepted: m.IsAccepted,
		IsActive:   m.IsActive,
	}
}

// CommentModelFromDomain creates a model from a domain Comment
func CommentModelFromDomain(c *blog.Comment) *CommentModel {
	m := &CommentModel{PostID: c.PostID, UserID: c.UserID, Text: c.Text, IsAccepted: c.IsAccepted, IsActive: c.IsActive}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// BookmarkModel records that a user saved a post
type BookmarkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_post_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_post_user,priority:2;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BookmarkModel) TableName() string { return "bookmarks" }

// ToDomain converts the model to a domain Bookmark
func (m *BookmarkModel) ToDomain() *blog.Bookmark {
	return &blog.Bookmark{ID: m.ID, PostID: m.PostID, UserID: m.UserID, CreatedAt: m.CreatedAt}
}

// BookmarkModelFromDomain creates a model from a domain Bookmark
func BookmarkModelFromDomain(b *blog.Bookmark) *BookmarkModel {
	return &BookmarkModel{ID: b.ID, PostID: b.PostID, UserID: b.UserID, CreatedAt: b.CreatedAt}
}
