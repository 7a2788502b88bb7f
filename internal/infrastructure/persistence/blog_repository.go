package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/blog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPostRepository implements blog.PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of active posts narrowed by category, tag and search
func (r *GormPostRepository) List(ctx context.Context, query blog.PostQuery) ([]blog.Post, int64, error) {
	conditions := func(db *gorm.DB) *gorm.DB {
		db = db.Where("posts.is_active = ?", true)
		if query.CategoryID != nil {
			db = db.Where("posts.category_id = ?", *query.CategoryID)
		}
		if query.TagID != nil {
			// tag_ids holds a JSON array of quoted ids
			db = db.Where("CAST(posts.tag_ids AS TEXT) LIKE ?", `%"`+query.TagID.String()+`"%`)
		}
		if query.Search != "" {
			pattern := likePattern(query.Search)
			db = db.Where("LOWER(posts.title) LIKE ? ESCAPE '\\' OR LOWER(posts.content) LIKE ? ESCAPE '\\'", pattern, pattern)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PostModel{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var postModels []models.PostModel
	q := r.db.WithContext(ctx).Scopes(conditions).Order(postSorts.by(query.Filter))
	if err := paginate(q, query.Filter).Find(&postModels).Error; err != nil {
		return nil, 0, err
	}
	return postsToDomain(postModels), total, nil
}

// Save creates or updates a post
func (r *GormPostRepository) Save(ctx context.Context, post *blog.Post) error {
	return r.db.WithContext(ctx).Save(models.PostModelFromDomain(post)).Error
}

// IncrementViewCount bumps the view counter atomically
func (r *GormPostRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.PostModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListCategories returns every blog category by title
func (r *GormPostRepository) ListCategories(ctx context.Context) ([]blog.Category, error) {
	var categoryModels []models.BlogCategoryModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]blog.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = *categoryModels[i].ToDomain()
	}
	return categories, nil
}

// SaveCategory creates or updates a blog category
func (r *GormPostRepository) SaveCategory(ctx context.Context, category *blog.Category) error {
	return r.db.WithContext(ctx).Save(models.BlogCategoryModelFromDomain(category)).Error
}

// ListTags returns every blog tag by title
func (r *GormPostRepository) ListTags(ctx context.Context) ([]blog.Tag, error) {
	var tagModels []models.BlogTagModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&tagModels).Error; err != nil {
		return nil, err
	}
	tags := make([]blog.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = *tagModels[i].ToDomain()
	}
	return tags, nil
}

// SaveTag creates or updates a blog tag
func (r *GormPostRepository) SaveTag(ctx context.Context, tag *blog.Tag) error {
	return r.db.WithContext(ctx).Save(models.BlogTagModelFromDomain(tag)).Error
}

func postsToDomain(postModels []models.PostModel) []blog.Post {
	posts := make([]blog.Post, len(postModels))
	for i := range postModels {
		posts[i] = *postModels[i].ToDomain()
	}
	return posts
}

// GormCommentRepository implements blog.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListVisible returns the accepted, active comments of a post newest first
func (r *GormCommentRepository) ListVisible(ctx context.Context, postID uuid.UUID, filter shared.Filter) ([]blog.Comment, int64, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("post_id = ? AND is_accepted = ? AND is_active = ?", postID, true, true)
	}, filter)
}

// ListPending returns the comments awaiting moderation, oldest first
func (r *GormCommentRepository) ListPending(ctx context.Context, filter shared.Filter) ([]blog.Comment, int64, error) {
	filter.OrderDir = "asc"
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_accepted = ? AND is_active = ?", false, true)
	}, filter)
}

func (r *GormCommentRepository) list(ctx context.Context, conditions func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]blog.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CommentModel{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var commentModels []models.CommentModel
	q := r.db.WithContext(ctx).Scopes(conditions).Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "created_at"}, Desc: descending(filter.OrderDir)})
	if err := paginate(q, filter).Find(&commentModels).Error; err != nil {
		return nil, 0, err
	}
	comments := make([]blog.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = *commentModels[i].ToDomain()
	}
	return comments, total, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *blog.Comment) error {
	return r.db.WithContext(ctx).Save(models.CommentModelFromDomain(comment)).Error
}

// GormBookmarkRepository implements blog.BookmarkRepository using GORM
type GormBookmarkRepository struct {
	db *gorm.DB
}

// NewGormBookmarkRepository creates a new GormBookmarkRepository
func NewGormBookmarkRepository(db *gorm.DB) *GormBookmarkRepository {
	return &GormBookmarkRepository{db: db}
}

// Find returns the bookmark of a user on a post
func (r *GormBookmarkRepository) Find(ctx context.Context, postID, userID uuid.UUID) (*blog.Bookmark, error) {
	var model models.BookmarkModel
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a bookmark
func (r *GormBookmarkRepository) Save(ctx context.Context, bookmark *blog.Bookmark) error {
	return r.db.WithContext(ctx).Save(models.BookmarkModelFromDomain(bookmark)).Error
}

// Delete removes a bookmark
func (r *GormBookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BookmarkModel{}, "id = ?", id).Error
}

// ListPosts returns the active posts a user bookmarked, most recent bookmark first
func (r *GormBookmarkRepository) ListPosts(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]blog.Post, int64, error) {
	bookmarked := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
			Where("bookmarks.user_id = ? AND posts.is_active = ?", userID, true)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PostModel{}).Scopes(bookmarked).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var postModels []models.PostModel
	q := r.db.WithContext(ctx).Model(&models.PostModel{}).Scopes(bookmarked).Order("bookmarks.created_at DESC")
	if err := paginate(q, filter).Find(&postModels).Error; err != nil {
		return nil, 0, err
	}
	return postsToDomain(postModels), total, nil
}

var (
	_ blog.PostRepository     = (*GormPostRepository)(nil)
	_ blog.CommentRepository  = (*GormCommentRepository)(nil)
	_ blog.BookmarkRepository = (*GormBookmarkRepository)(nil)
)
