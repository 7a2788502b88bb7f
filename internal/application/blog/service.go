package blog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/blog"
	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service serves posts, comments and bookmarks
type Service struct {
	posts     blog.PostRepository
	comments  blog.CommentRepository
	bookmarks blog.BookmarkRepository
	logger    *zap.Logger
}

// NewService creates a new blog Service
func NewService(posts blog.PostRepository, comments blog.CommentRepository, bookmarks blog.BookmarkRepository, logger *zap.Logger) *Service {
	return &Service{posts: posts, comments: comments, bookmarks: bookmarks, logger: logger}
}

func pageOf(page, pageSize int) shared.Filter {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return shared.Filter{Page: page, PageSize: pageSize}
}

// ListPosts returns active posts newest first
func (s *Service) ListPosts(ctx context.Context, f PostListFilter) (shared.Paginated[PostResponse], error) {
	filter := pageOf(f.Page, f.PageSize)
	filter.Search = f.Search
	posts, total, err := s.posts.List(ctx, blog.PostQuery{Filter: filter, CategoryID: f.CategoryID, TagID: f.TagID})
	if err != nil {
		return shared.Paginated[PostResponse]{}, err
	}
	return shared.NewPaginated(toPostResponses(posts), total, filter.Page, filter.PageSize), nil
}

// GetPost returns an active post and counts the view
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*PostDetailResponse, error) {
	p, err := s.activePost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("Failed to count post view", zap.String("post_id", id.String()), zap.Error(err))
	} else {
		p.ViewCount++
	}
	return &PostDetailResponse{PostResponse: ToPostResponse(p), Content: p.Content, AuthorID: p.AuthorID}, nil
}

// CreatePost publishes a post written by authorID
func (s *Service) CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostDetailResponse, error) {
	p, err := blog.NewPost(authorID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	p.Categorize(req.CategoryID, req.TagIDs)
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Post created", zap.String("post_id", p.ID.String()), zap.String("slug", p.Slug))
	return &PostDetailResponse{PostResponse: ToPostResponse(p), Content: p.Content, AuthorID: p.AuthorID}, nil
}

// UnpublishPost hides a post
func (s *Service) UnpublishPost(ctx context.Context, id uuid.UUID) error {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Unpublish()
	return s.posts.Save(ctx, p)
}

// ListCategories returns the blog categories
func (s *Service) ListCategories(ctx context.Context) ([]TaxonomyResponse, error) {
	categories, err := s.posts.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TaxonomyResponse, len(categories))
	for i, c := range categories {
		out[i] = TaxonomyResponse{ID: c.ID, Title: c.Title, Slug: c.Slug}
	}
	return out, nil
}

// CreateCategory creates a blog category
func (s *Service) CreateCategory(ctx context.Context, req CreateTaxonomyRequest) (*TaxonomyResponse, error) {
	c, err := blog.NewCategory(req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.posts.SaveCategory(ctx, c); err != nil {
		return nil, err
	}
	return &TaxonomyResponse{ID: c.ID, Title: c.Title, Slug: c.Slug}, nil
}

// ListTags returns the blog tags
func (s *Service) ListTags(ctx context.Context) ([]TaxonomyResponse, error) {
	tags, err := s.posts.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TaxonomyResponse, len(tags))
	for i, t := range tags {
		out[i] = TaxonomyResponse{ID: t.ID, Title: t.Title, Slug: t.Slug}
	}
	return out, nil
}

// CreateTag creates a blog tag
func (s *Service) CreateTag(ctx context.Context, req CreateTaxonomyRequest) (*TaxonomyResponse, error) {
	t, err := blog.NewTag(req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.posts.SaveTag(ctx, t); err != nil {
		return nil, err
	}
	return &TaxonomyResponse{ID: t.ID, Title: t.Title, Slug: t.Slug}, nil
}

// AddComment stores a comment that stays hidden until accepted
func (s *Service) AddComment(ctx context.Context, userID, postID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}
	c, err := blog.NewComment(postID, userID, req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCommentResponse(c)
	return &resp, nil
}

// ListComments returns the accepted comments of a post newest first
func (s *Service) ListComments(ctx context.Context, postID uuid.UUID, page, pageSize int) (shared.Paginated[CommentResponse], error) {
	filter := pageOf(page, pageSize)
	filter.OrderDir = "desc"
	comments, total, err := s.comments.ListVisible(ctx, postID, filter)
	if err != nil {
		return shared.Paginated[CommentResponse]{}, err
	}
	return shared.NewPaginated(toCommentResponses(comments), total, filter.Page, filter.PageSize), nil
}

// ListPendingComments returns comments waiting for moderation, oldest first
func (s *Service) ListPendingComments(ctx context.Context, page, pageSize int) (shared.Paginated[CommentResponse], error) {
	filter := pageOf(page, pageSize)
	filter.OrderDir = "asc"
	comments, total, err := s.comments.ListPending(ctx, filter)
	if err != nil {
		return shared.Paginated[CommentResponse]{}, err
	}
	return shared.NewPaginated(toCommentResponses(comments), total, filter.Page, filter.PageSize), nil
}

// AcceptComment publishes a comment
func (s *Service) AcceptComment(ctx context.Context, id uuid.UUID) (*CommentResponse, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Accept()
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCommentResponse(c)
	return &resp, nil
}

// ToggleBookmark saves the post for userID, or removes an existing bookmark
func (s *Service) ToggleBookmark(ctx context.Context, userID, postID uuid.UUID) (*BookmarkToggleResponse, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}
	existing, err := s.bookmarks.Find(ctx, postID, userID)
	switch {
	case err == nil:
		if err := s.bookmarks.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &BookmarkToggleResponse{Status: blog.BookmarkRemoved}, nil
	case errors.Is(err, shared.ErrNotFound):
		if err := s.bookmarks.Save(ctx, blog.NewBookmark(postID, userID)); err != nil {
			return nil, err
		}
		return &BookmarkToggleResponse{Status: blog.BookmarkAdded}, nil
	default:
		return nil, err
	}
}

// ListBookmarks returns the posts userID saved, latest bookmark first
func (s *Service) ListBookmarks(ctx context.Context, userID uuid.UUID, page, pageSize int) (shared.Paginated[PostResponse], error) {
	filter := pageOf(page, pageSize)
	posts, total, err := s.bookmarks.ListPosts(ctx, userID, filter)
	if err != nil {
		return shared.Paginated[PostResponse]{}, err
	}
	return shared.NewPaginated(toPostResponses(posts), total, filter.Page, filter.PageSize), nil
}

func (s *Service) activePost(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func toCommentResponses(comments []blog.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = ToCommentResponse(&comments[i])
	}
	return out
}
