package handler

import (

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/blog"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// BlogHandler serves posts, comments and bookmarks
type BlogHandler struct {
	BaseHandler
	blogService *blog.Service
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *blog.Service) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

type postListQuery struct {
	dto.ListRequest
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	TagID      string `form:"tag_id" binding:"omitempty,uuid"`
}

func (q postListQuery) filter() blog.PostListFilter {
	f := blog.PostListFilter{Search: q.Search, Page: q.Page, PageSize: q.PageSize}
	if id, err := uuid.Parse(q.CategoryID); err == nil {
		f.CategoryID = &id
	}
	if id, err := uuid.Parse(q.TagID); err == nil {
		f.TagID = &id
	}
	return f
}

// ListPosts godoc
// @ID           listBlogPosts
// @Summary      List published posts
// @Tags         blog
// @Produce      json
// @Param        search query string false "Search text"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        tag_id query string false "Tag ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[blog.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /blog/posts [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var q postListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	posts, err := h.blogService.ListPosts(c.Request.Context(), q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, posts)
}

// GetPost godoc
// @ID           getBlogPost
// @Summary      Read a post
// @Description  Counts a view
// @Tags         blog
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[blog.PostDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /blog/posts/{id} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.blogService.GetPost(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// CreatePost godoc
// @ID           createBlogPost
// @Summary      Publish a post
// @Tags         blog-admin
// @Accept       json
// @Produce      json
// @Param        request body blog.CreatePostRequest true "Post"
// @Success      201 {object} APIResponse[blog.PostDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /blog/posts [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req blog.CreatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}
	post, err := h.blogService.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, post)
}

// UnpublishPost godoc
// @ID           unpublishBlogPost
// @Summary      Hide a post
// @Tags         blog-admin
// @Param        id path string true "Post ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /blog/posts/{id} [delete]
func (h *BlogHandler) UnpublishPost(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.blogService.UnpublishPost(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCategories godoc
// @ID           listBlogCategories
// @Summary      List blog categories
// @Tags         blog
// @Produce      json
// @Success      200 {object} APIResponse[[]blog.TaxonomyResponse]
// @Router       /blog/categories [get]
func (h *BlogHandler) ListCategories(c *gin.Context) {
	categories, err := h.blogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// CreateCategory godoc
// @ID           createBlogCategory
// @Summary      Create a blog category
// @Tags         blog-admin
// @Accept       json
// @Produce      json
// @Param        request body blog.CreateTaxonomyRequest true "Category"
// @Success      201 {object} APIResponse[blog.TaxonomyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /blog/categories [post]
func (h *BlogHandler) CreateCategory(c *gin.Context) {
	var req blog.CreateTaxonomyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.blogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListTags godoc
// @ID           listBlogTags
// @Summary      List blog tags
// @Tags         blog
// @Produce      json
// @Success      200 {object} APIResponse[[]blog.TaxonomyResponse]
// @Router       /blog/tags [get]
func (h *BlogHandler) ListTags(c *gin.Context) {
	tags, err := h.blogService.ListTags(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tags)
}

// CreateTag godoc
// @ID           createBlogTag
// @Summary      Create a blog tag
// @Tags         blog-admin
// @Accept       json
// @Produce      json
// @Param        request body blog.CreateTaxonomyRequest true "Tag"
// @Success      201 {object} APIResponse[blog.TaxonomyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /blog/tags [post]
func (h *BlogHandler) CreateTag(c *gin.Context) {
	var req blog.CreateTaxonomyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tag, err := h.blogService.CreateTag(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// ListComments godoc
// @ID           listBlogComments
// @Summary      List accepted comments of a post
// @Description  Newest first
// @Tags         blog
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[blog.CommentResponse]
// @Router       /blog/posts/{id}/comments [get]
func (h *BlogHandler) ListComments(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	comments, err := h.blogService.ListComments(c.Request.Context(), id, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, comments)
}

// AddComment godoc
// @ID           addBlogComment
// @Summary      Comment on a post
// @Description  Comments stay hidden until a staff member accepts them
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body blog.CreateCommentRequest true "Comment"
// @Success      201 {object} APIResponse[blog.CommentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /blog/posts/{id}/comments [post]
func (h *BlogHandler) AddComment(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req blog.CreateCommentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	comment, err := h.blogService.AddComment(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, comment)
}

// ListPendingComments godoc
// @ID           listPendingBlogComments
// @Summary      List comments waiting for moderation
// @Description  Oldest first
// @Tags         blog-admin
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[blog.CommentResponse]
// @Security     BearerAuth
// @Router       /admin/blog/comments [get]
func (h *BlogHandler) ListPendingComments(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	comments, err := h.blogService.ListPendingComments(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, comments)
}

// AcceptComment godoc
// @ID           acceptBlogComment
// @Summary      Accept a comment
// @Tags         blog-admin
// @Produce      json
// @Param        id path string true "Comment ID" format(uuid)
// @Success      200 {object} APIResponse[blog.CommentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/blog/comments/{id}/accept [post]
func (h *BlogHandler) AcceptComment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	comment, err := h.blogService.AcceptComment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comment)
}

// ToggleBookmark godoc
// @ID           toggleBlogBookmark
// @Summary      Bookmark or un-bookmark a post
// @Description  status is 1 when the bookmark was added and 0 when it was removed
// @Tags         blog
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[blog.BookmarkToggleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /blog/posts/{id}/bookmark [post]
func (h *BlogHandler) ToggleBookmark(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.blogService.ToggleBookmark(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListBookmarks godoc
// @ID           listBlogBookmarks
// @Summary      List bookmarked posts
// @Tags         blog
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[blog.PostResponse]
// @Security     BearerAuth
// @Router       /blog/bookmarks [get]
func (h *BlogHandler) ListBookmarks(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	posts, err := h.blogService.ListBookmarks(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, posts)
}
