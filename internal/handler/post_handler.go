package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/pkg/log"
	"github.com/weiawesome/wes-io-blog/pkg/middleware"
	"github.com/weiawesome/wes-io-blog/pkg/response"
)

// CreatePost handles POST /post. Any author in the body is ignored.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreatePostRequest
	if err := bindNormalized(c, &req); err != nil {
		l.Warn().Err(err).Msg("invalid create post request")
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		writeError(c, err, "failed to create post")
		return
	}

	response.Created(c, domain.PostEnvelope{Post: post})
}

// ListPosts handles GET /post.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to list posts")
		return
	}

	response.Success(c, domain.PostList{Posts: posts})
}

// UpdatePost handles PATCH /post/:id.
func (h *Handler) UpdatePost(c *gin.Context) {
	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), patch)
	if err != nil {
		writeError(c, err, "failed to update post")
		return
	}

	response.Success(c, domain.PostEnvelope{Post: post})
}

// DeletePost handles DELETE /post/:id.
func (h *Handler) DeletePost(c *gin.Context) {
	post, err := h.postService.DeletePost(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, "failed to delete post")
		return
	}

	response.Success(c, domain.PostEnvelope{Post: post})
}

// AddComments handles POST /post/:id/comment.
func (h *Handler) AddComments(c *gin.Context) {
	id := c.Param("id")
	if !domain.ValidID(id) {
		response.NotFound(c)
		return
	}

	var req domain.AddCommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.postService.AddComments(c.Request.Context(), id, &req); err != nil {
		writeError(c, err, "failed to add comments")
		return
	}

	response.Empty(c, http.StatusCreated)
}
