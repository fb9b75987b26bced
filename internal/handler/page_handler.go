package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexPage renders every post, newest first.
func (h *Handler) IndexPage(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to list posts")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Posts",
		"Posts": posts,
	})
}

// UserPage renders a user profile with the user's posts.
func (h *Handler) UserPage(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userService.GetUser(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to get user")
		return
	}

	posts, err := h.postService.ListByAuthor(ctx, user.ID)
	if err != nil {
		writeError(c, err, "failed to list posts")
		return
	}

	c.HTML(http.StatusOK, "user.html", gin.H{
		"Title": user.Name,
		"User":  user.ToResponse(),
		"Posts": posts,
	})
}

// PostPage renders a single post with its comments.
func (h *Handler) PostPage(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to get post")
		return
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Title": post.Title,
		"Post":  post,
	})
}
