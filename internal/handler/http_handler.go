package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-blog/internal/service"
	"github.com/weiawesome/wes-io-blog/pkg/middleware"
)

// Handler handles HTTP requests for the blog API and pages.
type Handler struct {
	userService    service.UserService
	socialService  service.SocialService
	postService    service.PostService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	userService service.UserService,
	socialService service.SocialService,
	postService service.PostService,
	authMiddleware *middleware.AuthMiddleware,
) *Handler {
	return &Handler{
		userService:    userService,
		socialService:  socialService,
		postService:    postService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes installs the page templates and registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(templates)

	r.GET("/", h.IndexPage)

	requireAuth := h.authMiddleware.RequireAuth()

	users := r.Group("/users")
	{
		users.POST("", h.Register)
		users.POST("/login", h.Login)
		users.POST("/logout", requireAuth, h.Logout)
		users.POST("/follow/:id", requireAuth, h.Follow)

		users.GET("/me", requireAuth, h.GetMe)
		users.PATCH("/me", requireAuth, h.UpdateMe)
		users.DELETE("/me", requireAuth, h.DeleteMe)
		users.GET("/me/followers", requireAuth, h.Followers)
		users.GET("/me/following", requireAuth, h.Following)

		users.GET("/:id", h.UserPage)
	}

	posts := r.Group("/post")
	{
		posts.POST("", requireAuth, h.CreatePost)
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.PostPage)
		posts.PATCH("/:id", requireAuth, h.UpdatePost)
		posts.DELETE("/:id", requireAuth, h.DeletePost)
		// Comments are open to anonymous callers.
		posts.POST("/:id/comment", h.AddComments)
	}
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
