package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/internal/service"
	"github.com/weiawesome/wes-io-blog/pkg/log"
	"github.com/weiawesome/wes-io-blog/pkg/middleware"
	"github.com/weiawesome/wes-io-blog/pkg/response"
)

// Register handles POST /users.
func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.RegisterRequest
	if err := bindNormalized(c, &req); err != nil {
		l.Warn().Err(err).Msg("invalid register request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.Register(ctx, &req)
	if err != nil {
		writeError(c, err, "failed to register user")
		return
	}

	response.Created(c, result)
}

// Login handles POST /users/login.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.LoginRequest
	if err := bindNormalized(c, &req); err != nil {
		response.BadRequest(c, service.ErrInvalidCredentials.Error())
		return
	}

	result, err := h.userService.Login(ctx, &req)
	if err != nil {
		writeError(c, err, "failed to login")
		return
	}

	response.Success(c, result)
}

// Logout handles POST /users/logout.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.userService.Logout(ctx, middleware.GetUserID(c), middleware.GetToken(c)); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("logout failed")
		response.InternalError(c, "failed to logout")
		return
	}

	response.Empty(c, http.StatusOK)
}

// GetMe handles GET /users/me.
func (h *Handler) GetMe(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c)
			return
		}
		writeError(c, err, "failed to get profile")
		return
	}

	response.Success(c, profile)
}

// UpdateMe handles PATCH /users/me.
func (h *Handler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateUser(ctx, middleware.GetUserID(c), patch)
	if err != nil {
		writeError(c, err, "failed to update user")
		return
	}

	response.Success(c, user)
}

// DeleteMe handles DELETE /users/me.
func (h *Handler) DeleteMe(c *gin.Context) {
	user, err := h.userService.DeleteUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, "failed to delete user")
		return
	}

	response.Success(c, user)
}

// Follow handles POST /users/follow/:id.
func (h *Handler) Follow(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := middleware.GetUserID(c)
	targetID := c.Param("id")

	user, err := h.socialService.Follow(ctx, actorID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c)
		case errors.Is(err, service.ErrSelfFollow):
			response.BadRequest(c, err.Error())
		default:
			l := log.Ctx(ctx)
			l.Error().Err(err).
				Str(log.FieldUserID, actorID).
				Str(log.FieldTargetID, targetID).
				Msg("follow failed")
			response.BadRequest(c, "unable to follow user")
		}
		return
	}

	response.Success(c, user)
}

// Followers handles GET /users/me/followers.
func (h *Handler) Followers(c *gin.Context) {
	followers, err := h.socialService.Followers(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, "failed to list followers")
		return
	}

	response.Success(c, followers)
}

// Following handles GET /users/me/following.
func (h *Handler) Following(c *gin.Context) {
	following, err := h.socialService.Following(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, "failed to list following")
		return
	}

	response.Success(c, following)
}
