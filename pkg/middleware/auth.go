package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-blog/pkg/log"
	"github.com/weiawesome/wes-io-blog/pkg/response"
)

const (
	UserIDKey     = "user_id"
	TokenKey      = "token"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator resolves a bearer token to the id of the user it belongs to.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// AuthMiddleware rejects requests that do not carry a live session token.
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth returns a Gin middleware that aborts with an empty 401 unless
// the Authorization header holds a valid bearer token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if token == "" {
			response.Unauthorized(c)
			return
		}

		ctx := c.Request.Context()
		userID, err := m.validator.Validate(ctx, token)
		if err != nil {
			l := log.Ctx(ctx)
			l.Debug().Err(err).Msg("rejected bearer token")
			response.Unauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Request = c.Request.WithContext(log.WithStr(ctx, log.FieldUserID, userID))

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from Gin context.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetToken extracts the bearer token used to authenticate the request.
func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
