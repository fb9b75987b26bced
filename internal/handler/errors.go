package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-blog/internal/service"
	"github.com/weiawesome/wes-io-blog/pkg/log"
	"github.com/weiawesome/wes-io-blog/pkg/response"
)

// writeError maps a service error to its status code. Errors with no
// client-facing meaning are logged and reported as 500 with fallback.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c)
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c)
	case isClientError(err):
		response.BadRequest(c, err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg(fallback)
		response.InternalError(c, fallback)
	}
}

func isClientError(err error) bool {
	return errors.Is(err, service.ErrValidation) ||
		errors.Is(err, service.ErrInvalidUpdate) ||
		errors.Is(err, service.ErrInvalidCredentials) ||
		errors.Is(err, service.ErrEmailExists) ||
		errors.Is(err, service.ErrSelfFollow)
}
