package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type normalizer interface {
	Normalize()
}

var errEmptyBody = errors.New("request body is required")

// bindNormalized decodes the JSON body into req, trims it, then runs gin's
// validator, so binding rules see normalized values.
func bindNormalized(c *gin.Context, req normalizer) error {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	req.Normalize()
	return binding.Validator.ValidateStruct(req)
}
