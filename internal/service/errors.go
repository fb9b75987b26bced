package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("unable to login")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidUpdate      = errors.New("invalid updates")
	ErrValidation         = errors.New("validation failed")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrEmailExists        = errors.New("email already exists")
)

// validate checks the same binding tags gin checks on request bodies, so
// requests decoded outside gin get identical rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func invalidUpdate(key string) error {
	return fmt.Errorf("%w: %q is not allowed", ErrInvalidUpdate, key)
}
