package service

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-io-blog/internal/repository"
	"github.com/weiawesome/wes-io-blog/pkg/database"
	"github.com/weiawesome/wes-io-blog/pkg/jwt"
	"github.com/weiawesome/wes-io-blog/pkg/log"
)

// sessionServiceImpl implements SessionService over the user's stored token list.
type sessionServiceImpl struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

// NewSessionService creates a new session service.
func NewSessionService(users repository.UserRepository, tokens *jwt.Manager) SessionService {
	return &sessionServiceImpl{users: users, tokens: tokens}
}

// Issue signs a token for userID and appends it to the user's token list.
func (s *sessionServiceImpl) Issue(ctx context.Context, userID string) (string, error) {
	l := log.Ctx(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	token, err := s.tokens.Sign(userID)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to sign token")
		return "", err
	}

	if err := s.users.UpdateTokens(ctx, userID, append(user.Tokens, token)); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to store token")
		return "", err
	}
	return token, nil
}

// Validate checks the signature of token and that its user still holds it.
func (s *sessionServiceImpl) Validate(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			l := log.Ctx(ctx)
			l.Error().Err(err).Str(log.FieldUserID, claims.UserID).Msg("failed to load user for token validation")
		}
		return "", ErrUnauthorized
	}

	if !database.StringArray(user.Tokens).Contains(token) {
		return "", ErrUnauthorized
	}
	return user.ID, nil
}

// Revoke removes exactly token from the user's list.
func (s *sessionServiceImpl) Revoke(ctx context.Context, userID, token string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	tokens := database.StringArray(user.Tokens)
	if !tokens.Contains(token) {
		return nil
	}
	return s.users.UpdateTokens(ctx, userID, tokens.Without(token))
}
