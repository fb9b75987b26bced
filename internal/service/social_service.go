package service

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-io-blog/internal/audit"
	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/internal/events"
	"github.com/weiawesome/wes-io-blog/internal/repository"
	"github.com/weiawesome/wes-io-blog/pkg/log"
)

// socialServiceImpl implements SocialService interface.
type socialServiceImpl struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	events  *events.Emitter
}

// NewSocialService creates a new social service.
func NewSocialService(users repository.UserRepository, follows repository.FollowRepository, emitter *events.Emitter) SocialService {
	return &socialServiceImpl{users: users, follows: follows, events: emitter}
}

// Follow records actorID -> targetID.
func (s *socialServiceImpl) Follow(ctx context.Context, actorID, targetID string) (*domain.UserResponse, error) {
	l := log.Ctx(ctx).With().Str(log.FieldUserID, actorID).Str(log.FieldTargetID, targetID).Logger()

	if !domain.ValidID(targetID) {
		return nil, ErrUserNotFound
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Msg("failed to get follow target")
		return nil, err
	}
	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	if err := s.follows.Follow(ctx, actorID, targetID); err != nil {
		l.Error().Err(err).Msg("failed to follow user")
		return nil, err
	}

	actor, err := getUserWithRelations(ctx, s.users, s.follows, actorID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			l.Error().Err(err).Msg("failed to reload user after follow")
		}
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionFollow, actorID, targetID, "user followed")
	s.events.Emit(ctx, events.UserFollowed, targetID, events.FollowPayload{FollowerID: actorID, FollowingID: targetID})

	resp := actor.ToResponse()
	return &resp, nil
}

// Followers returns the users following userID, oldest edge first.
func (s *socialServiceImpl) Followers(ctx context.Context, userID string) ([]domain.PopulatedRelation, error) {
	ids, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to list followers")
		return nil, err
	}
	return s.populate(ctx, ids)
}

// Following returns the users userID follows, oldest edge first.
func (s *socialServiceImpl) Following(ctx context.Context, userID string) ([]domain.PopulatedRelation, error) {
	ids, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to list following")
		return nil, err
	}
	return s.populate(ctx, ids)
}

// populate resolves ids to user summaries, keeping the order of ids.
func (s *socialServiceImpl) populate(ctx context.Context, ids []string) ([]domain.PopulatedRelation, error) {
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to populate relations")
		return nil, err
	}

	out := make([]domain.PopulatedRelation, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			out = append(out, domain.PopulatedRelation{User: u.ToSummary()})
		}
	}
	return out, nil
}
