package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/wes-io-blog/internal/audit"
	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/internal/events"
	"github.com/weiawesome/wes-io-blog/internal/repository"
	"github.com/weiawesome/wes-io-blog/pkg/log"
)

// userServiceImpl implements UserService interface.
type userServiceImpl struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	follows  repository.FollowRepository
	hasher   *PasswordHasher
	sessions SessionService
	events   *events.Emitter
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	posts repository.PostRepository,
	follows repository.FollowRepository,
	hasher *PasswordHasher,
	sessions SessionService,
	emitter *events.Emitter,
) UserService {
	return &userServiceImpl{
		users:    users,
		posts:    posts,
		follows:  follows,
		hasher:   hasher,
		sessions: sessions,
		events:   emitter,
	}
}

// Register creates an account and issues its first token.
func (s *userServiceImpl) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		l.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to issue token after register")
		// A retry must not hit a duplicate email for an account nobody can use.
		if delErr := s.users.DeleteCascade(ctx, user.ID); delErr != nil {
			l.Error().Err(delErr).Str(log.FieldUserID, user.ID).Msg("failed to remove user after token error")
		}
		return nil, err
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "user registered")
	s.events.Emit(ctx, events.UserRegistered, user.ID, events.UserPayload{UserID: user.ID, Name: user.Name})

	return &domain.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

// Login authenticates a user and issues a new token.
func (s *userServiceImpl) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	email := domain.NormalizeEmail(req.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			audit.LogWithDetail(ctx, audit.ActionLoginFailed, "", email, "login failed: user not found")
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		audit.LogWithDetail(ctx, audit.ActionLoginFailed, user.ID, email, "login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to issue token after login")
		return nil, err
	}

	if err := s.loadRelations(ctx, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")
	return &domain.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

// Logout revokes the token the caller authenticated with.
func (s *userServiceImpl) Logout(ctx context.Context, userID, token string) error {
	l := log.Ctx(ctx)

	if err := s.sessions.Revoke(ctx, userID, token); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to revoke token")
		return err
	}

	audit.Log(ctx, audit.ActionLogout, userID, "user logged out")
	return nil
}

// GetProfile loads the user and its posts concurrently.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var (
		user  *domain.User
		posts []domain.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.GetUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.posts.ListByAuthor(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			l := log.Ctx(ctx)
			l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to load profile")
		}
		return nil, err
	}

	return &domain.Profile{User: user.ToResponse(), Posts: posts}, nil
}

// GetUser retrieves a user by ID together with its relationship sets.
func (s *userServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUserWithRelations(ctx, s.users, s.follows, userID)
}

// UpdateUser applies a partial update restricted to name, email and password.
func (s *userServiceImpl) UpdateUser(ctx context.Context, userID string, patch domain.Patch) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	if key := patch.Disallowed(domain.UserPatchFields); key != "" {
		return nil, invalidUpdate(key)
	}

	var req domain.UpdateUserRequest
	if err := patch.Decode(&req); err != nil {
		return nil, validationError(err)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get user for update")
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			l.Error().Err(err).Msg("failed to hash password")
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to update user")
		return nil, err
	}

	if err := s.loadRelations(ctx, user); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionUpdateProfile, userID, strings.Join(patch.Keys(), ","), "profile updated")

	resp := user.ToResponse()
	return &resp, nil
}

// DeleteUser deletes a user, its posts and its follow edges in one transaction.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get user for delete")
		}
		return nil, err
	}

	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to delete user")
		return nil, err
	}

	audit.Log(ctx, audit.ActionDeleteAccount, userID, "account deleted")
	s.events.Emit(ctx, events.UserDeleted, userID, events.UserPayload{UserID: userID, Name: user.Name})

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userServiceImpl) loadRelations(ctx context.Context, user *domain.User) error {
	return loadRelations(ctx, s.follows, user)
}

// getUserWithRelations loads a user by id and fills Following and Followers.
func getUserWithRelations(ctx context.Context, users repository.UserRepository, follows repository.FollowRepository, userID string) (*domain.User, error) {
	if !domain.ValidID(userID) {
		return nil, ErrUserNotFound
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := loadRelations(ctx, follows, user); err != nil {
		return nil, err
	}
	return user, nil
}

func loadRelations(ctx context.Context, follows repository.FollowRepository, user *domain.User) error {
	following, err := follows.ListFollowing(ctx, user.ID)
	if err != nil {
		return err
	}
	followers, err := follows.ListFollowers(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Following = following
	user.Followers = followers
	return nil
}
