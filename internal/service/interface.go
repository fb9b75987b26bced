package service

import (
	"context"

	"github.com/weiawesome/wes-io-blog/internal/domain"
)

// SessionService issues, validates and revokes bearer tokens. A token is
// valid while it is signed by this server and still stored on its user.
type SessionService interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Validate returns the id of the user owning token, or ErrUnauthorized.
	Validate(ctx context.Context, token string) (string, error)
	// Revoke removes token from the user's list. Revoking an absent token is a no-op.
	Revoke(ctx context.Context, userID, token string) error
}

// UserService defines the interface for account business logic.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	Logout(ctx context.Context, userID, token string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	// GetUser loads a user with its relationship sets. Malformed ids are not found.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, patch domain.Patch) (*domain.UserResponse, error)
	// DeleteUser removes the user with its posts and follow edges and returns
	// the user as it was before deletion.
	DeleteUser(ctx context.Context, userID string) (*domain.UserResponse, error)
}

// SocialService manages follow relationships.
type SocialService interface {
	// Follow makes actorID follow targetID and returns the actor. Following
	// an already followed user succeeds without change.
	Follow(ctx context.Context, actorID, targetID string) (*domain.UserResponse, error)
	Followers(ctx context.Context, userID string) ([]domain.PopulatedRelation, error)
	Following(ctx context.Context, userID string) ([]domain.PopulatedRelation, error)
}

// PostService defines the interface for post and comment business logic.
// Update and delete report ErrPostNotFound both for absent posts and for
// posts the caller does not own.
type PostService interface {
	CreatePost(ctx context.Context, authorID string, req *domain.CreatePostRequest) (*domain.Post, error)
	UpdatePost(ctx context.Context, id, callerID string, patch domain.Patch) (*domain.Post, error)
	DeletePost(ctx context.Context, id, callerID string) (*domain.Post, error)
	AddComments(ctx context.Context, id string, req *domain.AddCommentsRequest) error
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]domain.Post, error)
}
