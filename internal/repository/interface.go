package repository

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-io-blog/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrPostNotFound = errors.New("post not found")
)

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIDs returns the users that exist among ids, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// Update persists name, email and password hash.
	Update(ctx context.Context, user *domain.User) error
	UpdateTokens(ctx context.Context, id string, tokens []string) error
	// DeleteCascade removes the user's posts, their comments and every follow
	// row touching the user, then the user, in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

// PostRepository defines the interface for post and comment persistence.
// Returned posts carry their comments in insertion order and the author
// populated as id and name.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	// UpdateOwned writes title, body and author of post only if its stored
	// author is ownerID.
	UpdateOwned(ctx context.Context, post *domain.Post, ownerID string) error
	// DeleteOwned deletes the post and its comments only if its stored author
	// is ownerID, returning the deleted post.
	DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Post, error)
	AppendComments(ctx context.Context, postID string, comments []domain.Comment) error
}

// FollowRepository defines persistence operations for follow relationships.
type FollowRepository interface {
	// Follow records followerID -> followingID. Recording an existing pair is a no-op.
	Follow(ctx context.Context, followerID, followingID string) error
	// ListFollowing returns the ids followerID follows, oldest first.
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
	// ListFollowers returns the ids following followingID, oldest first.
	ListFollowers(ctx context.Context, followingID string) ([]string, error)
}
