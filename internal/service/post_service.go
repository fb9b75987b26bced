package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/weiawesome/wes-io-blog/internal/audit"
	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/internal/events"
	"github.com/weiawesome/wes-io-blog/internal/repository"
	"github.com/weiawesome/wes-io-blog/pkg/log"
)

// postServiceImpl implements PostService interface.
type postServiceImpl struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	events *events.Emitter
	now    func() time.Time
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, emitter *events.Emitter) PostService {
	return &postServiceImpl{posts: posts, users: users, events: emitter, now: time.Now}
}

// CreatePost creates a post owned by authorID.
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID string, req *domain.CreatePostRequest) (*domain.Post, error) {
	l := log.Ctx(ctx)

	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	post := &domain.Post{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, authorID).Msg("failed to create post")
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionCreatePost, authorID, post.ID, "post created")
	s.events.Emit(ctx, events.PostCreated, post.ID, events.PostPayload{PostID: post.ID, AuthorID: authorID, Title: post.Title})
	return post, nil
}

// UpdatePost applies a partial update restricted to title, body and author.
func (s *postServiceImpl) UpdatePost(ctx context.Context, id, callerID string, patch domain.Patch) (*domain.Post, error) {
	l := log.Ctx(ctx).With().Str(log.FieldPostID, id).Str(log.FieldUserID, callerID).Logger()

	if key := patch.Disallowed(domain.PostPatchFields); key != "" {
		return nil, invalidUpdate(key)
	}

	var req domain.UpdatePostRequest
	if err := patch.Decode(&req); err != nil {
		return nil, validationError(err)
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}

	post, err := s.ownedPost(ctx, id, callerID)
	if err != nil {
		if !errors.Is(err, ErrPostNotFound) {
			l.Error().Err(err).Msg("failed to get post for update")
		}
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Author != nil {
		if _, err := s.users.GetByID(ctx, *req.Author); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, validationError(errors.New("author must reference an existing user"))
			}
			l.Error().Err(err).Msg("failed to get new post author")
			return nil, err
		}
		post.AuthorID = *req.Author
	}

	if err := s.posts.UpdateOwned(ctx, post, callerID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		l.Error().Err(err).Msg("failed to update post")
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionUpdatePost, callerID, post.ID, "post updated")
	s.events.Emit(ctx, events.PostUpdated, post.ID, events.PostPayload{PostID: post.ID, AuthorID: post.AuthorID, Title: post.Title})
	return post, nil
}

// DeletePost deletes a post owned by callerID together with its comments.
func (s *postServiceImpl) DeletePost(ctx context.Context, id, callerID string) (*domain.Post, error) {
	if !domain.ValidID(id) {
		return nil, ErrPostNotFound
	}

	post, err := s.posts.DeleteOwned(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldPostID, id).Msg("failed to delete post")
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionDeletePost, callerID, id, "post deleted")
	s.events.Emit(ctx, events.PostDeleted, id, events.PostPayload{PostID: id, AuthorID: callerID})
	return post, nil
}

// AddComments appends comments to a post in the order given. Comments
// without a timestamp are stamped now.
func (s *postServiceImpl) AddComments(ctx context.Context, id string, req *domain.AddCommentsRequest) error {
	if !domain.ValidID(id) {
		return ErrPostNotFound
	}

	now := s.now().UTC()
	comments := make([]domain.Comment, len(req.Comments))
	for i, in := range req.Comments {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return validationError(errors.New("comment text is required"))
		}
		createdAt := now
		if in.CreatedAt != nil {
			createdAt = *in.CreatedAt
		}
		comments[i] = domain.Comment{Text: text, CreatedAt: createdAt}
	}

	if err := s.posts.AppendComments(ctx, id, comments); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldPostID, id).Msg("failed to add comments")
		return err
	}

	s.events.Emit(ctx, events.PostCommented, id, events.CommentPayload{PostID: id, Count: len(comments)})
	return nil
}

// ListPosts returns every post, newest first.
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list posts")
		return nil, err
	}
	return posts, nil
}

// GetPost retrieves a post by ID. Malformed ids are not found.
func (s *postServiceImpl) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if !domain.ValidID(id) {
		return nil, ErrPostNotFound
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldPostID, id).Msg("failed to get post")
		return nil, err
	}
	return post, nil
}

// ListByAuthor returns the posts authored by userID, newest first.
func (s *postServiceImpl) ListByAuthor(ctx context.Context, userID string) ([]domain.Post, error) {
	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to list posts by author")
		return nil, err
	}
	return posts, nil
}

// ownedPost loads a post, reporting ErrPostNotFound when it is absent or
// belongs to someone other than callerID.
func (s *postServiceImpl) ownedPost(ctx context.Context, id, callerID string) (*domain.Post, error) {
	if !domain.ValidID(id) {
		return nil, ErrPostNotFound
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrPostNotFound
	}
	return post, nil
}
