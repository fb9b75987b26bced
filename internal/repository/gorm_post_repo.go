package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/pkg/log"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func preloadComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.id ASC")
	})
}

// Create creates a new post with a fresh id.
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	l := log.Ctx(ctx)

	post.ID = uuid.New().String()
	model := &domain.PostModel{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		AuthorID: post.AuthorID,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create post in db")
		return err
	}

	post.CreatedAt = model.CreatedAt
	post.UpdatedAt = model.UpdatedAt
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}
	return r.populateAuthors(ctx, []*domain.Post{post})
}

// GetByID retrieves a post by ID.
func (r *GormPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return r.getByID(ctx, r.db.WithContext(ctx), id)
}

func (r *GormPostRepository) getByID(ctx context.Context, db *gorm.DB, id string) (*domain.Post, error) {
	var model domain.PostModel
	if err := preloadComments(db).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post := model.ToDomain()
	if err := r.populateAuthorsWith(db, []*domain.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// List retrieves every post, newest first.
func (r *GormPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

// ListByAuthor retrieves the posts of one author, newest first.
func (r *GormPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (r *GormPostRepository) find(ctx context.Context, query *gorm.DB) ([]domain.Post, error) {
	var models []domain.PostModel
	if err := preloadComments(query).Order("created_at DESC").Order("id").Find(&models).Error; err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list posts from db")
		return nil, err
	}

	posts := make([]domain.Post, len(models))
	ptrs := make([]*domain.Post, len(models))
	for i := range models {
		posts[i] = *models[i].ToDomain()
		ptrs[i] = &posts[i]
	}
	if err := r.populateAuthors(ctx, ptrs); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateOwned updates a post if ownerID is its author.
func (r *GormPostRepository) UpdateOwned(ctx context.Context, post *domain.Post, ownerID string) error {
	result := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("id = ? AND author_id = ?", post.ID, ownerID).
		Updates(map[string]interface{}{
			"title":     post.Title,
			"body":      post.Body,
			"author_id": post.AuthorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	updated, err := r.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}
	*post = *updated
	return nil
}

// DeleteOwned deletes a post and its comments if ownerID is its author.
func (r *GormPostRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Post, error) {
	var deleted *domain.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := r.getByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if post.AuthorID != ownerID {
			return ErrPostNotFound
		}

		if err := tx.Where("post_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND author_id = ?", id, ownerID).Delete(&domain.PostModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}

		deleted = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// AppendComments adds comments to the end of a post's comment list.
func (r *GormPostRepository) AppendComments(ctx context.Context, postID string, comments []domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.PostModel{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPostNotFound
		}
		if len(comments) == 0 {
			return nil
		}

		models := make([]domain.CommentModel, len(comments))
		for i, c := range comments {
			models[i] = domain.CommentModel{PostID: postID, Text: c.Text, CreatedAt: c.CreatedAt}
		}
		if err := tx.Create(&models).Error; err != nil {
			return err
		}

		return tx.Model(&domain.PostModel{}).Where("id = ?", postID).Update("updated_at", time.Now()).Error
	})
}

func (r *GormPostRepository) populateAuthors(ctx context.Context, posts []*domain.Post) error {
	return r.populateAuthorsWith(r.db.WithContext(ctx), posts)
}

// populateAuthorsWith resolves each post's author to id and name with a
// single lookup. Authors that no longer exist keep an empty name.
func (r *GormPostRepository) populateAuthorsWith(db *gorm.DB, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
	}

	var authors []domain.UserModel
	if err := db.Session(&gorm.Session{NewDB: true}).Model(&domain.UserModel{}).Select("id", "name").Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return err
	}
	names := make(map[string]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
	}

	for _, p := range posts {
		p.Author = domain.Author{ID: p.AuthorID, Name: names[p.AuthorID]}
	}
	return nil
}

var _ PostRepository = (*GormPostRepository)(nil)
