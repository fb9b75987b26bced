package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/weiawesome/wes-io-blog/internal/domain"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Follow inserts the (follower, following) pair unless it already exists.
// A concurrent insert of the same pair trips the unique index and is
// treated as success too.
func (r *GormFollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	db := r.db.WithContext(ctx)

	var count int64
	err := db.Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	model := domain.FollowModel{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := db.Create(&model).Error; err != nil && !isUniqueViolation(err) {
		return err
	}
	return nil
}

// ListFollowing returns the ids followerID follows.
func (r *GormFollowRepository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", followerID).
		Order("id ASC").
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListFollowers returns the ids following followingID.
func (r *GormFollowRepository) ListFollowers(ctx context.Context, followingID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_id = ?", followingID).
		Order("id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

var _ FollowRepository = (*GormFollowRepository)(nil)
