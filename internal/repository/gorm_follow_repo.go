package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Follow inserts the (follower, following) edge. Re-following is a no-op:
// the unique pair index rejects the duplicate and the error is swallowed.
func (r *GormFollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	model := domain.FollowModel{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unfollow deletes the edge. Deleting a missing edge succeeds without effect.
func (r *GormFollowRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.FollowModel{}).Error
}

func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormFollowRepository) Following(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

var _ FollowRepository = (*GormFollowRepository)(nil)
