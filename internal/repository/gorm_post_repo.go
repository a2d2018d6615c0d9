package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(ctx context.Context, post *domain.PostModel) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Like increments like_count in a single statement and reads back the new
// count. Zero rows affected means the post does not exist.
func (r *GormPostRepository) Like(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.PostModel{}).
			Where("id = ?", id).
			UpdateColumn("like_count", gorm.Expr("like_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}

		var counts []int64
		if err := tx.Model(&domain.PostModel{}).
			Where("id = ?", id).
			Pluck("like_count", &counts).Error; err != nil {
			return err
		}
		count = counts[0]
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Unlike decrements like_count but never below zero. Unliking a post whose
// counter is already zero is a no-op that still reports the current count.
func (r *GormPostRepository) Unlike(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.PostModel{}).
			Where("id = ? AND like_count > 0", id).
			UpdateColumn("like_count", gorm.Expr("like_count - 1"))
		if result.Error != nil {
			return result.Error
		}

		var counts []int64
		if err := tx.Model(&domain.PostModel{}).
			Where("id = ?", id).
			Pluck("like_count", &counts).Error; err != nil {
			return err
		}
		if len(counts) == 0 {
			return ErrPostNotFound
		}
		count = counts[0]
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPostRepository) ByAuthors(ctx context.Context, authors []string, limit int) ([]domain.PostModel, error) {
	if len(authors) == 0 {
		return nil, nil
	}

	var posts []domain.PostModel
	err := r.db.WithContext(ctx).
		Where("author IN ?", authors).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormPostRepository) Latest(ctx context.Context, limit int) ([]domain.PostModel, error) {
	var posts []domain.PostModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

var _ PostRepository = (*GormPostRepository)(nil)
