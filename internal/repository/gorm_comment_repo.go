package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.CommentModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.PostModel{}).
			Where("id = ?", comment.PostID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPostNotFound
		}
		return tx.Create(comment).Error
	})
}

var _ CommentRepository = (*GormCommentRepository)(nil)
