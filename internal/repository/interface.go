package repository

import (
	"context"
	"errors"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

// ErrPostNotFound signals that the referenced post does not exist. Distinct
// from an empty query result.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.PostModel) error
	// Like atomically increments the like counter and returns the new count.
	Like(ctx context.Context, id uint) (int64, error)
	// Unlike atomically decrements the like counter, floored at zero, and
	// returns the new count.
	Unlike(ctx context.Context, id uint) (int64, error)
	// ByAuthors returns the newest posts by any of the given authors,
	// ordered created_at descending with id descending as tie-break.
	ByAuthors(ctx context.Context, authors []string, limit int) ([]domain.PostModel, error)
	// Latest returns the newest posts across all authors, same ordering.
	Latest(ctx context.Context, limit int) ([]domain.PostModel, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	// Create inserts a comment. Returns ErrPostNotFound when the referenced
	// post does not exist.
	Create(ctx context.Context, comment *domain.CommentModel) error
}

// FollowRepository defines persistence operations for the follow graph.
// Edge writes are idempotent: re-following and deleting a missing edge both
// succeed without effect.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// Following returns the IDs of every user followerID follows.
	Following(ctx context.Context, followerID string) ([]string, error)
}
