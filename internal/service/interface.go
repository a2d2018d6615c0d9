package service

import (
	"context"
	"errors"

	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/hub"
)

var (
	// ErrValidation marks a rejected request with a missing or blank field.
	ErrValidation = errors.New("validation failed")
	// ErrSelfFollow rejects a follow edge from a user to themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// ChatService drives the per-connection relay state machine.
type ChatService interface {
	// HandleJoin attaches the client to a channel; the client receives the
	// channel's retained history as a one-time replay. Blank channel names
	// are dropped silently; a blank user falls back to a default name.
	HandleJoin(ctx context.Context, c *hub.Client, channel, user string)
	// HandleSend relays a message to the channel, excluding the sender.
	// Blank channel or text is dropped silently without disconnecting.
	HandleSend(ctx context.Context, c *hub.Client, channel, user, text string)
	// HandleTyping fans out an ephemeral typing signal, sender included.
	HandleTyping(ctx context.Context, c *hub.Client, channel, user string, typing bool)
}

// FeedService assembles ordered, size-capped post feeds.
type FeedService interface {
	// PersonalizedFeed returns the user's own posts merged with posts from
	// everyone they follow, newest first.
	PersonalizedFeed(ctx context.Context, user string, limit int) ([]domain.PostModel, error)
	// GlobalFeed returns the newest posts across all authors.
	GlobalFeed(ctx context.Context, limit int) ([]domain.PostModel, error)
}

// PostService covers content mutations: posts, likes, comments.
type PostService interface {
	CreatePost(ctx context.Context, author, text string) (*domain.PostModel, error)
	Like(ctx context.Context, id uint) (int64, error)
	Unlike(ctx context.Context, id uint) (int64, error)
	AddComment(ctx context.Context, postID uint, author, text string) (*domain.CommentModel, error)
}

// SocialService manages the follow graph.
type SocialService interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
}
