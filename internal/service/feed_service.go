package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/repository"
)

type feedService struct {
	posts        repository.PostRepository
	follows      repository.FollowRepository
	defaultLimit int
	maxLimit     int
	sf           singleflight.Group
}

func NewFeedService(posts repository.PostRepository, follows repository.FollowRepository, defaultLimit, maxLimit int) FeedService {
	if defaultLimit <= 0 {
		defaultLimit = 30
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &feedService{
		posts:        posts,
		follows:      follows,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// PersonalizedFeed merges the user's own posts with posts from everyone they
// follow. The author filter is pushed into the store as one ordered, limited
// query, so ordering holds globally across all candidate authors. Concurrent
// identical reads are collapsed through singleflight.
func (s *feedService) PersonalizedFeed(ctx context.Context, user string, limit int) ([]domain.PostModel, error) {
	limit = s.clamp(limit)

	key := fmt.Sprintf("personal:%s:%d", user, limit)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		following, err := s.follows.Following(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to read follow graph: %w", err)
		}

		authors := lo.Uniq(append(following, user))
		return s.posts.ByAuthors(ctx, authors, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.PostModel), nil
}

func (s *feedService) GlobalFeed(ctx context.Context, limit int) ([]domain.PostModel, error) {
	limit = s.clamp(limit)

	key := fmt.Sprintf("global:%d", limit)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.posts.Latest(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.PostModel), nil
}

func (s *feedService) clamp(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
