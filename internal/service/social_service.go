package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kazeyhaya/orkcord/internal/repository"
	"github.com/Kazeyhaya/orkcord/pkg/log"
)

type socialService struct {
	follows repository.FollowRepository
}

func NewSocialService(follows repository.FollowRepository) SocialService {
	return &socialService{follows: follows}
}

func (s *socialService) Follow(ctx context.Context, followerID, followingID string) error {
	followerID = strings.TrimSpace(followerID)
	followingID = strings.TrimSpace(followingID)
	if followerID == "" || followingID == "" {
		return fmt.Errorf("%w: follower and following are required", ErrValidation)
	}
	if followerID == followingID {
		return ErrSelfFollow
	}

	if err := s.follows.Follow(ctx, followerID, followingID); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).
			Str("follower_id", followerID).
			Str("following_id", followingID).
			Msg("failed to follow user")
		return err
	}
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followingID string) error {
	followerID = strings.TrimSpace(followerID)
	followingID = strings.TrimSpace(followingID)
	if followerID == "" || followingID == "" {
		return fmt.Errorf("%w: follower and following are required", ErrValidation)
	}

	if err := s.follows.Unfollow(ctx, followerID, followingID); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).
			Str("follower_id", followerID).
			Str("following_id", followingID).
			Msg("failed to unfollow user")
		return err
	}
	return nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followingID)
}
