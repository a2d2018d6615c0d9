package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/repository"
)

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository) PostService {
	return &postService{posts: posts, comments: comments}
}

func (s *postService) CreatePost(ctx context.Context, author, text string) (*domain.PostModel, error) {
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if author == "" || text == "" {
		return nil, fmt.Errorf("%w: author and text are required", ErrValidation)
	}

	post := &domain.PostModel{
		Author: author,
		Text:   text,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Like(ctx context.Context, id uint) (int64, error) {
	return s.posts.Like(ctx, id)
}

func (s *postService) Unlike(ctx context.Context, id uint) (int64, error) {
	return s.posts.Unlike(ctx, id)
}

func (s *postService) AddComment(ctx context.Context, postID uint, author, text string) (*domain.CommentModel, error) {
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if author == "" || text == "" {
		return nil, fmt.Errorf("%w: author and text are required", ErrValidation)
	}

	comment := &domain.CommentModel{
		PostID: postID,
		Author: author,
		Text:   text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
