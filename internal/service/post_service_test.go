package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

type fakeCommentRepo struct {
	comments []domain.CommentModel
}

func (f *fakeCommentRepo) Create(_ context.Context, c *domain.CommentModel) error {
	f.comments = append(f.comments, *c)
	return nil
}

func TestPostService_CreatePostValidation(t *testing.T) {
	svc := NewPostService(&fakePostRepo{}, &fakeCommentRepo{})
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "", "hello")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePost(ctx, "alice", "   ")
	require.ErrorIs(t, err, ErrValidation)
}

func TestPostService_CreatePostTrims(t *testing.T) {
	repo := &fakePostRepo{}
	svc := NewPostService(repo, &fakeCommentRepo{})

	post, err := svc.CreatePost(context.Background(), "  alice ", " hello world ")
	require.NoError(t, err)
	require.Equal(t, "alice", post.Author)
	require.Equal(t, "hello world", post.Text)
	require.Len(t, repo.posts, 1)
}

func TestPostService_AddCommentValidation(t *testing.T) {
	svc := NewPostService(&fakePostRepo{}, &fakeCommentRepo{})

	_, err := svc.AddComment(context.Background(), 1, "alice", "")
	require.ErrorIs(t, err, ErrValidation)
}
