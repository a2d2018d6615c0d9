package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: ":memory:",
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db,
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	))
	return db
}

func TestPostRepository_LikeUnlike(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	post := &domain.PostModel{Author: "alice", Text: "hi"}
	require.NoError(t, repo.Create(ctx, post))

	count, err := repo.Like(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = repo.Like(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.Unlike(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestPostRepository_UnlikeNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	post := &domain.PostModel{Author: "alice", Text: "hi"}
	require.NoError(t, repo.Create(ctx, post))

	for i := 0; i < 3; i++ {
		count, err := repo.Unlike(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, int64(0), count)
	}
}

func TestPostRepository_LikeMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	_, err := repo.Like(ctx, 9999)
	require.ErrorIs(t, err, ErrPostNotFound)

	_, err = repo.Unlike(ctx, 9999)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostRepository_OrderingWithTieBreak(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	// ids 1..3 in insertion order; ids 1 and 3 share a timestamp.
	ts10 := time.Unix(10, 0).UTC()
	ts5 := time.Unix(5, 0).UTC()
	require.NoError(t, repo.Create(ctx, &domain.PostModel{Author: "a", Text: "p1", CreatedAt: ts10}))
	require.NoError(t, repo.Create(ctx, &domain.PostModel{Author: "a", Text: "p2", CreatedAt: ts5}))
	require.NoError(t, repo.Create(ctx, &domain.PostModel{Author: "a", Text: "p3", CreatedAt: ts10}))

	posts, err := repo.Latest(ctx, 30)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, uint(3), posts[0].ID)
	require.Equal(t, uint(1), posts[1].ID)
	require.Equal(t, uint(2), posts[2].ID)
}

func TestPostRepository_ByAuthorsFiltersAndLimits(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	for i, author := range []string{"a", "b", "c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, &domain.PostModel{
			Author:    author,
			Text:      "post",
			CreatedAt: time.Unix(int64(i), 0).UTC(),
		}))
	}

	posts, err := repo.ByAuthors(ctx, []string{"a", "b"}, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for _, p := range posts {
		require.Contains(t, []string{"a", "b"}, p.Author)
	}
	// Newest first across both authors.
	require.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt) || posts[0].ID > posts[1].ID)
}

func TestPostRepository_ByAuthorsEmptySet(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	posts, err := repo.ByAuthors(context.Background(), nil, 30)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestFollowRepository_IdempotentEdgeWrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Follow(ctx, "alice", "bob"))
	require.NoError(t, repo.Follow(ctx, "alice", "bob"))

	following, err := repo.Following(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, following)

	require.NoError(t, repo.Unfollow(ctx, "alice", "bob"))
	require.NoError(t, repo.Unfollow(ctx, "alice", "bob"))

	ok, err := repo.IsFollowing(ctx, "alice", "bob")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFollowRepository_FollowingIsDirected(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Follow(ctx, "alice", "bob"))

	ok, err := repo.IsFollowing(ctx, "bob", "alice")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCommentRepository_RequiresExistingPost(t *testing.T) {
	db := newTestDB(t)
	posts := NewGormPostRepository(db)
	comments := NewGormCommentRepository(db)
	ctx := context.Background()

	err := comments.Create(ctx, &domain.CommentModel{PostID: 42, Author: "alice", Text: "hi"})
	require.ErrorIs(t, err, ErrPostNotFound)

	post := &domain.PostModel{Author: "bob", Text: "hello"}
	require.NoError(t, posts.Create(ctx, post))

	comment := &domain.CommentModel{PostID: post.ID, Author: "alice", Text: "hi"}
	require.NoError(t, comments.Create(ctx, comment))
	require.NotZero(t, comment.ID)
}
