package services

import (
	"testing"

	"vera/app/models"
	"vera/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestBoardOnBadger(t *testing.T) {
	logger := zaptest.NewLogger(t)
	db, err := repositories.Open(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	board := NewBoardService(
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
		logger,
	)

	first, err := board.CreatePost("First", "Mara", "Poem", "one")
	require.NoError(t, err)
	second, err := board.CreatePost("Second", "Jon", "Story", "two")
	require.NoError(t, err)

	for _, v := range []int{5, 3, 4} {
		_, err := board.AddRating(first.ID, v)
		require.NoError(t, err)
	}
	_, err = board.AddComment(first.ID, "Alice", "hi")
	require.NoError(t, err)
	_, err = board.AddComment(second.ID, "Bob", "hello")
	require.NoError(t, err)

	posts, err := board.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Equal(t, 4.0, posts[1].AverageRating())
	require.Len(t, posts[1].Comments, 1)
	assert.Equal(t, "Alice", posts[1].Comments[0].Author)

	require.NoError(t, board.DeletePost(first.ID))
	_, err = board.AddComment(first.ID, "Alice", "again")
	assert.ErrorIs(t, err, models.ErrNotFound)

	posts, err = board.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Len(t, posts[0].Comments, 1)
}
