package controllers

import (
	"net/http"
	"testing"

	"vera/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentControllerAPI(t *testing.T) {
	tb := setupTestBoard(t)
	_, err := tb.board.CreatePost("Discussed", "Ada", "Essay", "Body")
	require.NoError(t, err)

	t.Run("empty list", func(t *testing.T) {
		w := tb.do(http.MethodGet, "/api/posts/1/comments", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("create comment", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/1/comments", `{"author": " Bob ", "text": "First!"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var got models.Comment
		decodeBody(t, w, &got)
		assert.Equal(t, 1, got.PostID)
		assert.Equal(t, "Bob", got.Author)
		assert.Equal(t, "First!", got.Text)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("list in order added", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/1/comments", `{"author": "Cy", "text": "Second"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = tb.do(http.MethodGet, "/api/posts/1/comments", "")
		var got []models.Comment
		decodeBody(t, w, &got)
		require.Len(t, got, 2)
		assert.Equal(t, "First!", got[0].Text)
		assert.Equal(t, "Second", got[1].Text)
	})

	t.Run("blank text", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/1/comments", `{"author": "Bob", "text": "  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"text: is required"}`, w.Body.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/1/comments", `{"author":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing post", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/7/comments", `{"author": "Bob", "text": "Hello"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = tb.do(http.MethodGet, "/api/posts/7/comments", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentControllerWeb(t *testing.T) {
	tb := setupTestBoard(t)
	_, err := tb.board.CreatePost("Discussed", "Ada", "Essay", "Body")
	require.NoError(t, err)

	t.Run("empty state", func(t *testing.T) {
		w := tb.do(http.MethodGet, "/posts/1", "")
		assert.Contains(t, w.Body.String(), "No comments yet. Be the first to share your thoughts!")
	})

	t.Run("comment redirects to post", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/posts/1/comments", form(map[string]string{"author": "Bob", "text": "Lovely piece"}))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/posts/1", w.Header().Get("Location"))

		w = tb.do(http.MethodGet, "/posts/1", "")
		assert.Contains(t, w.Body.String(), "Lovely piece")
		assert.NotContains(t, w.Body.String(), "No comments yet")
	})

	t.Run("blank author re-renders with message", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/posts/1/comments", form(map[string]string{"author": "", "text": "Kept text"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter your name and comment")
		assert.Contains(t, w.Body.String(), "Kept text")

		comments, err := tb.board.ListComments(1)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("missing post", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/posts/3/comments", form(map[string]string{"author": "Bob", "text": "Hi"}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
