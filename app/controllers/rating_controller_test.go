package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingControllerAPI(t *testing.T) {
	tb := setupTestBoard(t)
	_, err := tb.board.CreatePost("Rated", "Ada", "Poem", "Body")
	require.NoError(t, err)

	t.Run("add rating", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/1/ratings", `{"value": 5}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = tb.do(http.MethodPost, "/api/posts/1/ratings", `{"value": 4}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var got apiPost
		decodeBody(t, w, &got)
		assert.Equal(t, []int{5, 4}, got.Ratings)
		assert.Equal(t, 4.5, got.AverageRating)
		assert.Equal(t, 2, got.RatingCount)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "zero", body: `{"value": 0}`, status: http.StatusBadRequest},
		{name: "six", body: `{"value": 6}`, status: http.StatusBadRequest},
		{name: "fraction", body: `{"value": 4.5}`, status: http.StatusBadRequest},
		{name: "missing", body: `{}`, status: http.StatusBadRequest},
		{name: "not a number", body: `{"value": "five"}`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("reject "+tt.name, func(t *testing.T) {
			w := tb.do(http.MethodPost, "/api/posts/1/ratings", tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("rejected ratings are not stored", func(t *testing.T) {
		post, err := tb.board.GetPost(1)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 4}, post.Ratings)
	})

	t.Run("missing post", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/api/posts/9/ratings", `{"value": 3}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"post 9 not found"}`, w.Body.String())
	})
}

func TestRatingControllerWeb(t *testing.T) {
	tb := setupTestBoard(t)
	_, err := tb.board.CreatePost("Rated", "Ada", "Poem", "Body")
	require.NoError(t, err)

	t.Run("rating redirects with thanks flag", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/posts/1/ratings", form(map[string]string{"rating": "3"}))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/posts/1?rated=1", w.Header().Get("Location"))

		w = tb.do(http.MethodGet, "/posts/1?rated=1", "")
		assert.Contains(t, w.Body.String(), "3.0 out of 5 (1 rating)")
		assert.Contains(t, w.Body.String(), "Thank you for rating!")
	})

	t.Run("invalid rating re-renders post", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/posts/1/ratings", form(map[string]string{"rating": "9"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "3.0 out of 5 (1 rating)")
		msg := strings.Index(body, "rating must be a whole number between 1 and 5")
		require.NotEqual(t, -1, msg)
		assert.Less(t, msg, strings.Index(body, `class="comments-section"`), "shown with the rating form")
	})

	t.Run("missing post", func(t *testing.T) {
		w := tb.do(http.MethodPost, "/posts/5/ratings", form(map[string]string{"rating": "4"}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
