package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vera/app/models"
	"vera/app/services"

	"github.com/gorilla/mux"
)

// Board is the part of the board service the HTTP layer drives.
type Board interface {
	CreatePost(title, author, postType, content string) (*models.Post, error)
	GetPost(id int) (*models.Post, error)
	ListPosts() ([]*models.Post, error)
	ListComments(postID int) ([]*models.Comment, error)
	DeletePost(id int) error
	AddRating(postID, value int) (*models.Post, error)
	AddComment(postID int, author, text string) (*models.Comment, error)
	Subscribe(fn func(services.Event)) (unsubscribe func())
}

// postResponse is the JSON shape of a post: the stored fields plus the derived rating display.
type postResponse struct {
	*models.Post
	AverageRating float64                       `json:"averageRating"`
	Stars         [models.StarSlots]models.Star `json:"stars"`
	RatingCount   int                           `json:"ratingCount"`
	CommentCount  int                           `json:"commentCount"`
}

func newPostResponse(post *models.Post) postResponse {
	return postResponse{
		Post:          post,
		AverageRating: post.AverageRating(),
		Stars:         post.Stars(),
		RatingCount:   len(post.Ratings),
		CommentCount:  len(post.Comments),
	}
}

func newPostResponses(posts []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

// isAPIRequest reports whether the client expects JSON rather than a page.
func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api/")
}

// postID reads the {id} route variable.
func postID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// statusFor maps the board's error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPIRequest(r) {
		sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// sendServiceError reports a board error. Internal failures are not echoed to the client.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		sendError(w, r, "Internal server error", status)
		return
	}
	sendError(w, r, err.Error(), status)
}
