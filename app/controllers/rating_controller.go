package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vera/app/models"
	"vera/app/views"

	"go.uber.org/zap"
)

// RatingController handles star ratings on posts
type RatingController struct {
	board  Board
	views  *views.Renderer
	logger *zap.Logger
}

// NewRatingController creates a new RatingController
func NewRatingController(board Board, renderer *views.Renderer, logger *zap.Logger) *RatingController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingController{board: board, views: renderer, logger: logger}
}

type ratingRequest struct {
	Value json.Number `json:"value"`
}

// Create adds a rating. Forms send the "rating" field, API clients {"value": n}.
func (rc *RatingController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var raw string
	api := isAPIRequest(r)
	if api {
		var req ratingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		raw = req.Value.String()
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		raw = r.FormValue("rating")
	}

	post, err := rc.rate(id, raw)
	if err != nil {
		if !api && errors.Is(err, models.ErrInvalidRating) {
			rc.rerenderShow(w, r, id, err)
			return
		}
		if statusFor(err) == http.StatusInternalServerError {
			rc.logger.Error("rating failed", zap.Int("post_id", id), zap.Error(err))
		}
		sendServiceError(w, r, err)
		return
	}

	if api {
		sendJSON(w, http.StatusCreated, newPostResponse(post))
		return
	}
	http.Redirect(w, r, postPath(id)+"?rated=1", http.StatusSeeOther)
}

func (rc *RatingController) rate(id int, raw string) (*models.Post, error) {
	value, err := models.ParseRating(raw)
	if err != nil {
		return nil, err
	}
	return rc.board.AddRating(id, value)
}

func (rc *RatingController) rerenderShow(w http.ResponseWriter, r *http.Request, id int, cause error) {
	post, err := rc.board.GetPost(id)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	if err := rc.views.Render(w, http.StatusBadRequest, views.PageShow, views.ShowPage{Post: post, RatingError: cause.Error()}); err != nil {
		rc.logger.Error("template error", zap.String("page", views.PageShow), zap.Error(err))
		sendError(w, r, "Internal server error", http.StatusInternalServerError)
	}
}
