package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vera/app/models"
	"vera/app/views"

	"go.uber.org/zap"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	board  Board
	views  *views.Renderer
	logger *zap.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(board Board, renderer *views.Renderer, logger *zap.Logger) *CommentController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentController{board: board, views: renderer, logger: logger}
}

// Index handles listing all comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.board.ListComments(id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req commentRequest
	api := isAPIRequest(r)
	if api {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Author = r.FormValue("author")
		req.Text = r.FormValue("text")
	}

	comment, err := cc.board.AddComment(id, req.Author, req.Text)
	if err != nil {
		if !api && errors.Is(err, models.ErrValidation) {
			cc.rerenderShow(w, r, id, req)
			return
		}
		cc.fail(w, r, err)
		return
	}

	if api {
		sendJSON(w, http.StatusCreated, comment)
		return
	}
	http.Redirect(w, r, postPath(id), http.StatusSeeOther)
}

func (cc *CommentController) rerenderShow(w http.ResponseWriter, r *http.Request, id int, req commentRequest) {
	post, err := cc.board.GetPost(id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}
	page := views.ShowPage{
		Post:         post,
		Form:         views.CommentForm(req),
		CommentError: "Please enter your name and comment",
	}
	if err := cc.views.Render(w, http.StatusBadRequest, views.PageShow, page); err != nil {
		cc.logger.Error("template error", zap.String("page", views.PageShow), zap.Error(err))
		sendError(w, r, "Internal server error", http.StatusInternalServerError)
	}
}

func (cc *CommentController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		cc.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	sendServiceError(w, r, err)
}
