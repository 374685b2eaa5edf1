package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"vera/app/models"
	"vera/app/views"

	"go.uber.org/zap"
)

// PostController handles HTTP requests for posts
type PostController struct {
	board  Board
	views  *views.Renderer
	logger *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(board Board, renderer *views.Renderer, logger *zap.Logger) *PostController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostController{board: board, views: renderer, logger: logger}
}

func (pc *PostController) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	if err := pc.views.Render(w, status, page, data); err != nil {
		pc.logger.Error("template error", zap.String("page", page), zap.Error(err))
		sendError(w, r, "Internal server error", http.StatusInternalServerError)
	}
}

func (pc *PostController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		pc.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	sendServiceError(w, r, err)
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.board.ListPosts()
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, newPostResponses(posts))
		return
	}
	pc.render(w, r, http.StatusOK, views.PageIndex, views.IndexPage{Posts: posts})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.board.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, newPostResponse(post))
		return
	}
	pc.render(w, r, http.StatusOK, views.PageShow, views.ShowPage{
		Post:  post,
		Rated: r.URL.Query().Get("rated") == "1",
	})
}

type postRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
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
		req.Title = r.FormValue("title")
		req.Author = r.FormValue("author")
		req.Type = r.FormValue("type")
		req.Content = r.FormValue("content")
	}

	post, err := pc.board.CreatePost(req.Title, req.Author, req.Type, req.Content)
	if err != nil {
		if !api && errors.Is(err, models.ErrValidation) {
			pc.rerenderIndex(w, r, req)
			return
		}
		pc.fail(w, r, err)
		return
	}

	if api {
		sendJSON(w, http.StatusCreated, newPostResponse(post))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// rerenderIndex shows the board again with the rejected submission filled in.
func (pc *PostController) rerenderIndex(w http.ResponseWriter, r *http.Request, req postRequest) {
	posts, err := pc.board.ListPosts()
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, http.StatusBadRequest, views.PageIndex, views.IndexPage{
		Posts: posts,
		Form:  views.PostForm(req),
		Error: "Please fill in all fields",
	})
}

// ConfirmDelete asks before a post is removed from the board
func (pc *PostController) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.board.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	pc.render(w, r, http.StatusOK, views.PageDelete, views.DeletePage{Post: post})
}

// Delete handles deleting a post. Deleting a post that is already gone succeeds.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.board.DeletePost(id); err != nil {
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func postPath(id int) string {
	return "/posts/" + strconv.Itoa(id)
}
