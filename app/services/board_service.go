package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"vera/app/models"
	"vera/app/repositories"

	"go.uber.org/zap"
)

// BoardService owns the board's posts and applies every change to them. Operations run one at a
// time; subscribers hear about each change after it has been applied, in the order applied.
type BoardService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	events broadcaster
}

// NewBoardService creates a new BoardService
func NewBoardService(posts repositories.PostRepository, comments repositories.CommentRepository, logger *zap.Logger) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{
		posts:    posts,
		comments: comments,
		logger:   logger.Named("board"),
		now:      time.Now,
	}
}

// Subscribe registers fn for change notifications and returns a function that cancels it.
// fn gets one event at a time, in the order the changes were applied, and must not block.
func (s *BoardService) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.events.subscribe(fn)
}

// Subscribers reports how many change listeners are registered.
func (s *BoardService) Subscribers() int {
	return s.events.count()
}

// notify must be called with s.mu held so events queue in the order changes are applied.
// Call s.events.flush once s.mu is released.
func (s *BoardService) notify(kind EventKind, postID int) {
	s.events.enqueue(Event{Kind: kind, PostID: postID, At: s.now()})
}

func postNotFound(id int) error {
	return &models.NotFoundError{Resource: "post", ID: id}
}

// CreatePost adds a post to the front of the board
func (s *BoardService) CreatePost(title, author, postType, content string) (*models.Post, error) {
	post := models.NewPost(title, author, postType, content)
	post.BeforeCreate(s.now())
	if err := post.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	err := s.posts.Create(post)
	if err == nil {
		s.notify(EventPostCreated, post.ID)
	}
	s.mu.Unlock()
	s.events.flush()
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		zap.Int("post_id", post.ID),
		zap.String("author", post.Author),
		zap.String("type", post.Type))
	return post, nil
}

// GetPost retrieves a post by ID with its comments
func (s *BoardService) GetPost(id int) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.posts.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	if err := s.attachComments(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns the whole board, newest post first, each with its comments
func (s *BoardService) ListPosts() ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.posts.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	for _, post := range posts {
		if err := s.attachComments(post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// ListComments returns a post's comments in the order they were added
func (s *BoardService) ListComments(postID int) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePost(postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// DeletePost removes a post with its ratings and comments. Deleting a post that is not on the
// board does nothing.
func (s *BoardService) DeletePost(id int) error {
	removed, comments, err := s.deletePost(id)
	s.events.flush()
	if err != nil {
		return err
	}
	if !removed {
		s.logger.Debug("delete of absent post ignored", zap.Int("post_id", id))
		return nil
	}

	s.logger.Info("post deleted", zap.Int("post_id", id), zap.Int("comments", comments))
	return nil
}

func (s *BoardService) deletePost(id int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Post first. Ids are never reused, so comments a failed cleanup leaves behind stay unreachable.
	err := s.posts.Delete(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	s.notify(EventPostDeleted, id)

	comments, err := s.comments.DeleteByPost(id)
	if err != nil {
		s.logger.Error("failed to delete comments of deleted post",
			zap.Int("post_id", id),
			zap.Error(err))
	}
	return true, comments, nil
}

// AddRating appends a 1-5 star rating to a post and returns the updated post
func (s *BoardService) AddRating(postID, value int) (*models.Post, error) {
	if err := models.ValidateRating(value); err != nil {
		return nil, err
	}

	post, err := s.addRating(postID, value)
	s.events.flush()
	if err != nil {
		return nil, err
	}

	s.logger.Info("rating added",
		zap.Int("post_id", postID),
		zap.Int("rating", value),
		zap.Float64("average", post.AverageRating()))
	return post, nil
}

func (s *BoardService) addRating(postID, value int) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.posts.AppendRating(postID, value)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, postNotFound(postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rate post %d: %w", postID, err)
	}
	s.notify(EventRatingAdded, postID)

	if err := s.attachComments(post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment appends a comment to a post
func (s *BoardService) AddComment(postID int, author, text string) (*models.Comment, error) {
	comment := models.NewComment(postID, author, text)
	comment.BeforeCreate(s.now())
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	err := s.addComment(comment)
	s.events.flush()
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.Int("post_id", postID),
		zap.Int("comment_id", comment.ID),
		zap.String("author", comment.Author))
	return comment, nil
}

func (s *BoardService) addComment(comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePost(comment.PostID); err != nil {
		return err
	}
	if err := s.comments.Create(comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	s.notify(EventCommentAdded, comment.PostID)
	return nil
}

// requirePost must be called with s.mu held.
func (s *BoardService) requirePost(id int) error {
	_, err := s.posts.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return postNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return nil
}

// attachComments must be called with s.mu held.
func (s *BoardService) attachComments(post *models.Post) error {
	comments, err := s.comments.ListByPost(post.ID)
	if err != nil {
		return fmt.Errorf("failed to get comments for post %d: %w", post.ID, err)
	}
	post.Comments = comments
	return nil
}
