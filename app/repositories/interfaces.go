package repositories

import "vera/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// List returns every post, newest first.
	List() ([]*models.Post, error)
	AppendRating(id, value int) (*models.Post, error)
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	// ListByPost returns a post's comments in the order they were added.
	ListByPost(postID int) ([]*models.Comment, error)
	DeleteByPost(postID int) (int, error)
}
