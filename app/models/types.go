package models

import "time"

// Post represents a piece of writing on the board with its ratings and comments.
type Post struct {
	ID        int        `json:"id"`
	Title     string     `json:"title" validate:"notblank"`
	Author    string     `json:"author" validate:"notblank"`
	Type      string     `json:"type" validate:"notblank"`
	Content   string     `json:"content" validate:"notblank"`
	CreatedAt time.Time  `json:"createdAt"`
	Ratings   []int      `json:"ratings" validate:"dive,min=1,max=5"`
	Comments  []*Comment `json:"comments" validate:"-"`
}

// Comment represents a comment on a post.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"postId"`
	Author    string    `json:"author" validate:"notblank"`
	Text      string    `json:"text" validate:"notblank"`
	CreatedAt time.Time `json:"createdAt"`
}
