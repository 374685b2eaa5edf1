package models

import (
	"errors"
	"strings"
	"time"
)

// NewPost builds a post from raw form input. Text fields are trimmed.
func NewPost(title, author, postType, content string) *Post {
	return &Post{
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		Type:     strings.TrimSpace(postType),
		Content:  strings.TrimSpace(content),
		Ratings:  []int{},
		Comments: []*Comment{},
	}
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return translateValidation(err)
	}

	if p.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Message: "cannot be zero"}
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.Ratings == nil {
		p.Ratings = []int{}
	}
	if p.Comments == nil {
		p.Comments = []*Comment{}
	}
}

// AddRating appends a rating after checking its range.
func (p *Post) AddRating(value int) error {
	if err := ValidateRating(value); err != nil {
		return err
	}
	p.Ratings = append(p.Ratings, value)
	return nil
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}

// AverageRating returns the mean of the post's ratings, or 0 when it has none.
func (p *Post) AverageRating() float64 {
	return AverageRating(p.Ratings)
}

// Stars maps the post's average rating onto five display slots.
func (p *Post) Stars() [StarSlots]Star {
	return StarRepresentation(p.AverageRating())
}
