package models

import (
	"strings"
	"time"
)

// NewComment builds a comment from raw form input. Text fields are trimmed.
func NewComment(postID int, author, text string) *Comment {
	return &Comment{
		PostID: postID,
		Author: strings.TrimSpace(author),
		Text:   strings.TrimSpace(text),
	}
}

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return translateValidation(err)
	}

	if c.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Message: "cannot be zero"}
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}
