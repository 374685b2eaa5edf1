package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidRating = errors.New("invalid rating")
	ErrNotFound      = errors.New("record not found")
)

// ValidationError reports a missing or malformed text field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidRatingError reports a rating outside [MinRating, MaxRating] or one that is not an integer.
type InvalidRatingError struct {
	Value string
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("rating must be a whole number between %d and %d, got %q", MinRating, MaxRating, e.Value)
}

func (e *InvalidRatingError) Is(target error) bool { return target == ErrInvalidRating }

// NotFoundError reports an operation on a post that is no longer on the board.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
