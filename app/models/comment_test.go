package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Author:    "Alice",
				Text:      "hi",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty author",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Author:    "",
				Text:      "hello",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "whitespace text",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Author:    "Alice",
				Text:      " \n\t ",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				Author:    "Alice",
				Text:      "hi",
				CreatedAt: time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewComment(t *testing.T) {
	comment := NewComment(3, "  Alice ", " hi\n")

	assert.Equal(t, 3, comment.PostID)
	assert.Equal(t, "Alice", comment.Author)
	assert.Equal(t, "hi", comment.Text)
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{
		ID:     1,
		PostID: 1,
		Author: "Alice",
		Text:   "Test Comment",
	}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate(time.Now())
	assert.False(t, comment.CreatedAt.IsZero())
}
