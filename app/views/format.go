package views

import (
	"fmt"
	"strconv"
	"time"

	"vera/app/models"
)

const (
	PostDateLayout    = "January 2, 2006"
	CommentDateLayout = "January 2, 2006 at 03:04 PM"
)

// PostTypes are offered as suggestions on the new post form. Any other type is accepted.
var PostTypes = []string{"Poem", "Short Story", "Essay", "Article", "Other"}

// Plural renders a count with its noun, e.g. "1 rating" or "3 ratings".
func Plural(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

// FormatAverage renders an average rating with one decimal place.
func FormatAverage(average float64) string {
	return strconv.FormatFloat(average, 'f', 1, 64)
}

// RatingSummary is the line shown under a post's stars.
func RatingSummary(ratings []int) string {
	if len(ratings) == 0 {
		return "No ratings yet"
	}
	return fmt.Sprintf("%s out of %d (%s)",
		FormatAverage(models.AverageRating(ratings)), models.MaxRating, Plural(len(ratings), "rating"))
}

// Truncate shortens text to max characters followed by "...".
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// StarGlyph draws full and half stars filled; CSS dims the half one.
func StarGlyph(s models.Star) string {
	if s == models.StarEmpty {
		return "☆"
	}
	return "★"
}

func PostDate(t time.Time) string {
	return t.Local().Format(PostDateLayout)
}

func CommentDate(t time.Time) string {
	return t.Local().Format(CommentDateLayout)
}
