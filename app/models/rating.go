package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5

	// StarSlots is the number of stars shown for an average rating.
	StarSlots = 5
)

// ValidateRating checks that value is a whole star count in [MinRating, MaxRating].
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return &InvalidRatingError{Value: strconv.Itoa(value)}
	}
	return nil
}

// ParseRating reads a rating from form or query text.
func ParseRating(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InvalidRatingError{Value: raw}
	}
	if err := ValidateRating(value); err != nil {
		return 0, err
	}
	return value, nil
}

// AverageRating returns the arithmetic mean of ratings, or 0 for none. It is not rounded.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// Star is the fill state of one display slot.
type Star int

const (
	StarEmpty Star = iota
	StarHalf
	StarFull
)

func (s Star) String() string {
	switch s {
	case StarFull:
		return "full"
	case StarHalf:
		return "half"
	case StarEmpty:
		return "empty"
	default:
		return fmt.Sprintf("Star(%d)", int(s))
	}
}

func (s Star) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Star) UnmarshalText(text []byte) error {
	switch string(text) {
	case "full":
		*s = StarFull
	case "half":
		*s = StarHalf
	case "empty":
		*s = StarEmpty
	default:
		return fmt.Errorf("unknown star %q", text)
	}
	return nil
}

// StarRepresentation maps an average rating onto StarSlots slots: the first floor(average) are
// full, the next is half when the fractional part is at least 0.5, and the rest are empty.
// Averages outside [0, MaxRating] are clamped.
func StarRepresentation(average float64) [StarSlots]Star {
	var stars [StarSlots]Star

	if math.IsNaN(average) || average < 0 {
		average = 0
	}
	if average > MaxRating {
		average = MaxRating
	}

	whole := math.Floor(average)
	full := int(whole)
	half := average-whole >= 0.5

	for i := range stars {
		switch {
		case i < full:
			stars[i] = StarFull
		case i == full && half:
			stars[i] = StarHalf
		default:
			stars[i] = StarEmpty
		}
	}
	return stars
}
