package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countStars(stars [StarSlots]Star) (full, half, empty int) {
	for _, s := range stars {
		switch s {
		case StarFull:
			full++
		case StarHalf:
			half++
		case StarEmpty:
			empty++
		}
	}
	return full, half, empty
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]int{}))
	assert.Equal(t, 4.0, AverageRating([]int{5, 3, 4}))
	assert.Equal(t, 3.5, AverageRating([]int{3, 4}))
	assert.InDelta(t, 3.6667, AverageRating([]int{5, 5, 1}), 0.0001)
}

func TestStarRepresentation(t *testing.T) {
	tests := []struct {
		average                      float64
		wantFull, wantHalf, wantEmpty int
	}{
		{average: 4.0, wantFull: 4, wantHalf: 0, wantEmpty: 1},
		{average: 3.5, wantFull: 3, wantHalf: 1, wantEmpty: 1},
		{average: 0, wantFull: 0, wantHalf: 0, wantEmpty: 5},
		{average: 5, wantFull: 5, wantHalf: 0, wantEmpty: 0},
		{average: 4.49, wantFull: 4, wantHalf: 0, wantEmpty: 1},
		{average: 4.5, wantFull: 4, wantHalf: 1, wantEmpty: 0},
		{average: 0.5, wantFull: 0, wantHalf: 1, wantEmpty: 4},
		{average: -2, wantFull: 0, wantHalf: 0, wantEmpty: 5},
		{average: 9, wantFull: 5, wantHalf: 0, wantEmpty: 0},
		{average: math.NaN(), wantFull: 0, wantHalf: 0, wantEmpty: 5},
	}

	for _, tt := range tests {
		stars := StarRepresentation(tt.average)
		full, half, empty := countStars(stars)
		assert.Equal(t, tt.wantFull, full, "full stars for %v", tt.average)
		assert.Equal(t, tt.wantHalf, half, "half stars for %v", tt.average)
		assert.Equal(t, tt.wantEmpty, empty, "empty stars for %v", tt.average)
	}

	t.Run("slots are ordered full, half, empty", func(t *testing.T) {
		assert.Equal(t, [StarSlots]Star{StarFull, StarFull, StarFull, StarHalf, StarEmpty}, StarRepresentation(3.5))
	})

	t.Run("repeated calls agree", func(t *testing.T) {
		first := StarRepresentation(2.7)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, StarRepresentation(2.7))
		}
		ratings := []int{2, 5}
		avg := AverageRating(ratings)
		assert.Equal(t, avg, AverageRating(ratings))
		assert.Equal(t, []int{2, 5}, ratings)
	})
}

func TestParseRating(t *testing.T) {
	for _, raw := range []string{"1", "3", " 5 "} {
		_, err := ParseRating(raw)
		assert.NoError(t, err, raw)
	}

	for _, raw := range []string{"0", "6", "-1", "3.5", "abc", ""} {
		_, err := ParseRating(raw)
		assert.ErrorIs(t, err, ErrInvalidRating, raw)
	}

	v, err := ParseRating("4")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestStarJSON(t *testing.T) {
	data, err := json.Marshal(StarRepresentation(3.5))
	require.NoError(t, err)
	assert.JSONEq(t, `["full","full","full","half","empty"]`, string(data))

	var stars [StarSlots]Star
	require.NoError(t, json.Unmarshal(data, &stars))
	assert.Equal(t, StarRepresentation(3.5), stars)

	var s Star
	assert.Error(t, s.UnmarshalText([]byte("sparkly")))
}
