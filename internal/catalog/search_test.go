package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByQuery_AccentInsensitive(t *testing.T) {
	items := []Item{
		{MediaItem: MediaItem{Title: "Amélie"}},
		{MediaItem: MediaItem{Title: "The Matrix"}},
	}

	matches := FilterByQuery(items, "amelie")
	require.Len(t, matches, 1)
	assert.Equal(t, "Amélie", matches[0].Title)

	// The other direction too: accented query, plain title.
	matches = FilterByQuery([]Item{{MediaItem: MediaItem{Title: "Amelie"}}}, "amélie")
	require.Len(t, matches, 1)
}

func TestFilterByQuery_PercentEncoded(t *testing.T) {
	items := []Item{{MediaItem: MediaItem{Title: "Amélie"}}}

	matches := FilterByQuery(items, "am%C3%A9lie")
	require.Len(t, matches, 1)
}

func TestFilterByQuery_LocalizedTitle(t *testing.T) {
	items := []Item{
		{MediaItem: MediaItem{Title: "The Godfather", LocalizedTitle: "Le Parrain"}},
	}

	matches := FilterByQuery(items, "parrain")
	require.Len(t, matches, 1)
}

func TestFilterByQuery_FlattensGroups(t *testing.T) {
	items := []Item{
		{
			MediaItem: MediaItem{Title: "Breaking Bad"},
			IsGroup:   true,
			Episodes: []MediaItem{
				{Title: "Breaking Bad", OriginalFileName: "Breaking Bad S01E01"},
				{Title: "Breaking Bad", OriginalFileName: "Breaking Bad S01E02"},
			},
			EpisodeCount: 2,
		},
	}

	matches := FilterByQuery(items, "breaking")
	assert.Len(t, matches, 2)
}

func TestFilterByQuery_Cap(t *testing.T) {
	items := make([]Item, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, Item{MediaItem: MediaItem{Title: fmt.Sprintf("Item %02d", i)}})
	}

	matches := FilterByQuery(items, "item")
	assert.Len(t, matches, 20)
}

func TestFilterByQuery_EmptyAndNoMatch(t *testing.T) {
	items := []Item{{MediaItem: MediaItem{Title: "Amélie"}}}

	assert.Empty(t, FilterByQuery(items, ""))
	assert.Empty(t, FilterByQuery(items, "   "))
	assert.Empty(t, FilterByQuery(items, "zorro"))
}

func TestFilterByQuery_Sorted(t *testing.T) {
	items := []Item{
		{MediaItem: MediaItem{Title: "The Zebra Show"}},
		{MediaItem: MediaItem{Title: "Le Show"}},
		{MediaItem: MediaItem{Title: "Show Time"}},
	}

	matches := FilterByQuery(items, "show")
	require.Len(t, matches, 3)
	// Sorted by display key with articles stripped.
	assert.Equal(t, "Le Show", matches[0].Title)
	assert.Equal(t, "Show Time", matches[1].Title)
	assert.Equal(t, "The Zebra Show", matches[2].Title)
}
