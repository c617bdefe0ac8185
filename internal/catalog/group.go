package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vmunix/mediatheque/pkg/title"
)

// groupAcc accumulates children for one group while the item list streams by.
// Output records are only built in finalize, so nothing handed back to the
// caller is ever mutated afterwards.
type groupAcc struct {
	idPrefix  string // series, sequel or saga
	baseTitle string
	baseLower string
	children  []MediaItem
}

// Group builds the nested presentation structure for a category: groups with
// ordered children plus ungrouped leftovers, sorted for display. Categories
// other than films and series pass through ungrouped.
func Group(items []MediaItem, category Category) []Item {
	switch category {
	case CategorySeries:
		return groupSeries(items)
	case CategoryFilms:
		return groupFilms(items)
	default:
		out := make([]Item, 0, len(items))
		for _, it := range items {
			out = append(out, Item{MediaItem: it})
		}
		sortItems(out)
		return out
	}
}

func groupSeries(items []MediaItem) []Item {
	accs := make(map[string]*groupAcc)
	var order []string
	var ungrouped []MediaItem

	for _, it := range items {
		info := title.ExtractEpisode(it.OriginalFileName)
		if info == nil {
			ungrouped = append(ungrouped, it)
			continue
		}
		acc := findOrCreate(accs, &order, strings.ToLower(info.Series), "series", info.Series)
		child := it
		child.Season = info.Season
		child.Episode = info.Episode
		hint := fmt.Sprintf("%02d%02d", info.Season, info.Episode)
		child.ID = GenerateID(it.OriginalFileName, "episode", hint)
		acc.children = append(acc.children, child)
	}

	for _, key := range order {
		children := accs[key].children
		sort.SliceStable(children, func(i, j int) bool {
			if children[i].Season != children[j].Season {
				return children[i].Season < children[j].Season
			}
			return children[i].Episode < children[j].Episode
		})
	}
	return finalize(accs, order, ungrouped)
}

func groupFilms(items []MediaItem) []Item {
	clusters := detectSagaClusters(items)

	// Saga membership and 1-based order within each cluster, keyed by path
	// (unique per discovered file).
	type sagaSlot struct {
		cluster  *sagaCluster
		position int
	}
	membership := make(map[string]sagaSlot, len(items))
	for i := range clusters {
		for pos, it := range clusters[i].items {
			membership[it.Path] = sagaSlot{cluster: &clusters[i], position: pos + 1}
		}
	}

	accs := make(map[string]*groupAcc)
	var order []string
	var ungrouped []MediaItem

	for _, it := range items {
		// Explicit sequel markers win over similarity clustering.
		if sq := title.ExtractSequel(it.OriginalFileName); sq != nil {
			acc := findOrCreate(accs, &order, "sequel:"+strings.ToLower(sq.BaseTitle), "sequel", sq.BaseTitle)
			child := it
			child.Sequel = sq.Number
			child.ID = GenerateID(it.OriginalFileName, "film", strconv.Itoa(sq.Number))
			acc.children = append(acc.children, child)
			continue
		}
		if slot, ok := membership[it.Path]; ok {
			acc := findOrCreate(accs, &order, "saga:"+slot.cluster.baseTitle, "saga", slot.cluster.baseTitle)
			child := it
			child.Sequel = slot.position
			child.ID = GenerateID(it.OriginalFileName, "film", strconv.Itoa(slot.position))
			acc.children = append(acc.children, child)
			continue
		}
		ungrouped = append(ungrouped, it)
	}

	for _, key := range order {
		children := accs[key].children
		sort.SliceStable(children, func(i, j int) bool {
			return sequelNumber(children[i]) < sequelNumber(children[j])
		})
	}
	return finalize(accs, order, ungrouped)
}

// sequelNumber treats a missing sequel number as 1.
func sequelNumber(m MediaItem) int {
	if m.Sequel == 0 {
		return 1
	}
	return m.Sequel
}

func findOrCreate(accs map[string]*groupAcc, order *[]string, key, idPrefix, baseTitle string) *groupAcc {
	if acc, ok := accs[key]; ok {
		return acc
	}
	acc := &groupAcc{
		idPrefix:  idPrefix,
		baseTitle: baseTitle,
		baseLower: strings.ToLower(baseTitle),
	}
	accs[key] = acc
	*order = append(*order, key)
	return acc
}

// finalize builds the combined top-level list: groups in first-seen order,
// then ungrouped items, sorted for display. Group ids derive from the
// lowercased base title so casing variants in filenames don't shift them.
func finalize(accs map[string]*groupAcc, order []string, ungrouped []MediaItem) []Item {
	caser := cases.Title(language.Und)
	out := make([]Item, 0, len(order)+len(ungrouped))
	for _, key := range order {
		acc := accs[key]
		rep := acc.children[0]
		out = append(out, Item{
			MediaItem: MediaItem{
				ID:               GenerateID(acc.baseLower, acc.idPrefix, ""),
				Title:            caser.String(acc.baseLower),
				OriginalFileName: rep.OriginalFileName,
				Path:             rep.Path,
				Kind:             rep.Kind,
				Genre:            rep.Genre,
				Year:             rep.Year,
				Poster:           rep.Poster,
				Backdrop:         rep.Backdrop,
			},
			IsGroup:      true,
			Episodes:     acc.children,
			EpisodeCount: len(acc.children),
		})
	}
	for _, it := range ungrouped {
		out = append(out, Item{MediaItem: it})
	}
	sortItems(out)
	return out
}
