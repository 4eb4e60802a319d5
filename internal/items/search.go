package items

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

type SearchOptions struct {
	// Slot limits results to items equipped in the given slot (case-insensitive).
	Slot string
	// Effect limits results to items with an effect of this type at any level.
	Effect string
	// Limit caps the number of results, 0 means no cap.
	Limit int
}

type SearchResult struct {
	Item       Item
	Similarity float64
}

// Search returns the items whose name contains query (case-insensitive),
// most similar names first. An empty query matches every item.
func Search(list []Item, query string, opts SearchOptions) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	var results []SearchResult
	for _, item := range list {
		if opts.Slot != "" && !strings.EqualFold(Deref(item.Slot), opts.Slot) {
			continue
		}
		if opts.Effect != "" && !item.HasEffect(opts.Effect) {
			continue
		}
		name := strings.ToLower(item.Name)
		if !strings.Contains(name, query) {
			continue
		}
		similarity := 1.0
		if query != "" {
			similarity = matchr.JaroWinkler(query, name, false)
		}
		results = append(results, SearchResult{Item: item, Similarity: similarity})
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return strings.Compare(a.Item.Name, b.Item.Name)
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}
