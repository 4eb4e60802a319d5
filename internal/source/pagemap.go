package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// PageMap serves pages from memory, keyed by wiki path. It is the offline
// input of a batch run, stored on disk as a JSON object of path to markup.
type PageMap map[string]string

func LoadPageMap(filename string) (PageMap, error) {
	buff, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var pages PageMap
	err = json.Unmarshal(buff, &pages)
	if err != nil {
		return nil, fmt.Errorf("decode page map %s: %w", filename, err)
	}
	return pages, nil
}

func (m PageMap) FetchPage(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	markup, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("page %s: %w", path, os.ErrNotExist)
	}
	return []byte(markup), nil
}

// Paths returns the page paths in sorted order.
func (m PageMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}
