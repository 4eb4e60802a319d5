package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"buildcrafter/internal/items"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary counts what a run did.
type Summary struct {
	PagesProcessed int `json:"pages_processed"`
	PagesFailed    int `json:"pages_failed"`
	PagesSkipped   int `json:"pages_skipped"`
	ItemsExtracted int `json:"items_extracted"`
	WithLevels     int `json:"with_levels"`
	WithoutLevels  int `json:"without_levels"`
}

func (s *Summary) add(item items.Item) {
	s.ItemsExtracted++
	if item.HasLevels() {
		s.WithLevels++
	} else {
		s.WithoutLevels++
	}
}

func (s Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Extraction summary")
	t.AppendHeader(table.Row{"Counter", "Value"})
	t.AppendRows([]table.Row{
		{"Pages processed", s.PagesProcessed},
		{"Pages failed", s.PagesFailed},
		{"Pages skipped", s.PagesSkipped},
		{"Items extracted", s.ItemsExtracted},
		{"Items with levels", s.WithLevels},
		{"Items without levels", s.WithoutLevels},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// WriteJSON writes list as an indented JSON array. Markup characters in
// effect texts are kept as is.
func WriteJSON(w io.Writer, list []items.Item) error {
	if list == nil {
		list = []items.Item{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(list)
	if err != nil {
		return &SerializeError{Err: err}
	}
	return nil
}

// WriteJSONFile writes list to filename, see WriteJSON.
func WriteJSONFile(filename string, list []items.Item) error {
	f, err := os.Create(filename)
	if err != nil {
		return &SerializeError{Err: fmt.Errorf("create %s: %w", filename, err)}
	}
	err = WriteJSON(f, list)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return &SerializeError{Err: closeErr}
	}
	return nil
}

// ReadJSONFile reads the items written by WriteJSONFile.
func ReadJSONFile(filename string) ([]items.Item, error) {
	buff, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var list []items.Item
	err = json.Unmarshal(buff, &list)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return list, nil
}
