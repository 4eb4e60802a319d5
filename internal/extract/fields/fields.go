// Package fields converts the raw value of one labeled infobox row into a
// typed result.
//
// Every parser degrades to "no value" on malformed input: wiki markup is
// crowd edited and one bad row must never stop the rest of an item from
// being extracted.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"buildcrafter/internal/items"
	"buildcrafter/lib/htmlutil"
	"buildcrafter/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	leadingIntRegex = regexp.MustCompile(`^(\d+)`)
	anyIntRegex     = regexp.MustCompile(`\d+`)
	rangeRegex      = regexp.MustCompile(`^(\d+)\s*(?:-|–|—|−)\s*(\d+)`)
	singleIntRegex  = regexp.MustCompile(`^(\d+)$`)
	rateRegex       = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
)

// Level reads the integer at the start of text, ignoring whatever follows
// (footnote markers, "(max)" and so on). Levels start at 1, so 0 is no level.
func Level(text string) (int, bool) {
	level, ok := LeadingInt(text)
	if !ok || level <= 0 {
		return 0, false
	}
	return level, true
}

// LeadingInt reads the integer at the start of the normalized text.
func LeadingInt(text string) (int, bool) {
	groups := leadingIntRegex.FindStringSubmatch(textutil.Normalize(text))
	if groups == nil {
		return 0, false
	}
	n, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FirstInt reads the first integer appearing anywhere in text.
func FirstInt(text string) (int, bool) {
	match := anyIntRegex.FindString(textutil.Normalize(text))
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Range reads "min-max" (hyphen, en dash, em dash or minus sign) or a bare
// integer, which yields a range with min == max.
func Range(text string) (items.Range, bool) {
	text = textutil.Normalize(text)

	groups := rangeRegex.FindStringSubmatch(text)
	if groups != nil {
		min, errMin := strconv.Atoi(groups[1])
		max, errMax := strconv.Atoi(groups[2])
		if errMin == nil && errMax == nil {
			return items.Range{Min: min, Max: max}, true
		}
	}

	groups = singleIntRegex.FindStringSubmatch(text)
	if groups != nil {
		n, err := strconv.Atoi(groups[1])
		if err == nil {
			return items.Range{Min: n, Max: n}, true
		}
	}

	return items.Range{}, false
}

// Rate reads the first decimal or integer token in text.
func Rate(text string) (float64, bool) {
	match := rateRegex.FindString(textutil.Normalize(text))
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// directThenFull tries parse on the direct text of value first and on its
// full text second, so nested footnotes and tooltips only get a say when the
// value has nothing of its own.
func directThenFull[T any](value *goquery.Selection, parse func(string) (T, bool)) (T, bool) {
	direct := htmlutil.DirectText(value)
	if direct != "" {
		result, ok := parse(direct)
		if ok {
			return result, true
		}
	}
	return parse(value.Text())
}

func LevelOf(value *goquery.Selection) (int, bool) {
	return directThenFull(value, Level)
}

func RangeOf(value *goquery.Selection) (items.Range, bool) {
	return directThenFull(value, Range)
}

func RateOf(value *goquery.Selection) (float64, bool) {
	return directThenFull(value, Rate)
}

// Categories lists the category tags of a value. Link texts win over list
// items, which win over a plain comma separated list; only one of those is
// ever used.
func Categories(value *goquery.Selection) []string {
	collect := func(sel *goquery.Selection) []string {
		out := []string{}
		sel.Each(func(_ int, s *goquery.Selection) {
			text := textutil.Normalize(s.Text())
			if text != "" {
				out = append(out, text)
			}
		})
		return out
	}

	links := value.Find("a")
	if links.Length() > 0 {
		return collect(links)
	}
	listItems := value.Find("li")
	if listItems.Length() > 0 {
		return collect(listItems)
	}

	out := []string{}
	for _, part := range strings.Split(textutil.Normalize(value.Text()), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
