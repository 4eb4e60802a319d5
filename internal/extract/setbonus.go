package extract

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"buildcrafter/internal/items"
	"buildcrafter/lib/htmlutil"
	"buildcrafter/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	setMarkerRegex = regexp.MustCompile(`(?i)^(\d+)\s+set:$`)
	setLineRegex   = regexp.MustCompile(`(?i)^(\d+)\s+set:\s*(.+)$`)
)

// FindSetBonus scans the whole page for set bonus data. A collapsible
// "Set Bonus" section wins over a set infobox.
func FindSetBonus(doc *goquery.Selection) *items.SetBonus {
	bonus := SetBonusFromSection(doc)
	if bonus != nil {
		return bonus
	}
	return SetBonusFromSetbox(doc)
}

// setItemTitles returns the sorted unique titles of every titled link in sel.
func setItemTitles(sel *goquery.Selection) []string {
	titles := []string{}
	sel.Find("a[title]").Each(func(_ int, a *goquery.Selection) {
		title := textutil.Normalize(a.AttrOr("title", ""))
		if title != "" {
			titles = append(titles, title)
		}
	})
	slices.Sort(titles)
	return slices.Compact(titles)
}

// markerBonus looks for "<b>N set:</b> description" inside value. The
// description is the text that follows the bold marker up to the next tag.
func markerBonus(value *goquery.Selection) (int, string, bool) {
	pieces, description, found := 0, "", false
	value.Find("b").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		groups := setMarkerRegex.FindStringSubmatch(textutil.Normalize(b.Text()))
		if groups == nil {
			return true
		}

		var text strings.Builder
		for sibling := b.Nodes[0].NextSibling; sibling != nil && sibling.Type == html.TextNode; sibling = sibling.NextSibling {
			text.WriteString(sibling.Data)
		}
		desc := textutil.Normalize(text.String())
		n, err := strconv.Atoi(groups[1])
		if err != nil || desc == "" {
			return true
		}

		pieces, description, found = n, desc, true
		return false
	})
	return pieces, description, found
}

// lineBonus handles set sections written out as plain text lines.
func lineBonus(value *goquery.Selection) (int, string, bool) {
	for _, raw := range htmlutil.SplitLines(value) {
		groups := setLineRegex.FindStringSubmatch(textutil.Normalize(raw))
		if groups == nil {
			continue
		}
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			continue
		}
		return n, groups[2], true
	}
	return 0, "", false
}

// SetBonusFromSection reads the first collapsible section headed "Set Bonus"
// whose value carries an "N set:" pattern.
func SetBonusFromSection(doc *goquery.Selection) *items.SetBonus {
	var bonus *items.SetBonus
	doc.Find("section.pi-collapse").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		header := section.Find("h2.pi-header").First()
		if !strings.Contains(strings.ToLower(textutil.Normalize(header.Text())), "set bonus") {
			return true
		}
		value := section.Find("div.pi-data-value").First()
		if value.Length() == 0 {
			return true
		}

		pieces, description, ok := markerBonus(value)
		if !ok {
			pieces, description, ok = lineBonus(value)
		}
		if !ok {
			return true
		}

		bonus = &items.SetBonus{
			PiecesRequired: pieces,
			Bonus:          description,
			SetItems:       setItemTitles(value),
		}
		return false
	})
	return bonus
}

// SetBonusFromSetbox reads a dedicated set infobox, where the number of
// pieces is the number of listed items.
func SetBonusFromSetbox(doc *goquery.Selection) *items.SetBonus {
	setbox := doc.Find("aside.portable-infobox.type-set").First()
	if setbox.Length() == 0 {
		return nil
	}

	description := ""
	setItems := []string{}
	setbox.Find("div.pi-item.pi-data").Each(func(_ int, field *goquery.Selection) {
		labelTag := field.Find("h3.pi-data-label").First()
		valueTag := field.Find("div.pi-data-value").First()
		if labelTag.Length() == 0 || valueTag.Length() == 0 {
			return
		}

		label := strings.ToLower(textutil.Normalize(labelTag.Text()))
		switch {
		case strings.Contains(label, "bonus"):
			description = textutil.Normalize(valueTag.Text())
		case strings.Contains(label, "items"):
			setItems = setItemTitles(valueTag)
		}
	})

	if description == "" || len(setItems) == 0 {
		return nil
	}
	return &items.SetBonus{
		PiecesRequired: len(setItems),
		Bonus:          description,
		SetItems:       setItems,
	}
}
