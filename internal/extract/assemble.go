// Package extract turns one wiki page into the items it describes. Each
// infobox on the page becomes an item, each tab inside an infobox (or the
// infobox itself when it has no tabs) is one level of that item.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"buildcrafter/internal/assert"
	"buildcrafter/internal/items"
	"buildcrafter/internal/telemetry"
	"buildcrafter/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_duplicate_level = "assemble.duplicate-level"
	report_dropped_item    = "assemble.dropped-item"
)

var ErrNoInfobox = errors.New("no infobox found on page")

type Extractor struct {
	kind    Kind
	baseUrl *url.URL
	tel     telemetry.API
}

func NewExtractor(kind Kind, baseUrl *url.URL, tel telemetry.API) Extractor {
	assert.NotNil(baseUrl)
	assert.NotNil(tel)
	assert.NotEmptyStr(kind.Name)

	return Extractor{
		kind:    kind,
		baseUrl: baseUrl,
		tel:     telemetry.NewScopedAPI("extract", tel),
	}
}

func (e Extractor) Kind() Kind {
	return e.kind
}

// ExtractHTML parses body and extracts it like ExtractPage.
func (e Extractor) ExtractHTML(body []byte, pagePath string) ([]items.Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return e.ExtractPage(doc, pagePath)
}

// ExtractPage returns the items described on one page, in document order.
// It only fails when the page has no infobox at all.
func (e Extractor) ExtractPage(doc *goquery.Document, pagePath string) ([]items.Item, error) {
	infoboxes := findInfoboxes(doc.Selection)
	if len(infoboxes) == 0 {
		return nil, ErrNoInfobox
	}

	setBonus := FindSetBonus(doc.Selection)

	var out []items.Item
	for _, infobox := range infoboxes {
		item := e.assemble(infobox, pagePath)
		if setBonus != nil {
			item.SetBonus = copySetBonus(setBonus)
		}

		if !item.HasLevels() && item.Rarity == nil {
			e.tel.ReportDebug(report_dropped_item, "page", pagePath, "name", item.Name)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// findInfoboxes prefers the asides listed inside an infobox list and falls
// back to the first infobox on the page. Set infoboxes only describe set
// bonuses and are never items.
func findInfoboxes(doc *goquery.Selection) []*goquery.Selection {
	var candidates *goquery.Selection
	container := doc.Find("div.infobox-list").First()
	if container.Length() > 0 {
		candidates = container.ChildrenFiltered("aside.portable-infobox")
		if candidates.Length() == 0 {
			candidates = container.Find("aside.portable-infobox")
		}
	}
	if candidates == nil || candidates.Length() == 0 {
		candidates = doc.Find("aside.portable-infobox").Not(".type-set").First()
	}

	var out []*goquery.Selection
	candidates.Each(func(_ int, aside *goquery.Selection) {
		if aside.HasClass("type-set") {
			return
		}
		out = append(out, aside)
	})
	return out
}

// NameFromPath guesses an item name from the last segment of a wiki path,
// "/wiki/Tin_Sword" gives "Tin Sword".
func NameFromPath(pagePath string) string {
	segment := path.Base(strings.TrimRight(pagePath, "/"))
	if segment == "." || segment == "/" {
		return ""
	}
	unescaped, err := url.PathUnescape(segment)
	if err == nil {
		segment = unescaped
	}
	return textutil.Normalize(strings.ReplaceAll(segment, "_", " "))
}

func (e Extractor) itemName(infobox *goquery.Selection, pagePath string) string {
	title := textutil.Normalize(infobox.Find("h2.pi-title").First().Text())
	if title != "" {
		return title
	}
	return NameFromPath(pagePath)
}

// units returns the tab panels of the outermost tabbers of the infobox, or
// the infobox itself. Tabbers nested inside a panel belong to that panel.
func units(infobox *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	infobox.Find("section.wds-tabber").Each(func(_ int, tabber *goquery.Selection) {
		if tabber.ParentsUntilSelection(infobox).Filter("section.wds-tabber").Length() > 0 {
			return
		}
		tabber.ChildrenFiltered("div.wds-tab__content").Each(func(_ int, tab *goquery.Selection) {
			out = append(out, tab)
		})
	})
	if len(out) == 0 {
		out = append(out, infobox)
	}
	return out
}

// imageSource returns the absolute url of the infobox picture, lazy loaded
// images keep the real url in data-src.
func (e Extractor) imageSource(infobox *goquery.Selection) *string {
	img := infobox.Find("figure.pi-image img").First()
	if img.Length() == 0 {
		return nil
	}
	src := strings.TrimSpace(img.AttrOr("data-src", ""))
	if src == "" {
		src = strings.TrimSpace(img.AttrOr("src", ""))
	}
	if src == "" {
		return nil
	}

	ref, err := url.Parse(src)
	if err != nil {
		return items.Ptr(src)
	}
	return items.Ptr(e.baseUrl.ResolveReference(ref).String())
}

func (e Extractor) assemble(infobox *goquery.Selection, pagePath string) items.Item {
	name := e.itemName(infobox, pagePath)
	item := items.New(name, textutil.Slug(name), e.kind.Name)
	item.ImageUrl = e.imageSource(infobox)

	locked := false
	for _, sel := range units(infobox) {
		unit := ParseUnit(sel)

		level := e.kind.DefaultLevel
		if unit.Level != nil {
			level = *unit.Level
		}

		if !locked && !unit.Meta.Empty() {
			unit.Meta.fillUnset(&item)
			locked = true
		}

		if len(unit.Effects) == 0 {
			continue
		}
		if _, exists := item.Levels[level]; exists {
			e.tel.ReportWarning(report_duplicate_level, "page", pagePath, "name", name, "level", level)
			item.Warnings = append(item.Warnings, fmt.Sprintf("duplicate level %d ignored", level))
			continue
		}
		item.Levels[level] = items.Level{Effects: unit.Effects}
	}

	levels := item.LevelNumbers()
	if len(levels) > 0 {
		item.MinLevel = items.Ptr(levels[0])
		item.MaxLevel = items.Ptr(levels[len(levels)-1])
	}

	if item.Slot == nil {
		slot, ok := e.kind.ResolveSlot(item.Category)
		if ok {
			item.Slot = items.Ptr(slot)
		}
	}

	return item
}

func copySetBonus(bonus *items.SetBonus) *items.SetBonus {
	return &items.SetBonus{
		PiecesRequired: bonus.PiecesRequired,
		Bonus:          bonus.Bonus,
		SetItems:       append([]string{}, bonus.SetItems...),
	}
}
