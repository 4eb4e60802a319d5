package extract

import (
	"strings"

	"buildcrafter/internal/extract/fields"
	"buildcrafter/internal/items"
	"buildcrafter/lib/htmlutil"
	"buildcrafter/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the descriptive part of an item that a single unit may carry.
type Metadata struct {
	Rarity     *string
	Slot       *string
	Durability *int
	Tooltip    *string
	Category   []string
	SellValue  *int
}

// Empty reports whether the unit supplied no metadata at all.
func (m Metadata) Empty() bool {
	return m.Rarity == nil &&
		m.Slot == nil &&
		m.Durability == nil &&
		m.Tooltip == nil &&
		len(m.Category) == 0 &&
		m.SellValue == nil
}

// fillUnset copies every field of m into item that item does not have yet.
func (m Metadata) fillUnset(item *items.Item) {
	if item.Rarity == nil {
		item.Rarity = m.Rarity
	}
	if item.Slot == nil {
		item.Slot = m.Slot
	}
	if item.Durability == nil {
		item.Durability = m.Durability
	}
	if item.Tooltip == nil {
		item.Tooltip = m.Tooltip
	}
	if len(item.Category) == 0 && len(m.Category) > 0 {
		item.Category = append([]string{}, m.Category...)
	}
	if item.SellValue == nil {
		item.SellValue = m.SellValue
	}
}

// Unit is what one tab panel, or one infobox without tabs, describes: the
// effects of a single level plus whatever metadata it carries.
type Unit struct {
	Level   *int
	Effects []items.Effect
	Meta    Metadata
}

type row struct {
	// label is normalized and lowercase.
	label string
	value *goquery.Selection
	// clean is the normalized value text, text nodes joined by spaces.
	clean string
}

type rowHandler struct {
	name  string
	match func(r row, u *Unit) bool
	apply func(r row, u *Unit)
}

func labelIs(label string) func(r row, u *Unit) bool {
	return func(r row, _ *Unit) bool {
		return r.label == label
	}
}

func optionalText(text string) *string {
	if text == "" {
		return nil
	}
	return items.Ptr(text)
}

// rowHandlers is checked in order, the first handler matching a row parses it.
var rowHandlers = []rowHandler{
	{
		name:  "level",
		match: labelIs("level"),
		apply: func(r row, u *Unit) {
			level, ok := fields.LevelOf(r.value)
			if ok {
				u.Level = items.Ptr(level)
			}
		},
	},
	{
		name:  "rarity",
		match: labelIs("rarity"),
		apply: func(r row, u *Unit) {
			u.Meta.Rarity = optionalText(r.clean)
		},
	},
	{
		name:  "slot",
		match: labelIs("slot"),
		apply: func(r row, u *Unit) {
			u.Meta.Slot = optionalText(r.clean)
		},
	},
	{
		name:  "durability",
		match: labelIs("durability"),
		apply: func(r row, u *Unit) {
			durability, ok := fields.FirstInt(r.clean)
			if ok {
				u.Meta.Durability = items.Ptr(durability)
			}
		},
	},
	{
		name:  "sell",
		match: labelIs("sell"),
		apply: func(r row, u *Unit) {
			sell, ok := fields.LeadingInt(r.clean)
			if ok {
				u.Meta.SellValue = items.Ptr(sell)
			}
		},
	},
	{
		name:  "tooltip",
		match: labelIs("tooltip"),
		apply: func(r row, u *Unit) {
			u.Meta.Tooltip = optionalText(r.clean)
		},
	},
	{
		name:  "category",
		match: labelIs("category"),
		apply: func(r row, u *Unit) {
			u.Meta.Category = fields.Categories(r.value)
		},
	},
	{
		// "Type" stands in for "Category" on pages that have no category row.
		name: "type",
		match: func(r row, u *Unit) bool {
			return r.label == "type" && len(u.Meta.Category) == 0
		},
		apply: func(r row, u *Unit) {
			u.Meta.Category = fields.Categories(r.value)
		},
	},
	{
		name: "damage",
		match: func(r row, _ *Unit) bool {
			return strings.Contains(r.label, "damage")
		},
		apply: func(r row, u *Unit) {
			damage, ok := fields.RangeOf(r.value)
			if !ok {
				return
			}
			u.Effects = append(u.Effects, items.Effect{
				Type:  strings.ReplaceAll(r.label, " ", "_"),
				Value: items.RangeValue(damage.Min, damage.Max),
				Text:  r.clean,
			})
		},
	},
	{
		name:  "attack rate",
		match: labelIs("attack rate"),
		apply: func(r row, u *Unit) {
			rate, ok := fields.RateOf(r.value)
			if !ok {
				return
			}
			u.Effects = append(u.Effects, items.Effect{
				Type:  "attack_rate",
				Value: items.NumberValue(rate),
				Text:  r.clean,
			})
		},
	},
	{
		name:  "effects",
		match: labelIs("effects"),
		apply: func(r row, u *Unit) {
			u.Effects = append(u.Effects, fields.EffectBlock(r.value)...)
		},
	},
	{
		name: "generic",
		match: func(row, *Unit) bool {
			return true
		},
		apply: func(r row, u *Unit) {
			effect, ok := fields.Generic(r.label, r.value)
			if ok {
				u.Effects = append(u.Effects, effect)
			}
		},
	},
}

// dataRows finds the labeled rows of a unit, preferring rows grouped under a
// section and falling back to every row.
func dataRows(unit *goquery.Selection) *goquery.Selection {
	rows := unit.Find("section.pi-group > div.pi-item.pi-data")
	if rows.Length() == 0 {
		rows = unit.Find("div.pi-item.pi-data")
	}
	return rows
}

// ParseUnit walks the rows of one unit in document order. Rows without a
// label or a value are skipped.
func ParseUnit(unit *goquery.Selection) Unit {
	var u Unit
	dataRows(unit).Each(func(_ int, field *goquery.Selection) {
		labelTag := field.Find("h3.pi-data-label").First()
		valueTag := field.Find("div.pi-data-value").First()
		if labelTag.Length() == 0 || valueTag.Length() == 0 {
			return
		}

		r := row{
			label: strings.ToLower(textutil.Normalize(labelTag.Text())),
			value: valueTag,
			clean: textutil.Normalize(htmlutil.SeparatedText(valueTag, " ")),
		}
		for _, handler := range rowHandlers {
			if handler.match(r, &u) {
				handler.apply(r, &u)
				return
			}
		}
	})
	return u
}
