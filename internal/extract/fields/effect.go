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

// ignoredTypes are identity and bookkeeping labels, they describe the item
// rather than what it does and are never turned into effects.
var ignoredTypes = map[string]struct{}{
	"type":              {},
	"rarity":            {},
	"durability":        {},
	"level":             {},
	"tooltip":           {},
	"category":          {},
	"sell":              {},
	"slot":              {},
	"crafting_exp":      {},
	"repair_cost":       {},
	"reinforce_cost":    {},
	"salvage_materials": {},
	"technical":         {},
}

// IsIgnored reports whether an effect type key belongs to item metadata.
func IsIgnored(typeKey string) bool {
	_, ok := ignoredTypes[typeKey]
	return ok
}

// IgnoredTypes returns the ignored type keys, for tests and documentation.
func IgnoredTypes() []string {
	out := make([]string, 0, len(ignoredTypes))
	for key := range ignoredTypes {
		out = append(out, key)
	}
	return out
}

var signedNumberRegex = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d+)?|\.\d+))`)

// leadingNumber reads a signed number at the start of text and returns it
// with the rest of the text after it.
func leadingNumber(text string) (float64, string, bool) {
	groups := signedNumberRegex.FindStringSubmatch(text)
	if groups == nil {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return 0, "", false
	}
	return n, text[len(groups[1]):], true
}

// Generic parses any row that has no dedicated parser. A leading number
// makes a numeric effect, any other non-empty text makes a text effect and an
// empty value makes nothing at all.
//
// The percentage check looks for '%' in the label as well as the value, so a
// label that mentions '%' for another reason still marks the effect.
func Generic(label string, value *goquery.Selection) (items.Effect, bool) {
	label = textutil.Normalize(label)
	if label == "" {
		return items.Effect{}, false
	}
	typeKey := textutil.TypeKey(label)
	if IsIgnored(typeKey) {
		return items.Effect{}, false
	}

	display := textutil.Normalize(value.Text())
	valueText := textutil.Normalize(htmlutil.DirectText(value))
	if valueText == "" {
		valueText = display
	}

	n, _, ok := leadingNumber(valueText)
	if ok {
		return items.Effect{
			Type:         typeKey,
			Value:        items.NumberValue(n),
			IsPercentage: strings.Contains(display, "%") || strings.Contains(label, "%"),
			Text:         display,
		}, true
	}
	if valueText != "" {
		return items.Effect{
			Type:  typeKey,
			Value: items.TextValue(valueText),
			Text:  display,
		}, true
	}
	return items.Effect{}, false
}

func lineTypeKey(text string) string {
	key := strings.ReplaceAll(strings.ToLower(text), " ", "_")
	if key == "" {
		return "unknown_effect"
	}
	return key
}

// EffectBlock parses an "Effects" value that lists one modifier per line,
// like "+10% Mining speed<br>+2 Armor". Lines without a leading number are
// kept as text effects.
func EffectBlock(value *goquery.Selection) []items.Effect {
	effects := []items.Effect{}
	for _, raw := range htmlutil.SplitLines(value) {
		line := textutil.Normalize(raw)
		if line == "" {
			continue
		}

		n, rest, ok := leadingNumber(line)
		if !ok {
			effects = append(effects, items.Effect{
				Type:  lineTypeKey(line),
				Value: items.TextValue(line),
				Text:  line,
			})
			continue
		}

		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "%"))
		effects = append(effects, items.Effect{
			Type:         lineTypeKey(rest),
			Value:        items.NumberValue(n),
			IsPercentage: strings.Contains(line, "%"),
			Text:         line,
		})
	}
	return effects
}
