package fields

import (
	"strings"
	"testing"

	"buildcrafter/internal/items"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func value(t testing.TB, inner string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="pi-data-value">` + inner + `</div>`,
	))
	if err != nil {
		t.Fatal(err)
	}
	return doc.Find("div.pi-data-value")
}

func TestLevel(t *testing.T) {
	testCases := []struct {
		text   string
		expect int
		ok     bool
	}{
		{text: "3", expect: 3, ok: true},
		{text: " 12 [1]", expect: 12, ok: true},
		{text: "10 (max)", expect: 10, ok: true},
		{text: "Level 3", ok: false},
		{text: "0", ok: false},
		{text: "00 [1]", ok: false},
		{text: "", ok: false},
	}

	for _, test := range testCases {
		level, ok := Level(test.text)
		require.Equal(t, test.ok, ok, "input %q", test.text)
		require.Equal(t, test.expect, level, "input %q", test.text)
	}
}

func TestLevelOfPrefersDirectText(t *testing.T) {
	level, ok := LevelOf(value(t, `4<sup><a href="#cite">[2]</a></sup>`))
	require.True(t, ok)
	require.Equal(t, 4, level)

	level, ok = LevelOf(value(t, `<span>7</span>`))
	require.True(t, ok)
	require.Equal(t, 7, level)

	_, ok = LevelOf(value(t, `<b>max</b>`))
	require.False(t, ok)
}

func TestRange(t *testing.T) {
	testCases := []struct {
		text   string
		expect items.Range
		ok     bool
	}{
		{text: "12-18", expect: items.Range{Min: 12, Max: 18}, ok: true},
		{text: "12–18", expect: items.Range{Min: 12, Max: 18}, ok: true},
		{text: "12—18", expect: items.Range{Min: 12, Max: 18}, ok: true},
		{text: "12 − 18 (+10%)", expect: items.Range{Min: 12, Max: 18}, ok: true},
		{text: "7", expect: items.Range{Min: 7, Max: 7}, ok: true},
		{text: "7 damage", ok: false},
		{text: "abc", ok: false},
		{text: "", ok: false},
	}

	for _, test := range testCases {
		r, ok := Range(test.text)
		require.Equal(t, test.ok, ok, "input %q", test.text)
		require.Equal(t, test.expect, r, "input %q", test.text)
	}
}

func TestRangeOfFallsBackToFullText(t *testing.T) {
	r, ok := RangeOf(value(t, `<span>20</span>-<span>30</span>`))
	require.True(t, ok)
	require.Equal(t, items.Range{Min: 20, Max: 30}, r)
}

func TestRate(t *testing.T) {
	rate, ok := Rate("1.2 / sec")
	require.True(t, ok)
	require.Equal(t, 1.2, rate)

	rate, ok = Rate("every 3 seconds")
	require.True(t, ok)
	require.Equal(t, 3.0, rate)

	_, ok = Rate("fast")
	require.False(t, ok)
}

func TestIntegers(t *testing.T) {
	sell, ok := LeadingInt("150 Ancient Coins")
	require.True(t, ok)
	require.Equal(t, 150, sell)

	_, ok = LeadingInt("Cannot be sold")
	require.False(t, ok)

	durability, ok := FirstInt("Max 400")
	require.True(t, ok)
	require.Equal(t, 400, durability)

	_, ok = FirstInt("Unbreakable")
	require.False(t, ok)
}

func TestCategories(t *testing.T) {
	testCases := []struct {
		markup string
		expect []string
	}{
		{
			markup: `<a href="/wiki/Melee_Weapon">Melee Weapon</a>, <a href="/wiki/Sword">Sword</a>`,
			expect: []string{"Melee Weapon", "Sword"},
		},
		{
			markup: `<ul><li>Helm</li><li> </li><li>Armor</li></ul>`,
			expect: []string{"Helm", "Armor"},
		},
		{
			markup: `<ul><li><a>Ring</a></li><li>Accessory</li></ul>`,
			expect: []string{"Ring"},
		},
		{
			markup: `Consumable, , Food`,
			expect: []string{"Consumable", "Food"},
		},
		{
			markup: ``,
			expect: []string{},
		},
	}

	for _, test := range testCases {
		got := Categories(value(t, test.markup))
		if diff := cmp.Diff(test.expect, got); diff != "" {
			t.Fatalf("categories of %q (-want +got):\n%s", test.markup, diff)
		}
	}
}

func TestGeneric(t *testing.T) {
	testCases := []struct {
		label  string
		markup string
		expect items.Effect
		ok     bool
	}{
		{
			label:  "Critical hit chance",
			markup: `+5%`,
			expect: items.Effect{Type: "critical_hit_chance", Value: items.NumberValue(5), IsPercentage: true, Text: "+5%"},
			ok:     true,
		},
		{
			label:  "Mining damage",
			markup: `-3 <a href="/wiki/Mining">(mining)</a>`,
			expect: items.Effect{Type: "mining_damage", Value: items.NumberValue(-3), Text: "-3 (mining)"},
			ok:     true,
		},
		{
			label:  "Movement speed (%)",
			markup: `10`,
			expect: items.Effect{Type: "movement_speed", Value: items.NumberValue(10), IsPercentage: true, Text: "10"},
			ok:     true,
		},
		{
			label:  "Special",
			markup: `<a href="/wiki/Glow">Glows in the dark</a>`,
			expect: items.Effect{Type: "special", Value: items.TextValue("Glows in the dark"), Text: "Glows in the dark"},
			ok:     true,
		},
		{
			label:  "Bonus",
			markup: `Increases damage by 5%`,
			expect: items.Effect{Type: "bonus", Value: items.TextValue("Increases damage by 5%"), Text: "Increases damage by 5%"},
			ok:     true,
		},
		{label: "Armor", markup: `  `, ok: false},
		{label: "   ", markup: `5`, ok: false},
	}

	for _, test := range testCases {
		effect, ok := Generic(test.label, value(t, test.markup))
		require.Equal(t, test.ok, ok, "label %q", test.label)
		if diff := cmp.Diff(test.expect, effect); diff != "" {
			t.Fatalf("effect for %q (-want +got):\n%s", test.label, diff)
		}
	}
}

func TestGenericNeverEmitsIgnoredLabels(t *testing.T) {
	markups := []string{`5`, `+10%`, `Rare`, `<a>Melee Weapon</a>`, `12-18`}
	labels := []string{
		"Type", "Rarity", "Durability", "Level", "Tooltip", "Category", "Sell", "Slot",
		"Crafting EXP", "Repair cost", "Reinforce cost", "Salvage materials", "Technical",
	}

	for _, label := range labels {
		for _, markup := range markups {
			_, ok := Generic(label, value(t, markup))
			require.False(t, ok, "label %q with %q", label, markup)
		}
	}
	require.Len(t, IgnoredTypes(), len(labels))
}

func TestEffectBlock(t *testing.T) {
	effects := EffectBlock(value(t,
		`+10% <a href="/wiki/Mining">Mining</a> speed<br/>+2 Armor<br>   <br/>Immune to <b>slime</b><br/>0.5`,
	))

	expected := []items.Effect{
		{Type: "mining_speed", Value: items.NumberValue(10), IsPercentage: true, Text: "+10% Mining speed"},
		{Type: "armor", Value: items.NumberValue(2), Text: "+2 Armor"},
		{Type: "immune_to_slime", Value: items.TextValue("Immune to slime"), Text: "Immune to slime"},
		{Type: "unknown_effect", Value: items.NumberValue(0.5), Text: "0.5"},
	}
	if diff := cmp.Diff(expected, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}

	require.Empty(t, EffectBlock(value(t, `<br/><br/>`)))

	spaced := EffectBlock(value(t, `+10 % Mining speed<br/>-5 %`))
	expected = []items.Effect{
		{Type: "mining_speed", Value: items.NumberValue(10), IsPercentage: true, Text: "+10 % Mining speed"},
		{Type: "unknown_effect", Value: items.NumberValue(-5), IsPercentage: true, Text: "-5 %"},
	}
	if diff := cmp.Diff(expected, spaced); diff != "" {
		t.Fatalf("spaced percent effects mismatch (-want +got):\n%s", diff)
	}
}
