package items

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	sword := New("Wooden Sword", "wooden_sword", "weapon")
	sword.Rarity = Ptr("Common")
	sword.Slot = Ptr("Melee Weapon")
	sword.Durability = Ptr(100)
	sword.Category = []string{"Melee Weapon", "Sword"}
	sword.SellValue = Ptr(12)
	sword.Levels[1] = Level{Effects: []Effect{
		{Type: "melee_damage", Value: RangeValue(12, 18), Text: "12-18"},
		{Type: "attack_rate", Value: NumberValue(1.2), Text: "1.2 / sec"},
	}}
	sword.Levels[3] = Level{Effects: []Effect{
		{Type: "critical_hit_chance", Value: NumberValue(5), IsPercentage: true, Text: "+5%"},
		{Type: "special", Value: TextValue("Knockback"), Text: "Knockback"},
	}}
	sword.MinLevel = Ptr(1)
	sword.MaxLevel = Ptr(3)
	sword.SetBonus = &SetBonus{PiecesRequired: 3, Bonus: "+10% damage", SetItems: []string{"A", "B", "C"}}
	sword.ImageUrl = Ptr("https://static.wikia.nocookie.net/sword.png")

	helm := New("Tin Helm", "tin_helm", "armor")
	helm.Rarity = Ptr("Common")
	helm.Slot = Ptr("Helm")

	return []Item{sword, helm}
}

func TestItemJSONRoundTrip(t *testing.T) {
	original := sampleItems()

	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []Item
	err = json.Unmarshal(encoded, &decoded)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestItemJSONShape(t *testing.T) {
	helm := sampleItems()[1]
	encoded, err := json.Marshal(helm)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	err = json.Unmarshal(encoded, &raw)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, []any{}, raw["category"])
	require.Equal(t, map[string]any{}, raw["levels"])
	require.Contains(t, raw, "min_level")
	require.Nil(t, raw["min_level"])
	require.Contains(t, raw, "set_bonus")
	require.Nil(t, raw["set_bonus"])
	require.Nil(t, raw["warnings"])
	require.Equal(t, "armor", raw["kind"])

	expectedKeys := []string{
		"name", "id", "kind", "rarity", "slot", "durability", "tooltip", "category",
		"sell_value", "levels", "min_level", "max_level", "set_bonus", "image_url",
		"local_image_path", "warnings",
	}
	require.Len(t, raw, len(expectedKeys))
	for _, key := range expectedKeys {
		require.Contains(t, raw, key)
	}
}

func TestEffectValueJSON(t *testing.T) {
	testCases := []struct {
		value  Value
		expect string
	}{
		{value: NumberValue(1.5), expect: `1.5`},
		{value: NumberValue(-3), expect: `-3`},
		{value: RangeValue(7, 7), expect: `{"min":7,"max":7}`},
		{value: TextValue("Glows"), expect: `"Glows"`},
	}

	for _, test := range testCases {
		encoded, err := json.Marshal(test.value)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expect, string(encoded))

		var decoded Value
		err = json.Unmarshal(encoded, &decoded)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.value, decoded)
	}

	_, err := json.Marshal(Value{Kind: ValueKind(42)})
	require.Error(t, err)
}

func TestLevelNumbers(t *testing.T) {
	sword := sampleItems()[0]
	require.Equal(t, []int{1, 3}, sword.LevelNumbers())
	require.True(t, sword.HasLevels())
	require.False(t, sampleItems()[1].HasLevels())
}

func TestSearch(t *testing.T) {
	list := sampleItems()
	extra := New("Iron Sword", "iron_sword", "weapon")
	extra.Slot = Ptr("Melee Weapon")
	list = append(list, extra)

	results := Search(list, "sword", SearchOptions{})
	require.Len(t, results, 2)

	results = Search(list, "", SearchOptions{Slot: "helm"})
	require.Len(t, results, 1)
	require.Equal(t, "Tin Helm", results[0].Item.Name)

	results = Search(list, "SWORD", SearchOptions{Limit: 1})
	require.Len(t, results, 1)

	results = Search(list, "axe", SearchOptions{})
	require.Empty(t, results)

	results = Search(list, "", SearchOptions{Effect: "critical_hit_chance"})
	require.Len(t, results, 1)
	require.Equal(t, "Wooden Sword", results[0].Item.Name)
	require.True(t, results[0].Item.HasEffect("attack_rate"))
	require.False(t, results[0].Item.HasEffect("mining_speed"))
}
