package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in     string
		expect string
	}{
		{in: "", expect: ""},
		{in: "   ", expect: ""},
		{in: "  Wooden \n\t Sword  ", expect: "Wooden Sword"},
		{in: "12 - 18", expect: "12 - 18"},
		{in: "ﬁre", expect: "fire"},
		{in: "line one\r\nline two", expect: "line one line two"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expect, Normalize(test.in), "input %q", test.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  a  b  ",
		"Épée de feu",
		"ＦＵＬＬ　ＷＩＤＴＨ",
		"+10%\n damage\t",
		"½ chance",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		name   string
		expect string
	}{
		{name: "Wooden Sword", expect: "wooden_sword"},
		{name: "", expect: "unknown_item"},
		{name: "Ghorm's Scale", expect: "ghorm_s_scale"},
		{name: "Épée", expect: "epee"},
		{name: " Tin Helm ", expect: "tin_helm"},
		{name: "Ring (Level 2)", expect: "ring__level_2_"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expect, Slug(test.name))
	}
}

func TestTypeKey(t *testing.T) {
	testCases := []struct {
		label  string
		expect string
	}{
		{label: "Melee Damage", expect: "melee_damage"},
		{label: "  Critical hit chance (%) ", expect: "critical_hit_chance"},
		{label: "Sell", expect: "sell"},
		{label: "%", expect: "unknown_effect"},
		{label: "", expect: "unknown_effect"},
		{label: "Mining   damage", expect: "mining_damage"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expect, TypeKey(test.label))
	}
}
