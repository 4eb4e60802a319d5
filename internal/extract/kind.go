package extract

import (
	"strings"
	"time"
)

// SlotRule maps a category tag (compared case-insensitively) to the
// equipment slot it implies.
type SlotRule struct {
	Category string
	Slot     string
}

// Kind describes one family of wiki pages run through the same pipeline.
// Weapons and armor only differ in the slot rules and a few defaults.
type Kind struct {
	Name string
	// Slots is ordered by priority, the first rule matching any category wins.
	Slots []SlotRule
	// DefaultLevel is used for units that carry no "Level" row.
	DefaultLevel int
	// RequestDelay is the pause between two page fetches.
	RequestDelay time.Duration
	// Input is the default list of wiki paths, Output the default JSON output.
	Input  string
	Output string
}

var baseSlots = []SlotRule{
	{Category: "melee weapon", Slot: "Melee Weapon"},
	{Category: "range weapon", Slot: "Range Weapon"},
	{Category: "magic weapon", Slot: "Magic Weapon"},
	{Category: "helm", Slot: "Helm"},
	{Category: "chest", Slot: "Chest"},
	{Category: "pants", Slot: "Pants"},
	{Category: "necklace", Slot: "Necklace"},
	{Category: "ring", Slot: "Ring"},
	{Category: "off-hand", Slot: "Off-hand"},
	{Category: "consumable", Slot: "Consumable"},
	{Category: "bomb", Slot: "Bomb"},
}

var Weapon = Kind{
	Name:         "weapon",
	Slots:        baseSlots,
	DefaultLevel: 1,
	RequestDelay: 0,
	Input:        "weaponLinks.json",
	Output:       "weapons_data_output.json",
}

var Armor = Kind{
	Name:         "armor",
	Slots:        append(append([]SlotRule{}, baseSlots...), SlotRule{Category: "breast armor", Slot: "Chest"}),
	DefaultLevel: 1,
	RequestDelay: 500 * time.Millisecond,
	Input:        "armorLinks.json",
	Output:       "armor_data_output.json",
}

var kinds = []Kind{Weapon, Armor}

// KindByName looks up a built-in kind, "weapons" and "armour" also work.
func KindByName(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "weapons":
		name = "weapon"
	case "armour":
		name = "armor"
	}
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// KindNames lists the built-in kinds.
func KindNames() []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	return names
}

// ResolveSlot returns the slot implied by the first matching rule.
func (k Kind) ResolveSlot(categories []string) (string, bool) {
	lowered := make([]string, len(categories))
	for i, c := range categories {
		lowered[i] = strings.ToLower(c)
	}
	for _, rule := range k.Slots {
		for _, c := range lowered {
			if c == rule.Category {
				return rule.Slot, true
			}
		}
	}
	return "", false
}
