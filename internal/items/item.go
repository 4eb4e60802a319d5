// Package items holds the normalized item schema produced by the extraction
// pipeline and consumed, read-only, by everything downstream of it.
package items

import (
	"slices"
)

// Item is one extracted weapon, armor piece or accessory.
type Item struct {
	Name string `json:"name"`
	Id   string `json:"id"`
	Kind string `json:"kind"`

	Rarity     *string  `json:"rarity"`
	Slot       *string  `json:"slot"`
	Durability *int     `json:"durability"`
	Tooltip    *string  `json:"tooltip"`
	Category   []string `json:"category"`
	SellValue  *int     `json:"sell_value"`

	Levels   map[int]Level `json:"levels"`
	MinLevel *int          `json:"min_level"`
	MaxLevel *int          `json:"max_level"`

	SetBonus *SetBonus `json:"set_bonus"`

	ImageUrl       *string `json:"image_url"`
	LocalImagePath *string `json:"local_image_path"`

	Warnings []string `json:"warnings"`
}

// New creates an empty item with the collections initialized so they encode
// as [] and {} instead of null.
func New(name, id, kind string) Item {
	return Item{
		Name:     name,
		Id:       id,
		Kind:     kind,
		Category: []string{},
		Levels:   map[int]Level{},
	}
}

type Level struct {
	Effects []Effect `json:"effects"`
}

type SetBonus struct {
	PiecesRequired int      `json:"pieces_required"`
	Bonus          string   `json:"bonus"`
	SetItems       []string `json:"set_items"`
}

// LevelNumbers returns the level keys in ascending order.
func (i Item) LevelNumbers() []int {
	levels := make([]int, 0, len(i.Levels))
	for lvl := range i.Levels {
		levels = append(levels, lvl)
	}
	slices.Sort(levels)
	return levels
}

// HasEffect reports whether any level of the item has an effect of effectType.
func (i Item) HasEffect(effectType string) bool {
	for _, level := range i.Levels {
		for _, effect := range level.Effects {
			if effect.Type == effectType {
				return true
			}
		}
	}
	return false
}

// HasLevels reports whether at least one level entry was extracted.
func (i Item) HasLevels() bool {
	return len(i.Levels) > 0
}

// Ptr returns a pointer to a copy of v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value of T.
func Deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
