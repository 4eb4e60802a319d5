package store

import (
	"context"
	"path/filepath"
	"testing"

	"buildcrafter/internal/items"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) Store {
	s, err := Open(context.Background(), Config{File: ":memory:"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func sampleItems() []items.Item {
	sword := items.New("Tin Sword", "tin_sword", "weapon")
	sword.Rarity = items.Ptr("Common")
	sword.Slot = items.Ptr("Melee Weapon")
	sword.Category = []string{"Melee Weapon"}
	sword.Levels[1] = items.Level{Effects: []items.Effect{
		{Type: "melee_damage", Value: items.RangeValue(12, 18), Text: "12-18"},
		{Type: "attack_rate", Value: items.NumberValue(1.2), Text: "1.2"},
	}}
	sword.MinLevel = items.Ptr(1)
	sword.MaxLevel = items.Ptr(1)

	club := items.New("Club", "club", "weapon")
	club.Rarity = items.Ptr("Poor")
	return []items.Item{sword, club}
}

func TestSaveAndList(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.SaveItems(ctx, "weapon", sampleItems()))

	list, err := s.ListItems(ctx, "weapon")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Club", list[0].Name)
	if diff := cmp.Diff(sampleItems()[0], list[1]); diff != "" {
		t.Fatalf("stored item mismatch (-want +got):\n%s", diff)
	}

	withRate, err := s.ItemsWithEffect(ctx, "weapon", "attack_rate")
	require.NoError(t, err)
	require.Len(t, withRate, 1)
	require.Equal(t, "tin_sword", withRate[0].Id)

	item, err := s.GetItem(ctx, "weapon", "club")
	require.NoError(t, err)
	require.Equal(t, "Poor", items.Deref(item.Rarity))

	_, err = s.GetItem(ctx, "armor", "club")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReplacesKind(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	helm := items.New("Tin Helm", "tin_helm", "armor")
	helm.Rarity = items.Ptr("Common")
	require.NoError(t, s.SaveItems(ctx, "armor", []items.Item{helm}))
	require.NoError(t, s.SaveItems(ctx, "weapon", sampleItems()))
	require.NoError(t, s.SaveItems(ctx, "weapon", sampleItems()[:1]))

	weapons, err := s.ListItems(ctx, "weapon")
	require.NoError(t, err)
	require.Len(t, weapons, 1)

	all, err := s.ListItems(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	withDamage, err := s.ItemsWithEffect(ctx, "weapon", "melee_damage")
	require.NoError(t, err)
	require.Len(t, withDamage, 1)
	require.Equal(t, "tin_sword", withDamage[0].Id)
}

func TestItemsWithEffectAcrossKinds(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	helm := items.New("Tin Helm", "tin_helm", "armor")
	helm.Levels[1] = items.Level{Effects: []items.Effect{
		{Type: "attack_rate", Value: items.NumberValue(5), IsPercentage: true, Text: "+5%"},
	}}
	require.NoError(t, s.SaveItems(ctx, "armor", []items.Item{helm}))
	require.NoError(t, s.SaveItems(ctx, "weapon", sampleItems()))

	all, err := s.ItemsWithEffect(ctx, "", "attack_rate")
	require.NoError(t, err)
	names := []string{}
	for _, item := range all {
		names = append(names, item.Name)
	}
	require.Equal(t, []string{"Tin Helm", "Tin Sword"}, names)

	none, err := s.ItemsWithEffect(ctx, "", "mining_speed")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestOpenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "catalog.db")
	s, err := Open(context.Background(), Config{File: file})
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(context.Background(), "weapon", sampleItems()))
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), Config{File: file})
	require.NoError(t, err)
	defer s.Close()
	list, err := s.ListItems(context.Background(), "weapon")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestOpenWithoutTarget(t *testing.T) {
	require.True(t, Config{}.Empty())
	require.False(t, Config{Url: "libsql://catalog.example"}.Empty())
	_, err := Open(context.Background(), Config{})
	require.ErrorContains(t, err, "neither a file nor a url")
}
