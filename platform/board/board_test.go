package board

import (
	"testing"

	"github.com/DedS3t/monopoly-ledger/app/models"
)

func TestLoadBoard(t *testing.T) {
	b := Load("spaces.json")

	for index := 0; index < models.BoardSize; index++ {
		space := b.SpaceAt(index)
		if space.Index != index {
			t.Errorf("space at %d carries index %d", index, space.Index)
		}
		if space.Name == "" {
			t.Errorf("space at %d has no name", index)
		}
	}

	if b.SpaceAt(0).Name != models.SpaceGo {
		t.Errorf("index 0 should be Go, got %s", b.SpaceAt(0).Name)
	}
	if b.SpaceAt(30).Name != models.SpaceGoToJail {
		t.Errorf("index 30 should be Go To Jail, got %s", b.SpaceAt(30).Name)
	}
}

func TestAllOwnableIndices(t *testing.T) {
	b := Load("spaces.json")
	indices := b.AllOwnableIndices()

	if len(indices) != 28 {
		t.Fatalf("expected 28 ownable spaces, got %d", len(indices))
	}
	prev := -1
	for _, index := range indices {
		if index <= prev {
			t.Fatalf("ownable indices not in board order: %v", indices)
		}
		prev = index
		space := b.SpaceAt(index)
		if space.Kind == models.KindDraw || space.Kind == models.KindSpecial {
			t.Errorf("space %d (%s) should not be ownable", index, space.Name)
		}
		if space.MortgageValue() != space.Price/2 {
			t.Errorf("space %d mortgage value %d, want %d", index, space.MortgageValue(), space.Price/2)
		}
	}
}

func TestMonopolyGroupsPartitionProperties(t *testing.T) {
	b := Load("spaces.json")

	groups := map[string]int{
		"brown": 2, "lightblue": 3, "pink": 3, "orange": 3,
		"red": 3, "yellow": 3, "green": 3, "darkblue": 2,
	}
	total := 0
	for group, want := range groups {
		indices := b.MonopolyGroup(group)
		if len(indices) != want {
			t.Errorf("group %s has %d spaces, want %d", group, len(indices), want)
		}
		total += len(indices)
		for _, index := range indices {
			if b.SpaceAt(index).Kind != models.KindProperty {
				t.Errorf("group %s contains non-property index %d", group, index)
			}
			if b.SpaceAt(index).Group != group {
				t.Errorf("index %d assigned to group %s but carries %s", index, group, b.SpaceAt(index).Group)
			}
		}
	}
	if total != 22 {
		t.Errorf("groups cover %d properties, want 22", total)
	}
}

func TestStationAndUtilityPositions(t *testing.T) {
	for _, index := range []int{5, 15, 25, 35} {
		if kind := Load("spaces.json").SpaceAt(index).Kind; kind != models.KindStation {
			t.Errorf("index %d should be a station, got %s", index, kind)
		}
	}
	b := Load("spaces.json")
	for _, index := range []int{12, 28} {
		if kind := b.SpaceAt(index).Kind; kind != models.KindUtility {
			t.Errorf("index %d should be a utility, got %s", index, kind)
		}
	}
}
