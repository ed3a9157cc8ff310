package board

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/DedS3t/monopoly-ledger/app/models"
)

// Board holds the 40 spaces and a monopoly index built once at load.
// Read-only after Load.
type Board struct {
	spaces     [models.BoardSize]models.Space
	monopolies map[string][]int
}

// Load reads the space definitions from the given json file. A missing or
// malformed file is fatal, the game cannot run without a board.
func Load(path string) *Board {
	jsonFile, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer jsonFile.Close()

	byteValue, err := ioutil.ReadAll(jsonFile)
	if err != nil {
		panic(err)
	}

	var spaces []models.Space
	if err := json.Unmarshal(byteValue, &spaces); err != nil {
		panic(err)
	}
	if len(spaces) != models.BoardSize {
		panic(fmt.Sprintf("board: expected %d spaces, got %d", models.BoardSize, len(spaces)))
	}

	b := &Board{monopolies: map[string][]int{}}
	seen := [models.BoardSize]bool{}
	for _, space := range spaces {
		if space.Index < 0 || space.Index >= models.BoardSize || seen[space.Index] {
			panic(fmt.Sprintf("board: bad index %d for %s", space.Index, space.Name))
		}
		seen[space.Index] = true
		b.spaces[space.Index] = space
		if space.Kind == models.KindProperty {
			b.monopolies[space.Group] = append(b.monopolies[space.Group], space.Index)
		}
	}
	for group := range b.monopolies {
		sort.Ints(b.monopolies[group])
	}
	return b
}

func (b *Board) SpaceAt(index int) models.Space {
	return b.spaces[index]
}

// AllOwnableIndices returns every buyable space in board order.
func (b *Board) AllOwnableIndices() []int {
	indices := make([]int, 0, models.BoardSize)
	for _, space := range b.spaces {
		if space.Ownable() {
			indices = append(indices, space.Index)
		}
	}
	return indices
}

// MonopolyGroup returns the indices of the property spaces sharing the
// given color group, in board order. The returned slice must not be
// modified by the caller.
func (b *Board) MonopolyGroup(group string) []int {
	return b.monopolies[group]
}
