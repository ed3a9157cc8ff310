package draw

import (
	"encoding/json"
	"io/ioutil"
	"math/rand"
	"os"

	"github.com/DedS3t/monopoly-ledger/app/models"
)

// Draw holds the two card decks. Each deck is shuffled exactly once at
// load and then cycled through with its own cursor. Cards are never
// reshuffled, after exhaustion they come back in the same order.
type Draw struct {
	chance      []models.Card
	chest       []models.Card
	chanceIndex int
	chestIndex  int
}

// Load reads the card definitions from the given json file and shuffles
// both decks with rng. A missing or malformed file is fatal.
func Load(path string, rng *rand.Rand) *Draw {
	jsonFile, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer jsonFile.Close()

	byteValue, err := ioutil.ReadAll(jsonFile)
	if err != nil {
		panic(err)
	}

	var cards []models.Card
	if err := json.Unmarshal(byteValue, &cards); err != nil {
		panic(err)
	}

	d := &Draw{}
	for _, card := range cards {
		switch card.DrawType {
		case models.DrawChance:
			d.chance = append(d.chance, card)
		case models.DrawCommunityChest:
			d.chest = append(d.chest, card)
		}
	}
	shuffle(d.chance, rng)
	shuffle(d.chest, rng)
	return d
}

func shuffle(cards []models.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// DrawCard returns the next card of the given type, advancing that
// deck's cursor cyclically.
func (d *Draw) DrawCard(drawType string) models.Card {
	switch drawType {
	case models.DrawChance:
		card := d.chance[d.chanceIndex]
		d.chanceIndex = (d.chanceIndex + 1) % len(d.chance)
		return card
	case models.DrawCommunityChest:
		card := d.chest[d.chestIndex]
		d.chestIndex = (d.chestIndex + 1) % len(d.chest)
		return card
	}
	return models.Card{}
}

func (d *Draw) ChanceSize() int { return len(d.chance) }
func (d *Draw) ChestSize() int  { return len(d.chest) }
