package engine

import "github.com/DedS3t/monopoly-ledger/app/models"

// Every Y/N branch of a turn is a Decider call, so the engine never
// reads from a console and a caller can script a whole game.

// LiquidationAsset describes one owned space while a player is forced
// to raise cash.
type LiquidationAsset struct {
	Index     int
	Space     models.Space
	Houses    int
	Hotel     bool
	Mortgaged bool
}

type LiquidationAction int

const (
	LiquidationGiveUp LiquidationAction = iota
	LiquidationSellHouses
	LiquidationSellHotel
	LiquidationMortgage
)

// LiquidationStep is one choice made by the owner while short on cash.
type LiquidationStep struct {
	Action LiquidationAction
	Index  int
	Houses int // for LiquidationSellHouses
}

type Decider interface {
	// BuyProperty decides whether to buy an unowned space at its price.
	BuyProperty(space models.Space, balance int) bool
	// UnMortgage decides whether to lift a mortgage on an owned space.
	UnMortgage(space models.Space, balance int) bool
	// TaxByPercent picks 10% of total assets over the flat 200 for
	// Income Tax.
	TaxByPercent(assets int) bool
	// BuyHouses returns how many houses to buy on a monopoly space,
	// 0 to skip.
	BuyHouses(space models.Space, houses int, balance int) int
	// BuyHotel decides whether to put a hotel on a space with 4 houses.
	BuyHotel(space models.Space, balance int) bool
	// Liquidate picks the next asset to turn into cash. Returning
	// LiquidationGiveUp hands the choice back to the engine.
	Liquidate(shortfall int, assets []LiquidationAsset) LiquidationStep
}

// AutoDecider buys whatever it can afford and liquidates greedily in
// board order. Used by the automatic play mode.
type AutoDecider struct{}

func (AutoDecider) BuyProperty(space models.Space, balance int) bool {
	return balance >= space.Price
}

func (AutoDecider) UnMortgage(space models.Space, balance int) bool {
	return balance >= space.MortgageValue()
}

func (AutoDecider) TaxByPercent(assets int) bool {
	return assets/10 < 200
}

func (AutoDecider) BuyHouses(space models.Space, houses int, balance int) int {
	for n := 4 - houses; n > 0; n-- {
		if balance >= n*space.HousePrice {
			return n
		}
	}
	return 0
}

func (AutoDecider) BuyHotel(space models.Space, balance int) bool {
	return balance >= space.HousePrice
}

func (AutoDecider) Liquidate(shortfall int, assets []LiquidationAsset) LiquidationStep {
	return LiquidationStep{Action: LiquidationGiveUp}
}

// TurnDecisions is a fully scripted Decider built from one request
// payload, for callers that collect the choices up front.
type TurnDecisions struct {
	Buy          bool                     `json:"buy"`
	LiftMortgage bool                     `json:"lift_mortgage"`
	TaxPercent   bool                     `json:"tax_percent"`
	HousePlan    map[int]int              `json:"house_plan"` // space index -> houses to buy
	HotelPlan    map[int]bool             `json:"hotel_plan"`
	Liquidation  []LiquidationStep        `json:"liquidation"`
	used         int
}

func (t *TurnDecisions) BuyProperty(space models.Space, balance int) bool {
	return t.Buy && balance >= space.Price
}

func (t *TurnDecisions) UnMortgage(space models.Space, balance int) bool {
	return t.LiftMortgage && balance >= space.MortgageValue()
}

func (t *TurnDecisions) TaxByPercent(assets int) bool {
	return t.TaxPercent
}

func (t *TurnDecisions) BuyHouses(space models.Space, houses int, balance int) int {
	return t.HousePlan[space.Index]
}

func (t *TurnDecisions) BuyHotel(space models.Space, balance int) bool {
	return t.HotelPlan[space.Index]
}

func (t *TurnDecisions) Liquidate(shortfall int, assets []LiquidationAsset) LiquidationStep {
	if t.used >= len(t.Liquidation) {
		return LiquidationStep{Action: LiquidationGiveUp}
	}
	step := t.Liquidation[t.used]
	t.used++
	return step
}
