package engine

// Hard ceiling on liquidation steps. 28 ownable spaces with a hotel,
// four houses and a mortgage each stay well under it; the cap only
// guards termination against a misbehaving ledger.
const maxLiquidationSteps = 512

// liquidate drives the owner's liquidation choices until the balance
// covers target. When the owner's policy stalls the engine falls back
// to a greedy step, so a critical payment can never hang on a caller.
// Returns true when every option is exhausted and the balance still
// falls short.
func (g *Game) liquidate(p *Player, target int, d Decider) (bool, error) {
	for step := 0; step < maxLiquidationSteps; step++ {
		balance, err := g.Ledger.BalanceOf(p.Account)
		if err != nil {
			return false, err
		}
		if balance >= target {
			return false, nil
		}

		assets, err := g.liquidationAssets(p)
		if err != nil {
			return false, err
		}

		choice := d.Liquidate(target-balance, assets)
		progressed, err := g.applyLiquidation(p, choice)
		if err != nil {
			return false, err
		}
		if progressed {
			continue
		}
		// Owner gave up or picked an invalid step.
		auto, found := autoLiquidationStep(assets)
		if !found {
			return true, nil
		}
		if _, err := g.applyLiquidation(p, auto); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (g *Game) liquidationAssets(p *Player) ([]LiquidationAsset, error) {
	owned, err := g.Ledger.OwnedBy(p.Account)
	if err != nil {
		return nil, err
	}
	assets := make([]LiquidationAsset, 0, len(owned))
	for _, index := range owned {
		houses, err := g.Ledger.HouseCount(index)
		if err != nil {
			return nil, err
		}
		hotel, err := g.Ledger.HasHotel(index)
		if err != nil {
			return nil, err
		}
		mortgaged, err := g.Ledger.IsMortgaged(index)
		if err != nil {
			return nil, err
		}
		assets = append(assets, LiquidationAsset{
			Index:     index,
			Space:     g.Board.SpaceAt(index),
			Houses:    houses,
			Hotel:     hotel,
			Mortgaged: mortgaged,
		})
	}
	return assets, nil
}

// applyLiquidation runs one step against the ledger. Sold units return
// half their purchase price, mortgaging returns the mortgage value.
func (g *Game) applyLiquidation(p *Player, step LiquidationStep) (bool, error) {
	space := g.Board.SpaceAt(step.Index)
	switch step.Action {
	case LiquidationSellHouses:
		if step.Houses <= 0 {
			return false, nil
		}
		return g.Ledger.SellHouses(p.Account, step.Index, step.Houses, step.Houses*space.HousePrice/2)
	case LiquidationSellHotel:
		return g.Ledger.SellHotel(p.Account, step.Index, space.HousePrice/2)
	case LiquidationMortgage:
		return g.Ledger.Mortgage(p.Account, step.Index, space.MortgageValue())
	}
	return false, nil
}

// autoLiquidationStep picks the first productive step in board order:
// hotels first, then houses, then mortgages.
func autoLiquidationStep(assets []LiquidationAsset) (LiquidationStep, bool) {
	for _, asset := range assets {
		if asset.Hotel {
			return LiquidationStep{Action: LiquidationSellHotel, Index: asset.Index}, true
		}
	}
	for _, asset := range assets {
		if asset.Houses > 0 && !asset.Hotel {
			return LiquidationStep{Action: LiquidationSellHouses, Index: asset.Index, Houses: asset.Houses}, true
		}
	}
	for _, asset := range assets {
		if !asset.Mortgaged && asset.Houses == 0 && !asset.Hotel {
			return LiquidationStep{Action: LiquidationMortgage, Index: asset.Index}, true
		}
	}
	return LiquidationStep{}, false
}
