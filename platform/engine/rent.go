package engine

import (
	"github.com/DedS3t/monopoly-ledger/app/models"
	"github.com/DedS3t/monopoly-ledger/platform/ledger"
)

// serveOwnable resolves landing on a buyable space. multiplier is the
// card override (10 for utilities, 2 for stations), 0 for a normal
// landing. diceSum is the movement roll, 0 when the player arrived by
// card.
func (g *Game) serveOwnable(p *Player, d Decider, space models.Space, multiplier, diceSum int) error {
	owner, err := g.Ledger.OwnerOf(space.Index)
	if err != nil {
		return err
	}
	switch owner {
	case g.Bank:
		return g.serveUnowned(p, d, space)
	case p.Account:
		return g.serveOwnVisit(p, d, space)
	default:
		return g.serveRent(p, d, space, owner, multiplier, diceSum)
	}
}

func (g *Game) serveUnowned(p *Player, d Decider, space models.Space) error {
	balance, err := g.Ledger.BalanceOf(p.Account)
	if err != nil {
		return err
	}
	if !d.BuyProperty(space, balance) {
		return nil
	}
	ok, err := g.Ledger.ChangeOwnership(g.Bank, p.Account, space.Index, space.Price)
	if err != nil {
		return err
	}
	if !ok {
		g.log.Infof("%s could not buy %s", p.Name, space.Name)
		return nil
	}
	g.log.Infof("%s bought %s for $%d", p.Name, space.Name, space.Price)
	g.emit("bought", map[string]interface{}{"player": p.Name, "space": space.Name, "price": space.Price})
	return nil
}

// serveOwnVisit offers to lift a mortgage, or to build on the group
// when the visit confirms a monopoly.
func (g *Game) serveOwnVisit(p *Player, d Decider, space models.Space) error {
	mortgaged, err := g.Ledger.IsMortgaged(space.Index)
	if err != nil {
		return err
	}
	if mortgaged {
		balance, err := g.Ledger.BalanceOf(p.Account)
		if err != nil {
			return err
		}
		if !d.UnMortgage(space, balance) {
			return nil
		}
		ok, err := g.Ledger.UnMortgage(p.Account, space.Index, space.MortgageValue())
		if err != nil {
			return err
		}
		if ok {
			g.log.Infof("%s lifted the mortgage on %s", p.Name, space.Name)
			g.emit("unmortgaged", map[string]interface{}{"player": p.Name, "space": space.Name})
		}
		return nil
	}
	if space.Kind != models.KindProperty {
		return nil
	}
	monopoly, err := g.hasMonopoly(p.Account, space.Group)
	if err != nil {
		return err
	}
	if !monopoly {
		return nil
	}
	for _, index := range g.Board.MonopolyGroup(space.Group) {
		if err := g.serveHousesHotels(p, d, index); err != nil {
			return err
		}
	}
	return nil
}

// serveHousesHotels runs one build round on a monopoly space the way
// the owner asks for it. Decider mistakes are skipped, only ledger
// failures abort the turn.
func (g *Game) serveHousesHotels(p *Player, d Decider, index int) error {
	space := g.Board.SpaceAt(index)
	houses, err := g.Ledger.HouseCount(index)
	if err != nil {
		return err
	}
	hotel, err := g.Ledger.HasHotel(index)
	if err != nil {
		return err
	}
	balance, err := g.Ledger.BalanceOf(p.Account)
	if err != nil {
		return err
	}
	if hotel {
		return nil
	}
	if houses < 4 {
		amount := d.BuyHouses(space, houses, balance)
		if amount <= 0 {
			return nil
		}
		if houses+amount > 4 {
			g.log.Infof("%s asked for %d houses on %s, over the limit", p.Name, amount, space.Name)
			return nil
		}
		ok, err := g.Ledger.BuyHouses(p.Account, index, amount, amount*space.HousePrice)
		if err != nil {
			return err
		}
		if ok {
			g.log.Infof("%s built %d houses on %s", p.Name, amount, space.Name)
			g.emit("built", map[string]interface{}{"player": p.Name, "space": space.Name, "houses": amount})
		}
		return nil
	}
	if !d.BuyHotel(space, balance) {
		return nil
	}
	ok, err := g.Ledger.BuyHotel(p.Account, index, space.HousePrice)
	if err != nil {
		return err
	}
	if ok {
		g.log.Infof("%s built a hotel on %s", p.Name, space.Name)
		g.emit("built", map[string]interface{}{"player": p.Name, "space": space.Name, "hotel": true})
	}
	return nil
}

func (g *Game) serveRent(p *Player, d Decider, space models.Space, owner ledger.Account, multiplier, diceSum int) error {
	mortgaged, err := g.Ledger.IsMortgaged(space.Index)
	if err != nil {
		return err
	}
	if mortgaged {
		g.log.Infof("%s is mortgaged, no rent due", space.Name)
		return nil
	}
	rent, err := g.computeRent(space, owner, multiplier, diceSum)
	if err != nil {
		return err
	}
	ownerPlayer := g.playerByAccount(owner)
	if ownerPlayer == nil {
		return nil
	}
	g.log.Infof("%s owes %s $%d rent for %s", p.Name, ownerPlayer.Name, rent, space.Name)
	g.emit("rent", map[string]interface{}{"player": p.Name, "owner": ownerPlayer.Name, "amount": rent, "space": space.Name})
	_, err = g.Pay(p, ownerPlayer, rent, true, d)
	return err
}

func (g *Game) computeRent(space models.Space, owner ledger.Account, multiplier, diceSum int) (int, error) {
	switch space.Kind {
	case models.KindUtility:
		if diceSum == 0 {
			// Arrived by card, the rent roll happens on the spot.
			d1, d2 := g.Dice()
			diceSum = d1 + d2
		}
		other := 28
		if space.Index == 28 {
			other = 12
		}
		otherOwner, err := g.Ledger.OwnerOf(other)
		if err != nil {
			return 0, err
		}
		if otherOwner == owner || multiplier == 10 {
			return diceSum * 10, nil
		}
		return diceSum * 4, nil
	case models.KindStation:
		if multiplier == 2 {
			// Card override, flat double rent no matter the holdings.
			return space.StandardRent * 2, nil
		}
		count := 0
		for _, index := range stationIndices {
			stationOwner, err := g.Ledger.OwnerOf(index)
			if err != nil {
				return 0, err
			}
			if stationOwner == owner {
				count++
			}
		}
		return space.StandardRent * count, nil
	default:
		houses, err := g.Ledger.HouseCount(space.Index)
		if err != nil {
			return 0, err
		}
		hotel, err := g.Ledger.HasHotel(space.Index)
		if err != nil {
			return 0, err
		}
		if hotel {
			return space.HotelRent, nil
		}
		if houses > 0 {
			return space.HouseRents[houses-1], nil
		}
		monopoly, err := g.hasMonopoly(owner, space.Group)
		if err != nil {
			return 0, err
		}
		if monopoly {
			return space.StandardRent * 2, nil
		}
		return space.StandardRent, nil
	}
}

// hasMonopoly re-queries the ledger for every space of the group, the
// engine never caches ownership.
func (g *Game) hasMonopoly(owner ledger.Account, group string) (bool, error) {
	for _, index := range g.Board.MonopolyGroup(group) {
		spaceOwner, err := g.Ledger.OwnerOf(index)
		if err != nil {
			return false, err
		}
		if spaceOwner != owner {
			return false, nil
		}
	}
	return true, nil
}

func (g *Game) playerByAccount(account ledger.Account) *Player {
	for _, p := range g.Players {
		if p.Account == account {
			return p
		}
	}
	return nil
}
