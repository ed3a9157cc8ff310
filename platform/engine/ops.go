package engine

import (
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-ledger/app/models"
)

// Rejected commands. All wrap ErrInvalidCommand and leave the ledger
// untouched.
var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrNotOwner       = fmt.Errorf("%w: not the owner of the space", ErrInvalidCommand)
	ErrNoMonopoly     = fmt.Errorf("%w: no monopoly on the color group", ErrInvalidCommand)
	ErrNotBuildable   = fmt.Errorf("%w: space cannot hold houses", ErrInvalidCommand)
	ErrTooManyHouses  = fmt.Errorf("%w: more than four houses on a space", ErrInvalidCommand)
	ErrHotelPresent   = fmt.Errorf("%w: space already has a hotel", ErrInvalidCommand)
	ErrNeedFourHouses = fmt.Errorf("%w: a hotel needs four houses first", ErrInvalidCommand)
	ErrNothingToSell  = fmt.Errorf("%w: nothing to sell", ErrInvalidCommand)
	ErrMortgaged      = fmt.Errorf("%w: space is mortgaged", ErrInvalidCommand)
	ErrNotMortgaged   = fmt.Errorf("%w: space is not mortgaged", ErrInvalidCommand)
	ErrImproved       = fmt.Errorf("%w: sell houses and hotel before mortgaging", ErrInvalidCommand)
	ErrDeclinedFunds  = fmt.Errorf("%w: insufficient funds", ErrInvalidCommand)
	ErrPlayerDone     = fmt.Errorf("%w: player is bankrupt", ErrInvalidCommand)
)

// checkBuildable validates ownership and monopoly for the build and
// sell commands.
func (g *Game) checkBuildable(p *Player, index int) (models.Space, error) {
	space := g.Board.SpaceAt(index)
	if space.Kind != models.KindProperty {
		return space, ErrNotBuildable
	}
	owner, err := g.Ledger.OwnerOf(index)
	if err != nil {
		return space, err
	}
	if owner != p.Account {
		return space, ErrNotOwner
	}
	monopoly, err := g.hasMonopoly(p.Account, space.Group)
	if err != nil {
		return space, err
	}
	if !monopoly {
		return space, ErrNoMonopoly
	}
	return space, nil
}

// BuyHousesAt buys amount houses on the space, monopoly-gated.
func (g *Game) BuyHousesAt(p *Player, index, amount int) error {
	space, err := g.checkBuildable(p, index)
	if err != nil {
		return err
	}
	houses, err := g.Ledger.HouseCount(index)
	if err != nil {
		return err
	}
	hotel, err := g.Ledger.HasHotel(index)
	if err != nil {
		return err
	}
	if hotel {
		return ErrHotelPresent
	}
	if amount <= 0 || houses+amount > 4 {
		return ErrTooManyHouses
	}
	ok, err := g.Ledger.BuyHouses(p.Account, index, amount, amount*space.HousePrice)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclinedFunds
	}
	g.emit("built", map[string]interface{}{"player": p.Name, "space": space.Name, "houses": amount})
	return nil
}

// BuyHotelAt puts a hotel on a space carrying four houses.
func (g *Game) BuyHotelAt(p *Player, index int) error {
	space, err := g.checkBuildable(p, index)
	if err != nil {
		return err
	}
	houses, err := g.Ledger.HouseCount(index)
	if err != nil {
		return err
	}
	hotel, err := g.Ledger.HasHotel(index)
	if err != nil {
		return err
	}
	if hotel {
		return ErrHotelPresent
	}
	if houses != 4 {
		return ErrNeedFourHouses
	}
	ok, err := g.Ledger.BuyHotel(p.Account, index, space.HousePrice)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclinedFunds
	}
	g.emit("built", map[string]interface{}{"player": p.Name, "space": space.Name, "hotel": true})
	return nil
}

// SellHousesAt sells houses back at half the unit price.
func (g *Game) SellHousesAt(p *Player, index, amount int) error {
	space := g.Board.SpaceAt(index)
	owner, err := g.Ledger.OwnerOf(index)
	if err != nil {
		return err
	}
	if owner != p.Account {
		return ErrNotOwner
	}
	houses, err := g.Ledger.HouseCount(index)
	if err != nil {
		return err
	}
	hotel, err := g.Ledger.HasHotel(index)
	if err != nil {
		return err
	}
	if hotel {
		return ErrHotelPresent
	}
	if amount <= 0 || houses < amount {
		return ErrNothingToSell
	}
	ok, err := g.Ledger.SellHouses(p.Account, index, amount, amount*space.HousePrice/2)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNothingToSell
	}
	return nil
}

// SellHotelAt sells the hotel back at half the unit price. The four
// houses behind it stay on the space.
func (g *Game) SellHotelAt(p *Player, index int) error {
	space := g.Board.SpaceAt(index)
	owner, err := g.Ledger.OwnerOf(index)
	if err != nil {
		return err
	}
	if owner != p.Account {
		return ErrNotOwner
	}
	hotel, err := g.Ledger.HasHotel(index)
	if err != nil {
		return err
	}
	if !hotel {
		return ErrNothingToSell
	}
	ok, err := g.Ledger.SellHotel(p.Account, index, space.HousePrice/2)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNothingToSell
	}
	return nil
}

// MortgageAt mortgages a clean space for half its price.
func (g *Game) MortgageAt(p *Player, index int) error {
	space := g.Board.SpaceAt(index)
	owner, err := g.Ledger.OwnerOf(index)
	if err != nil {
		return err
	}
	if owner != p.Account {
		return ErrNotOwner
	}
	mortgaged, err := g.Ledger.IsMortgaged(index)
	if err != nil {
		return err
	}
	if mortgaged {
		return ErrMortgaged
	}
	houses, err := g.Ledger.HouseCount(index)
	if err != nil {
		return err
	}
	hotel, err := g.Ledger.HasHotel(index)
	if err != nil {
		return err
	}
	if houses > 0 || hotel {
		return ErrImproved
	}
	ok, err := g.Ledger.Mortgage(p.Account, index, space.MortgageValue())
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclinedFunds
	}
	g.emit("mortgaged", map[string]interface{}{"player": p.Name, "space": space.Name})
	return nil
}

// UnMortgageAt lifts a mortgage for the same value it paid out.
func (g *Game) UnMortgageAt(p *Player, index int) error {
	space := g.Board.SpaceAt(index)
	owner, err := g.Ledger.OwnerOf(index)
	if err != nil {
		return err
	}
	if owner != p.Account {
		return ErrNotOwner
	}
	mortgaged, err := g.Ledger.IsMortgaged(index)
	if err != nil {
		return err
	}
	if !mortgaged {
		return ErrNotMortgaged
	}
	ok, err := g.Ledger.UnMortgage(p.Account, index, space.MortgageValue())
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclinedFunds
	}
	g.emit("unmortgaged", map[string]interface{}{"player": p.Name, "space": space.Name})
	return nil
}

// Trade sells an owned space to another player at an agreed price. The
// buyer's acceptance is an explicit input.
func (g *Game) Trade(seller, buyer *Player, index, price int, accepted bool) error {
	if seller.State != Active || buyer.State != Active {
		return ErrPlayerDone
	}
	owner, err := g.Ledger.OwnerOf(index)
	if err != nil {
		return err
	}
	if owner != seller.Account {
		return ErrNotOwner
	}
	if !accepted {
		g.log.Infof("%s rejected the offer for %s", buyer.Name, g.Board.SpaceAt(index).Name)
		return nil
	}
	ok, err := g.Ledger.ChangeOwnership(seller.Account, buyer.Account, index, price)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclinedFunds
	}
	g.log.Infof("%s traded %s to %s for $%d", seller.Name, g.Board.SpaceAt(index).Name, buyer.Name, price)
	g.emit("traded", map[string]interface{}{"seller": seller.Name, "buyer": buyer.Name, "index": index, "price": price})
	return nil
}
