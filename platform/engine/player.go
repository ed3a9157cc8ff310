package engine

import (
	"github.com/DedS3t/monopoly-ledger/app/models"
	"github.com/DedS3t/monopoly-ledger/platform/ledger"
)

type State int

const (
	Active State = iota
	Bankrupt // terminal, the player is skipped for the rest of the game
)

// Player is the per-seat turn state. Balances and ownership live in the
// ledger, never here.
type Player struct {
	Name      string
	Account   ledger.Account
	Position  int
	InJail    bool
	JailRolls int
	State     State
}

func NewPlayer(name string, account ledger.Account) *Player {
	return &Player{Name: name, Account: account}
}

type PayOutcome int

const (
	Paid PayOutcome = iota
	Declined
	Liquidated // paid, but only after forced liquidation
	WentBankrupt
)

// TotalAssetValue is balance plus the value of every owned space: the
// mortgage value when mortgaged, otherwise the price plus house and
// hotel units at the house price. Pure query.
func (g *Game) TotalAssetValue(p *Player) (int, error) {
	assets, err := g.Ledger.BalanceOf(p.Account)
	if err != nil {
		return 0, err
	}
	owned, err := g.Ledger.OwnedBy(p.Account)
	if err != nil {
		return 0, err
	}
	for _, index := range owned {
		space := g.Board.SpaceAt(index)
		mortgaged, err := g.Ledger.IsMortgaged(index)
		if err != nil {
			return 0, err
		}
		if mortgaged {
			assets += space.MortgageValue()
			continue
		}
		assets += space.Price
		if space.Kind == models.KindProperty {
			houses, err := g.Ledger.HouseCount(index)
			if err != nil {
				return 0, err
			}
			hotel, err := g.Ledger.HasHotel(index)
			if err != nil {
				return 0, err
			}
			units := houses
			if hotel {
				units++
			}
			assets += units * space.HousePrice
		}
	}
	return assets, nil
}

// Pay moves amount from payer to payee. A non-critical failure is a
// plain decline with no state change. A critical failure triggers the
// payer's liquidation policy, and bankruptcy when even the full asset
// value cannot cover the amount.
func (g *Game) Pay(payer, payee *Player, amount int, critical bool, d Decider) (PayOutcome, error) {
	ok, err := g.Ledger.Transfer(payer.Account, payee.Account, amount)
	if err != nil {
		return Declined, err
	}
	if ok {
		g.emit("paid", map[string]interface{}{"from": payer.Name, "to": payee.Name, "amount": amount})
		return Paid, nil
	}
	if !critical {
		g.log.Debugf("%s could not pay %s $%d, insufficient funds", payer.Name, payee.Name, amount)
		return Declined, nil
	}

	assets, err := g.TotalAssetValue(payer)
	if err != nil {
		return Declined, err
	}
	if assets < amount {
		if err := g.transferAllAssets(payer, payee); err != nil {
			return Declined, err
		}
		payer.State = Bankrupt
		g.log.Infof("%s cannot pay $%d and is bankrupt, %s takes all assets", payer.Name, amount, payee.Name)
		g.emit("bankrupt", map[string]interface{}{"player": payer.Name, "to": payee.Name})
		return WentBankrupt, nil
	}

	bankrupt, err := g.liquidate(payer, amount, d)
	if err != nil {
		return Declined, err
	}
	if bankrupt {
		if err := g.transferAllAssets(payer, payee); err != nil {
			return Declined, err
		}
		payer.State = Bankrupt
		g.emit("bankrupt", map[string]interface{}{"player": payer.Name, "to": payee.Name})
		return WentBankrupt, nil
	}

	// Single retry after liquidation, never a loop.
	ok, err = g.Ledger.Transfer(payer.Account, payee.Account, amount)
	if err != nil {
		return Declined, err
	}
	if !ok {
		// Liquidation stopped short of the target even though every
		// option was driven to exhaustion; treat as insolvency.
		if err := g.transferAllAssets(payer, payee); err != nil {
			return Declined, err
		}
		payer.State = Bankrupt
		g.emit("bankrupt", map[string]interface{}{"player": payer.Name, "to": payee.Name})
		return WentBankrupt, nil
	}
	g.emit("paid", map[string]interface{}{"from": payer.Name, "to": payee.Name, "amount": amount})
	return Liquidated, nil
}

// transferAllAssets hands the payer's full balance and every owned
// space (at zero price, improvements included) to the payee.
func (g *Game) transferAllAssets(payer, payee *Player) error {
	balance, err := g.Ledger.BalanceOf(payer.Account)
	if err != nil {
		return err
	}
	if balance > 0 {
		if _, err := g.Ledger.Transfer(payer.Account, payee.Account, balance); err != nil {
			return err
		}
	}
	owned, err := g.Ledger.OwnedBy(payer.Account)
	if err != nil {
		return err
	}
	for _, index := range owned {
		if _, err := g.Ledger.ChangeOwnership(payer.Account, payee.Account, index, 0); err != nil {
			return err
		}
	}
	return nil
}
