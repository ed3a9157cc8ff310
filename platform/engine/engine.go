package engine

import (
	"math/rand"

	"github.com/DedS3t/monopoly-ledger/app/models"
	"github.com/DedS3t/monopoly-ledger/platform/board"
	"github.com/DedS3t/monopoly-ledger/platform/draw"
	"github.com/DedS3t/monopoly-ledger/platform/ledger"
	"github.com/sirupsen/logrus"
)

const (
	jailIndex     = 10
	goToJailIndex = 30
	passGoAmount  = 200
	luxuryTax     = 75
	incomeTaxFlat = 200
	startBalance  = 1500
)

var stationIndices = []int{5, 15, 25, 35}

// Game drives one table: board, decks, seated players and the ledger
// that holds all money and ownership. Turns are strictly sequential.
type Game struct {
	Board   *board.Board
	Draw    *draw.Draw
	Ledger  ledger.Ledger
	Bank    ledger.Account
	Players []*Player

	// Dice is injectable so tests can force roll sequences.
	Dice func() (int, int)
	// OnEvent, when set, receives every observable turn event. The
	// socket layer broadcasts these to the room.
	OnEvent func(kind string, data map[string]interface{})

	banker *Player
	log    *logrus.Entry
}

// New seeds the ledger with the starting balances and bank-owned
// properties and returns a ready game.
func New(b *board.Board, d *draw.Draw, l ledger.Ledger, bank ledger.Account, players []*Player, rng *rand.Rand, log *logrus.Entry) (*Game, error) {
	accounts := make([]ledger.Account, 0, len(players))
	for _, p := range players {
		accounts = append(accounts, p.Account)
	}
	if err := l.InitAccounts(accounts, startBalance); err != nil {
		return nil, err
	}
	if err := l.InitProperties(b.AllOwnableIndices(), bank); err != nil {
		return nil, err
	}
	g := &Game{
		Board:   b,
		Draw:    d,
		Ledger:  l,
		Bank:    bank,
		Players: players,
		banker:  &Player{Name: "Banker", Account: bank},
		log:     log,
	}
	g.Dice = func() (int, int) {
		return rng.Intn(6) + 1, rng.Intn(6) + 1
	}
	return g, nil
}

func (g *Game) emit(kind string, data map[string]interface{}) {
	if g.OnEvent != nil {
		g.OnEvent(kind, data)
	}
}

// ServeTurn plays one full turn for p, doubles chain included. The
// decider answers every choice the turn runs into.
func (g *Game) ServeTurn(p *Player, d Decider) error {
	if p.State != Active {
		return nil
	}
	return g.serveTurn(p, d, 0)
}

func (g *Game) serveTurn(p *Player, d Decider, numDoubles int) error {
	d1, d2 := g.Dice()
	g.log.Infof("%s rolled (%d,%d)", p.Name, d1, d2)
	g.emit("rolled", map[string]interface{}{"player": p.Name, "d1": d1, "d2": d2})

	// Third consecutive doubles, straight to jail, no movement and no
	// space resolution.
	if numDoubles == 2 && d1 == d2 {
		g.goToJail(p)
		return nil
	}
	if p.InJail {
		return g.serveJail(p, d, d1, d2)
	}
	if err := g.serveNormally(p, d, d1, d2); err != nil {
		return err
	}
	if d1 == d2 && !p.InJail && p.State == Active {
		return g.serveTurn(p, d, numDoubles+1)
	}
	return nil
}

// serveJail handles a jailed player's roll: released on doubles or on
// the third attempt, the counter resets either way and the releasing
// roll is consumed by the move, with no doubles chain after it.
func (g *Game) serveJail(p *Player, d Decider, d1, d2 int) error {
	p.JailRolls++
	if d1 == d2 || p.JailRolls == 3 {
		p.JailRolls = 0
		p.InJail = false
		g.log.Infof("%s got out of jail", p.Name)
		g.emit("jail-out", map[string]interface{}{"player": p.Name})
		return g.serveNormally(p, d, d1, d2)
	}
	g.log.Infof("%s is still in jail", p.Name)
	return nil
}

func (g *Game) serveNormally(p *Player, d Decider, d1, d2 int) error {
	newPosition := (p.Position + d1 + d2) % models.BoardSize
	jailed, err := g.moveTo(p, newPosition)
	if err != nil {
		return err
	}
	if jailed {
		return nil
	}

	space := g.Board.SpaceAt(p.Position)
	g.log.Infof("%s landed on %s", p.Name, space.Name)
	g.emit("landed", map[string]interface{}{"player": p.Name, "space": space.Name, "index": space.Index})

	switch space.Kind {
	case models.KindDraw:
		return g.serveDraw(p, d, space)
	case models.KindSpecial:
		return g.serveSpecial(p, d, space)
	default:
		return g.serveOwnable(p, d, space, 0, d1+d2)
	}
}

// moveTo relocates the player, paying Go on a wrap and routing index 30
// through the jail transition. Reports whether the player was jailed.
func (g *Game) moveTo(p *Player, index int) (bool, error) {
	if index < p.Position {
		outcome, err := g.Pay(g.banker, p, passGoAmount, false, nil)
		if err != nil {
			return false, err
		}
		if outcome == Paid {
			g.log.Infof("%s passed Go", p.Name)
			g.emit("passed-go", map[string]interface{}{"player": p.Name})
		} else {
			g.log.Warnf("bank could not pay %s for passing Go", p.Name)
		}
	}
	if index == goToJailIndex {
		g.goToJail(p)
		return true, nil
	}
	p.Position = index
	return false, nil
}

func (g *Game) goToJail(p *Player) {
	p.InJail = true
	p.Position = jailIndex
	g.log.Infof("%s went to jail", p.Name)
	g.emit("jailed", map[string]interface{}{"player": p.Name})
}

func (g *Game) serveSpecial(p *Player, d Decider, space models.Space) error {
	switch space.Name {
	case models.SpaceIncomeTax:
		assets, err := g.TotalAssetValue(p)
		if err != nil {
			return err
		}
		amount := incomeTaxFlat
		if d.TaxByPercent(assets) {
			amount = assets / 10
		}
		_, err = g.Pay(p, g.banker, amount, true, d)
		return err
	case models.SpaceLuxuryTax:
		_, err := g.Pay(p, g.banker, luxuryTax, true, d)
		return err
	}
	// Go, Free Parking, Jail (just visiting): nothing happens.
	return nil
}

func (g *Game) serveDraw(p *Player, d Decider, space models.Space) error {
	card := g.Draw.DrawCard(space.DrawType)
	g.log.Infof("%s drew: %s", p.Name, card.Description)
	g.emit("card", map[string]interface{}{"player": p.Name, "card": card.Name, "description": card.Description})
	return g.applyCard(p, d, card)
}

func (g *Game) applyCard(p *Player, d Decider, card models.Card) error {
	switch card.Effect {
	case models.EffectPay:
		_, err := g.Pay(p, g.banker, card.Amount, true, d)
		return err
	case models.EffectPayAll:
		// Each payment independently; an earlier liquidation does not
		// block a later payment, but a bankrupt payer has nothing left.
		for _, other := range g.Players {
			if other == p || other.State != Active {
				continue
			}
			if p.State != Active {
				break
			}
			if _, err := g.Pay(p, other, card.Amount, true, d); err != nil {
				return err
			}
		}
		return nil
	case models.EffectReceive:
		outcome, err := g.Pay(g.banker, p, card.Amount, false, nil)
		if err != nil {
			return err
		}
		if outcome == Declined {
			g.log.Warnf("bank declined paying %s $%d", p.Name, card.Amount)
		}
		return nil
	case models.EffectReceiveAll:
		for _, other := range g.Players {
			if other == p || other.State != Active {
				continue
			}
			outcome, err := g.Pay(other, p, card.Amount, false, nil)
			if err != nil {
				return err
			}
			if outcome == Declined {
				g.log.Infof("%s declined paying %s $%d", other.Name, p.Name, card.Amount)
			}
		}
		return nil
	case models.EffectMove:
		return g.serveCardMove(p, d, card)
	case models.EffectSpecial:
		return g.serveCardSpecial(p, d, card)
	}
	return nil
}

// serveCardMove relocates per the card. Only ownable destinations are
// resolved further, a Draw or Special space reached by card stays
// inert.
func (g *Game) serveCardMove(p *Player, d Decider, card models.Card) error {
	if card.Name == models.CardGoToJail {
		g.goToJail(p)
		return nil
	}
	jailed, err := g.moveTo(p, card.TargetIndex)
	if err != nil || jailed {
		return err
	}
	space := g.Board.SpaceAt(p.Position)
	if !space.Ownable() {
		return nil
	}
	return g.serveOwnable(p, d, space, 0, 0)
}

func (g *Game) serveCardSpecial(p *Player, d Decider, card models.Card) error {
	switch card.Name {
	case models.CardStreetRepairs, models.CardPropertyRepairs:
		total, err := g.repairsBill(p, card)
		if err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		_, err = g.Pay(p, g.banker, total, true, d)
		return err
	case models.CardAdvanceUtility:
		target := 12
		if abs(p.Position-12) >= abs(p.Position-28) {
			target = 28
		}
		return g.advanceAndResolve(p, d, target, card.Multiplier)
	case models.CardAdvanceRail1, models.CardAdvanceRail2:
		target := 35
		if p.Position == 7 {
			target = 5
		} else if p.Position == 22 {
			target = 25
		}
		return g.advanceAndResolve(p, d, target, card.Multiplier)
	}
	return nil
}

// repairsBill sums the per-unit fees over every improved space the
// player owns. A hoteled space is billed the hotel fee only, the house
// count behind the hotel is not charged again.
func (g *Game) repairsBill(p *Player, card models.Card) (int, error) {
	owned, err := g.Ledger.OwnedBy(p.Account)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, index := range owned {
		if g.Board.SpaceAt(index).Kind != models.KindProperty {
			continue
		}
		hotel, err := g.Ledger.HasHotel(index)
		if err != nil {
			return 0, err
		}
		if hotel {
			total += card.HotelFee
			continue
		}
		houses, err := g.Ledger.HouseCount(index)
		if err != nil {
			return 0, err
		}
		total += houses * card.HouseFee
	}
	return total, nil
}

func (g *Game) advanceAndResolve(p *Player, d Decider, target, multiplier int) error {
	jailed, err := g.moveTo(p, target)
	if err != nil || jailed {
		return err
	}
	space := g.Board.SpaceAt(p.Position)
	g.log.Infof("%s moved to %s", p.Name, space.Name)
	return g.serveOwnable(p, d, space, multiplier, 0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
