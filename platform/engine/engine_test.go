package engine

import (
	"errors"
	"io/ioutil"
	"math/rand"
	"testing"

	"github.com/DedS3t/monopoly-ledger/app/models"
	"github.com/DedS3t/monopoly-ledger/platform/board"
	"github.com/DedS3t/monopoly-ledger/platform/draw"
	"github.com/DedS3t/monopoly-ledger/platform/ledger"
	"github.com/sirupsen/logrus"
)

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logrus.NewEntry(logger)
}

func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	b := board.Load("../board/spaces.json")
	decks := draw.Load("../draw/cards.json", rng)

	players := make([]*Player, 0, len(names))
	for _, name := range names {
		players = append(players, NewPlayer(name, ledger.Account(name)))
	}
	g, err := New(b, decks, ledger.NewMemory(), "banker", players, rng, testLog())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// script replaces the dice with a forced roll sequence; running past
// the end fails the test.
func script(t *testing.T, g *Game, rolls ...[2]int) {
	t.Helper()
	i := 0
	g.Dice = func() (int, int) {
		if i >= len(rolls) {
			t.Fatalf("dice rolled %d times, only %d scripted", i+1, len(rolls))
		}
		roll := rolls[i]
		i++
		return roll[0], roll[1]
	}
}

func balance(t *testing.T, g *Game, p *Player) int {
	t.Helper()
	b, err := g.Ledger.BalanceOf(p.Account)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// give hands a player a space straight from the bank at no cost.
func give(t *testing.T, g *Game, p *Player, indices ...int) {
	t.Helper()
	for _, index := range indices {
		ok, err := g.Ledger.ChangeOwnership(g.Bank, p.Account, index, 0)
		if err != nil || !ok {
			t.Fatalf("could not hand space %d to %s: ok=%v err=%v", index, p.Name, ok, err)
		}
	}
}

func TestThreeDoublesGoToJail(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	script(t, g, [2]int{2, 2}, [2]int{3, 3}, [2]int{4, 4})

	if err := g.ServeTurn(p1, &TurnDecisions{}); err != nil {
		t.Fatal(err)
	}
	if !p1.InJail {
		t.Error("three consecutive doubles should jail the player")
	}
	if p1.Position != 10 {
		t.Errorf("position = %d, want 10", p1.Position)
	}
	// Rolls one and two resolved normally (Income Tax at 4, just
	// visiting at 10); the third must not have resolved any space.
	if got := balance(t, g, p1); got != 1300 {
		t.Errorf("balance = %d, want 1300 (flat income tax only)", got)
	}
}

func TestPassGoCreditsTwoHundred(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	p1.Position = 36
	script(t, g, [2]int{3, 4})

	if err := g.ServeTurn(p1, &TurnDecisions{}); err != nil {
		t.Fatal(err)
	}
	if p1.Position != 3 {
		t.Errorf("position = %d, want 3", p1.Position)
	}
	if got := balance(t, g, p1); got != 1700 {
		t.Errorf("balance = %d, want 1700 after passing Go", got)
	}
}

func TestMonopolyGatesHousePurchase(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	give(t, g, p1, 6, 8) // two of the three lightblue spaces

	err := g.BuyHousesAt(p1, 6, 1)
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("house purchase without monopoly: err = %v, want InvalidCommand", err)
	}
	if houses, _ := g.Ledger.HouseCount(6); houses != 0 {
		t.Errorf("rejected purchase still built %d houses", houses)
	}

	give(t, g, p1, 9)
	if err := g.BuyHousesAt(p1, 6, 1); err != nil {
		t.Fatalf("house purchase with full group failed: %v", err)
	}
	if houses, _ := g.Ledger.HouseCount(6); houses != 1 {
		t.Errorf("houses = %d, want 1", houses)
	}
}

func TestBankruptcyTransfersEverything(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p1, 1, 3)
	priorBalance := balance(t, g, p1)
	priorP2 := balance(t, g, p2)

	outcome, err := g.Pay(p1, p2, 5000, true, &TurnDecisions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != WentBankrupt {
		t.Fatalf("outcome = %v, want WentBankrupt", outcome)
	}
	if p1.State != Bankrupt {
		t.Error("payer should be bankrupt")
	}
	if got := balance(t, g, p2); got != priorP2+priorBalance {
		t.Errorf("payee balance = %d, want %d", got, priorP2+priorBalance)
	}
	if got := balance(t, g, p1); got != 0 {
		t.Errorf("payer balance = %d, want 0", got)
	}
	for _, index := range []int{1, 3} {
		owner, _ := g.Ledger.OwnerOf(index)
		if owner != p2.Account {
			t.Errorf("space %d owner = %s, want %s", index, owner, p2.Account)
		}
	}
	if next := g.NextPlayer(p2); next != p2 {
		t.Error("bankrupt player must be skipped in turn order")
	}
	if !g.GameOver() || g.Winner() != p2 {
		t.Error("last active player should win")
	}
}

// Two players, one station: buy, then rent, then the doubles extra
// turn.
func TestStationPurchaseThenRent(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]

	script(t, g, [2]int{1, 4})
	if err := g.ServeTurn(p1, &TurnDecisions{Buy: true}); err != nil {
		t.Fatal(err)
	}
	if got := balance(t, g, p1); got != 1300 {
		t.Errorf("p1 balance = %d, want 1300 after buying Reading Railroad", got)
	}
	owner, _ := g.Ledger.OwnerOf(5)
	if owner != p1.Account {
		t.Fatalf("owner of 5 = %s, want p1", owner)
	}

	script(t, g, [2]int{1, 4})
	if err := g.ServeTurn(p2, &TurnDecisions{}); err != nil {
		t.Fatal(err)
	}
	if got := balance(t, g, p2); got != 1475 {
		t.Errorf("p2 balance = %d, want 1475 after single-station rent", got)
	}
	if got := balance(t, g, p1); got != 1325 {
		t.Errorf("p1 balance = %d, want 1325 after collecting rent", got)
	}
}

func TestDoublesGrantExtraTurn(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]

	script(t, g, [2]int{3, 3}, [2]int{2, 1})
	if err := g.ServeTurn(p1, &TurnDecisions{}); err != nil {
		t.Fatal(err)
	}
	// 0 -> 6 on the doubles, then the extra roll carries to 9.
	if p1.Position != 9 {
		t.Errorf("position = %d, want 9 after the extra turn", p1.Position)
	}
}

func TestJailRollOut(t *testing.T) {
	t.Run("doubles release", func(t *testing.T) {
		g := newTestGame(t, "p1", "p2")
		p1 := g.Players[0]
		p1.InJail = true
		p1.Position = 10

		// The releasing doubles move the player but grant no extra
		// turn; a second roll would fail the script.
		script(t, g, [2]int{3, 3})
		if err := g.ServeTurn(p1, &TurnDecisions{}); err != nil {
			t.Fatal(err)
		}
		if p1.InJail {
			t.Error("doubles should release from jail")
		}
		if p1.Position != 16 {
			t.Errorf("position = %d, want 16", p1.Position)
		}
		if p1.JailRolls != 0 {
			t.Errorf("jail counter = %d, want 0", p1.JailRolls)
		}
	})

	t.Run("third attempt release", func(t *testing.T) {
		g := newTestGame(t, "p1", "p2")
		p1 := g.Players[0]
		p1.InJail = true
		p1.Position = 10

		script(t, g, [2]int{1, 2})
		g.ServeTurn(p1, &TurnDecisions{})
		if !p1.InJail || p1.JailRolls != 1 {
			t.Fatalf("after attempt 1: inJail=%v rolls=%d", p1.InJail, p1.JailRolls)
		}
		script(t, g, [2]int{1, 3})
		g.ServeTurn(p1, &TurnDecisions{})
		if !p1.InJail || p1.JailRolls != 2 {
			t.Fatalf("after attempt 2: inJail=%v rolls=%d", p1.InJail, p1.JailRolls)
		}
		script(t, g, [2]int{1, 4})
		if err := g.ServeTurn(p1, &TurnDecisions{}); err != nil {
			t.Fatal(err)
		}
		if p1.InJail {
			t.Error("third attempt should release")
		}
		if p1.Position != 15 {
			t.Errorf("position = %d, want 15", p1.Position)
		}
		if p1.JailRolls != 0 {
			t.Errorf("jail counter = %d, want 0", p1.JailRolls)
		}
	})
}

func TestRentTiers(t *testing.T) {
	landOn11 := func(t *testing.T, prep func(g *Game, owner *Player)) int {
		g := newTestGame(t, "p1", "p2")
		p1, p2 := g.Players[0], g.Players[1]
		prep(g, p1)
		before := balance(t, g, p2)
		script(t, g, [2]int{5, 6})
		if err := g.ServeTurn(p2, &TurnDecisions{}); err != nil {
			t.Fatal(err)
		}
		return before - balance(t, g, p2)
	}

	t.Run("standard", func(t *testing.T) {
		paid := landOn11(t, func(g *Game, owner *Player) {
			give(t, g, owner, 11)
		})
		if paid != 10 {
			t.Errorf("rent = %d, want standard 10", paid)
		}
	})

	t.Run("monopoly doubles base rent", func(t *testing.T) {
		paid := landOn11(t, func(g *Game, owner *Player) {
			give(t, g, owner, 11, 13, 14)
		})
		if paid != 20 {
			t.Errorf("rent = %d, want doubled 20", paid)
		}
	})

	t.Run("two houses", func(t *testing.T) {
		paid := landOn11(t, func(g *Game, owner *Player) {
			give(t, g, owner, 11, 13, 14)
			if ok, err := g.Ledger.BuyHouses(owner.Account, 11, 2, 200); err != nil || !ok {
				t.Fatalf("setup houses: ok=%v err=%v", ok, err)
			}
		})
		if paid != 150 {
			t.Errorf("rent = %d, want two-house 150", paid)
		}
	})

	t.Run("hotel", func(t *testing.T) {
		paid := landOn11(t, func(g *Game, owner *Player) {
			give(t, g, owner, 11, 13, 14)
			g.Ledger.BuyHouses(owner.Account, 11, 4, 400)
			if ok, err := g.Ledger.BuyHotel(owner.Account, 11, 100); err != nil || !ok {
				t.Fatalf("setup hotel: ok=%v err=%v", ok, err)
			}
		})
		if paid != 750 {
			t.Errorf("rent = %d, want hotel 750", paid)
		}
	})

	t.Run("mortgaged pays nothing", func(t *testing.T) {
		paid := landOn11(t, func(g *Game, owner *Player) {
			give(t, g, owner, 11)
			if ok, err := g.Ledger.Mortgage(owner.Account, 11, 70); err != nil || !ok {
				t.Fatalf("setup mortgage: ok=%v err=%v", ok, err)
			}
		})
		if paid != 0 {
			t.Errorf("rent = %d, want 0 on a mortgaged space", paid)
		}
	})
}

func TestStationRentScalesWithHoldings(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p1, 5, 15, 25)

	script(t, g, [2]int{1, 4})
	if err := g.ServeTurn(p2, &TurnDecisions{}); err != nil {
		t.Fatal(err)
	}
	if paid := 1500 - balance(t, g, p2); paid != 75 {
		t.Errorf("rent = %d, want 75 for three stations", paid)
	}
}

func TestUtilityRentBothOwned(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p1, 12, 28)

	// (6,6) lands on Electric Company, rent is ten times the roll,
	// then the doubles grant an extra roll.
	script(t, g, [2]int{6, 6}, [2]int{1, 2})
	if err := g.ServeTurn(p2, &TurnDecisions{}); err != nil {
		t.Fatal(err)
	}
	if paid := 1500 - balance(t, g, p2); paid != 120 {
		t.Errorf("rent = %d, want 120 (12 x 10)", paid)
	}
}

func TestIncomeTaxChoices(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		g := newTestGame(t, "p1", "p2")
		p1 := g.Players[0]
		script(t, g, [2]int{1, 3})
		if err := g.ServeTurn(p1, &TurnDecisions{}); err != nil {
			t.Fatal(err)
		}
		if got := balance(t, g, p1); got != 1300 {
			t.Errorf("balance = %d, want 1300 after flat tax", got)
		}
	})
	t.Run("percent", func(t *testing.T) {
		g := newTestGame(t, "p1", "p2")
		p1 := g.Players[0]
		script(t, g, [2]int{1, 3})
		if err := g.ServeTurn(p1, &TurnDecisions{TaxPercent: true}); err != nil {
			t.Fatal(err)
		}
		if got := balance(t, g, p1); got != 1350 {
			t.Errorf("balance = %d, want 1350 after 10%% of 1500", got)
		}
	})
}

func TestDeclinedPaymentChangesNothing(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p1, 1)

	outcome, err := g.Pay(p1, p2, 5000, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Declined {
		t.Fatalf("outcome = %v, want Declined", outcome)
	}
	if got := balance(t, g, p1); got != 1500 {
		t.Errorf("payer balance = %d, want untouched 1500", got)
	}
	if owner, _ := g.Ledger.OwnerOf(1); owner != p1.Account {
		t.Error("declined payment moved ownership")
	}
	if p1.State != Active {
		t.Error("declined payment must not bankrupt")
	}
}

func TestLiquidationCoversCriticalPayment(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p1, 1, 3)
	if ok, _ := g.Ledger.BuyHouses(p1.Account, 1, 4, 200); !ok {
		t.Fatal("setup: could not build houses")
	}
	// Drain to 50 in cash.
	if ok, _ := g.Ledger.Transfer(p1.Account, p2.Account, 1250); !ok {
		t.Fatal("setup: drain failed")
	}

	decisions := &TurnDecisions{Liquidation: []LiquidationStep{
		{Action: LiquidationSellHouses, Index: 1, Houses: 4},
	}}
	outcome, err := g.Pay(p1, p2, 150, true, decisions)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Liquidated {
		t.Fatalf("outcome = %v, want Liquidated", outcome)
	}
	if got := balance(t, g, p1); got != 0 {
		t.Errorf("payer balance = %d, want 0 (50 + 100 house sale - 150)", got)
	}
	if houses, _ := g.Ledger.HouseCount(1); houses != 0 {
		t.Errorf("houses = %d, want 0 after the sale", houses)
	}
	if p1.State != Active {
		t.Error("a covered critical payment must not bankrupt")
	}
}

func TestLiquidationFallsBackWhenOwnerStalls(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p1, 1)
	if ok, _ := g.Ledger.Transfer(p1.Account, p2.Account, 1480); !ok {
		t.Fatal("setup: drain failed")
	}

	// No liquidation steps supplied: the engine mortgages on its own.
	outcome, err := g.Pay(p1, p2, 40, true, &TurnDecisions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Liquidated {
		t.Fatalf("outcome = %v, want Liquidated", outcome)
	}
	if mortgaged, _ := g.Ledger.IsMortgaged(1); !mortgaged {
		t.Error("auto liquidation should have mortgaged the space")
	}
}

func TestCardMovePaysGoOnWrap(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	p1.Position = 20

	card := models.Card{Name: "Advance to Reading Railroad", Effect: models.EffectMove, TargetIndex: 5}
	if err := g.applyCard(p1, &TurnDecisions{Buy: true}, card); err != nil {
		t.Fatal(err)
	}
	if p1.Position != 5 {
		t.Errorf("position = %d, want 5", p1.Position)
	}
	// 1500 + 200 for Go - 200 purchase price.
	if got := balance(t, g, p1); got != 1500 {
		t.Errorf("balance = %d, want 1500", got)
	}
	if owner, _ := g.Ledger.OwnerOf(5); owner != p1.Account {
		t.Error("ownable destination should have been resolved")
	}
}

func TestGoToJailCardSkipsGoPayment(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	p1.Position = 22

	card := models.Card{Name: models.CardGoToJail, Effect: models.EffectMove, TargetIndex: 10}
	if err := g.applyCard(p1, &TurnDecisions{}, card); err != nil {
		t.Fatal(err)
	}
	if !p1.InJail || p1.Position != 10 {
		t.Errorf("inJail=%v position=%d, want jailed at 10", p1.InJail, p1.Position)
	}
	if got := balance(t, g, p1); got != 1500 {
		t.Errorf("balance = %d, the jail card must not pay Go", got)
	}
}

func TestRepairsBillHousesAndHotels(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	give(t, g, p1, 1, 3)
	g.Ledger.BuyHouses(p1.Account, 1, 4, 200)
	g.Ledger.BuyHouses(p1.Account, 3, 4, 200)
	g.Ledger.BuyHotel(p1.Account, 3, 50)
	before := balance(t, g, p1)

	card := models.Card{Name: models.CardPropertyRepairs, Effect: models.EffectSpecial, HouseFee: 25, HotelFee: 100}
	if err := g.applyCard(p1, &TurnDecisions{}, card); err != nil {
		t.Fatal(err)
	}
	// Four houses on one space plus one hotel on the other; the four
	// houses behind the hotel are not billed again.
	if paid := before - balance(t, g, p1); paid != 200 {
		t.Errorf("repairs bill = %d, want 200 (4x25 + 100)", paid)
	}
}

func TestAdvanceToUtilityCardForcesTenTimes(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p2, 28) // only one utility owned
	p1.Position = 22

	// The rent roll happens on arrival.
	script(t, g, [2]int{3, 4})
	card := models.Card{Name: models.CardAdvanceUtility, Effect: models.EffectSpecial, Multiplier: 10}
	if err := g.applyCard(p1, &TurnDecisions{}, card); err != nil {
		t.Fatal(err)
	}
	if p1.Position != 28 {
		t.Errorf("position = %d, want the nearer utility 28", p1.Position)
	}
	if paid := 1500 - balance(t, g, p1); paid != 70 {
		t.Errorf("rent = %d, want 70 (7 x 10 despite a single utility)", paid)
	}
}

func TestAdvanceToRailroadCardDoublesRent(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]
	give(t, g, p2, 5)
	p1.Position = 7

	card := models.Card{Name: models.CardAdvanceRail1, Effect: models.EffectSpecial, Multiplier: 2}
	if err := g.applyCard(p1, &TurnDecisions{}, card); err != nil {
		t.Fatal(err)
	}
	if p1.Position != 5 {
		t.Errorf("position = %d, want 5", p1.Position)
	}
	// Moving from 7 back to 5 wraps past Go for 200, then the flat
	// double rent of 50 is due.
	if got := balance(t, g, p1); got != 1650 {
		t.Errorf("balance = %d, want 1650", got)
	}
	if got := balance(t, g, p2); got != 1550 {
		t.Errorf("owner balance = %d, want 1550", got)
	}
}

func TestPayAllRunsIndependently(t *testing.T) {
	g := newTestGame(t, "p1", "p2", "p3")
	p1 := g.Players[0]

	card := models.Card{Name: "Chairman of the Board", Effect: models.EffectPayAll, Amount: 50}
	if err := g.applyCard(p1, &TurnDecisions{}, card); err != nil {
		t.Fatal(err)
	}
	if got := balance(t, g, p1); got != 1400 {
		t.Errorf("payer balance = %d, want 1400", got)
	}
	for _, other := range g.Players[1:] {
		if got := balance(t, g, other); got != 1550 {
			t.Errorf("%s balance = %d, want 1550", other.Name, got)
		}
	}
}

func TestTradeRequiresOwnershipAndAcceptance(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1, p2 := g.Players[0], g.Players[1]

	err := g.Trade(p1, p2, 5, 100, true)
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("trading an unowned space: err = %v, want InvalidCommand", err)
	}

	give(t, g, p1, 5)
	if err := g.Trade(p1, p2, 5, 100, false); err != nil {
		t.Fatalf("rejected trade should be a no-op, got %v", err)
	}
	if owner, _ := g.Ledger.OwnerOf(5); owner != p1.Account {
		t.Error("rejected trade moved ownership")
	}

	if err := g.Trade(p1, p2, 5, 100, true); err != nil {
		t.Fatal(err)
	}
	if owner, _ := g.Ledger.OwnerOf(5); owner != p2.Account {
		t.Error("accepted trade did not move ownership")
	}
	if got := balance(t, g, p1); got != 1600 {
		t.Errorf("seller balance = %d, want 1600", got)
	}
	if got := balance(t, g, p2); got != 1400 {
		t.Errorf("buyer balance = %d, want 1400", got)
	}
}

func TestHaltWinnerByAssets(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]

	winner, decided, err := g.HaltWinner()
	if err != nil {
		t.Fatal(err)
	}
	if decided {
		t.Errorf("equal assets should be a tie, got winner %v", winner)
	}

	give(t, g, p1, 5)
	winner, decided, err = g.HaltWinner()
	if err != nil {
		t.Fatal(err)
	}
	if !decided || winner != p1 {
		t.Errorf("winner = %v decided = %v, want p1", winner, decided)
	}
}

func TestTotalAssetValue(t *testing.T) {
	g := newTestGame(t, "p1", "p2")
	p1 := g.Players[0]
	give(t, g, p1, 1, 3, 5)
	g.Ledger.BuyHouses(p1.Account, 1, 4, 200)
	g.Ledger.BuyHotel(p1.Account, 1, 50)
	g.Ledger.Mortgage(p1.Account, 3, 30)

	// 1500 - 250 spent + 30 mortgage cash = 1280 in coin.
	// Space 1: 60 + 5 units x 50 = 310. Space 3: mortgaged, 30.
	// Space 5: 200.
	assets, err := g.TotalAssetValue(p1)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1280 + 310 + 30 + 200; assets != want {
		t.Errorf("assets = %d, want %d", assets, want)
	}
}

// An automatic game must conserve the coin supply no matter what the
// dice do.
func TestAutomaticPlayConservesSupply(t *testing.T) {
	g := newTestGame(t, "p1", "p2", "p3")
	total := func() int {
		sum := 0
		for _, account := range []ledger.Account{"p1", "p2", "p3", "banker"} {
			b, err := g.Ledger.BalanceOf(account)
			if err != nil {
				t.Fatal(err)
			}
			sum += b
		}
		return sum
	}
	before := total()

	if _, err := g.Play(AutoDecider{}, 300); err != nil {
		t.Fatal(err)
	}
	if after := total(); after != before {
		t.Errorf("coin supply drifted: %d -> %d", before, after)
	}
	for _, p := range g.Players {
		if p.State == Bankrupt {
			if b := balance(t, g, p); b != 0 {
				t.Errorf("bankrupt %s still holds $%d", p.Name, b)
			}
			owned, _ := g.Ledger.OwnedBy(p.Account)
			if len(owned) != 0 {
				t.Errorf("bankrupt %s still owns %v", p.Name, owned)
			}
		}
	}
}
