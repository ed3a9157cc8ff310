package ledger

import "errors"

// ErrUnavailable is returned when the backing store cannot be reached or
// answers with something the engine cannot interpret. The game cannot
// continue without the ledger, callers must treat it as fatal for the
// current operation.
var ErrUnavailable = errors.New("ledger unavailable")

// Account identifies one balance/ownership holder. The bank is a normal
// account passed in explicitly, never inferred from position.
type Account string

// Ledger is the system of record for coin balances and property state.
// Commands return (false, nil) when a precondition fails (insufficient
// funds, wrong house count, ...) with no partial effect. A non-nil error
// means the ledger itself failed.
type Ledger interface {
	// Queries
	BalanceOf(account Account) (int, error)
	OwnerOf(index int) (Account, error)
	OwnedBy(account Account) ([]int, error)
	HouseCount(index int) (int, error)
	HasHotel(index int) (bool, error)
	IsMortgaged(index int) (bool, error)

	// Commands
	Transfer(from, to Account, amount int) (bool, error)
	ChangeOwnership(seller, buyer Account, index, price int) (bool, error)
	BuyHouses(account Account, index, amount, price int) (bool, error)
	BuyHotel(account Account, index, price int) (bool, error)
	SellHouses(account Account, index, amount, price int) (bool, error)
	SellHotel(account Account, index, price int) (bool, error)
	Mortgage(account Account, index, price int) (bool, error)
	UnMortgage(account Account, index, price int) (bool, error)

	// Setup, run once per game before the first turn
	InitAccounts(accounts []Account, starting int) error
	InitProperties(indices []int, bank Account) error
}
