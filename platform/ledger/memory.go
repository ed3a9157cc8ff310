package ledger

import "sync"

type propertyState struct {
	owner     Account
	houses    int
	hotel     bool
	mortgaged bool
}

// Memory is a map backed Ledger. It is the implementation used by tests
// and by embedders that do not want an external store. All commands are
// all-or-nothing under one mutex.
type Memory struct {
	mu         sync.Mutex
	bank       Account
	balances   map[Account]int
	properties map[int]*propertyState
}

func NewMemory() *Memory {
	return &Memory{
		balances:   map[Account]int{},
		properties: map[int]*propertyState{},
	}
}

func (m *Memory) InitAccounts(accounts []Account, starting int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range accounts {
		m.balances[account] = starting
	}
	return nil
}

func (m *Memory) InitProperties(indices []int, bank Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bank = bank
	if _, ok := m.balances[bank]; !ok {
		// The bank mints the coin supply, give it a balance large enough
		// to never decline a payout in practice.
		m.balances[bank] = 1000000
	}
	for _, index := range indices {
		m.properties[index] = &propertyState{owner: bank}
	}
	return nil
}

func (m *Memory) BalanceOf(account Account) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account], nil
}

func (m *Memory) OwnerOf(index int) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return "", ErrUnavailable
	}
	return state.owner, nil
}

func (m *Memory) OwnedBy(account Account) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var indices []int
	for index := 0; index < 40; index++ {
		if state, ok := m.properties[index]; ok && state.owner == account {
			indices = append(indices, index)
		}
	}
	return indices, nil
}

func (m *Memory) HouseCount(index int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return 0, ErrUnavailable
	}
	return state.houses, nil
}

func (m *Memory) HasHotel(index int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	return state.hotel, nil
}

func (m *Memory) IsMortgaged(index int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	return state.mortgaged, nil
}

func (m *Memory) Transfer(from, to Account, amount int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transferLocked(from, to, amount), nil
}

func (m *Memory) transferLocked(from, to Account, amount int) bool {
	if amount < 0 || m.balances[from] < amount {
		return false
	}
	m.balances[from] -= amount
	m.balances[to] += amount
	return true
}

func (m *Memory) ChangeOwnership(seller, buyer Account, index, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != seller {
		return false, nil
	}
	if !m.transferLocked(buyer, seller, price) {
		return false, nil
	}
	state.owner = buyer
	return true, nil
}

func (m *Memory) BuyHouses(account Account, index, amount, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != account || state.hotel || state.mortgaged || amount <= 0 || state.houses+amount > 4 {
		return false, nil
	}
	if !m.transferLocked(account, m.bank, price) {
		return false, nil
	}
	state.houses += amount
	return true, nil
}

// BuyHotel keeps the house count at 4. HasHotel is the authoritative
// signal that the space carries a hotel.
func (m *Memory) BuyHotel(account Account, index, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != account || state.hotel || state.mortgaged || state.houses != 4 {
		return false, nil
	}
	if !m.transferLocked(account, m.bank, price) {
		return false, nil
	}
	state.hotel = true
	return true, nil
}

func (m *Memory) SellHouses(account Account, index, amount, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != account || state.hotel || amount <= 0 || state.houses < amount {
		return false, nil
	}
	if !m.transferLocked(m.bank, account, price) {
		return false, nil
	}
	state.houses -= amount
	return true, nil
}

func (m *Memory) SellHotel(account Account, index, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != account || !state.hotel {
		return false, nil
	}
	if !m.transferLocked(m.bank, account, price) {
		return false, nil
	}
	state.hotel = false
	return true, nil
}

func (m *Memory) Mortgage(account Account, index, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != account || state.mortgaged || state.houses > 0 || state.hotel {
		return false, nil
	}
	if !m.transferLocked(m.bank, account, price) {
		return false, nil
	}
	state.mortgaged = true
	return true, nil
}

func (m *Memory) UnMortgage(account Account, index, price int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.properties[index]
	if !ok {
		return false, ErrUnavailable
	}
	if state.owner != account || !state.mortgaged {
		return false, nil
	}
	if !m.transferLocked(account, m.bank, price) {
		return false, nil
	}
	state.mortgaged = false
	return true, nil
}
