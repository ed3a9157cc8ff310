package ledger

import (
	"fmt"
	"strconv"

	"github.com/DedS3t/monopoly-ledger/platform/cache"
	"github.com/gomodule/redigo/redis"
)

// Redis is the production Ledger, one instance per game. Balances live
// in a hash keyed <game>.bal, every property in a hash keyed
// <game>.prop.<index>. Compound mutations go through MULTI/EXEC so
// concurrent queries never observe a partial effect.
type Redis struct {
	pool *redis.Pool
	game string
	bank Account
}

// NewRedis binds a ledger to one game. The bank account is fixed at
// construction so a resumed game does not depend on InitProperties
// having run in the same process.
func NewRedis(pool *redis.Pool, gameID string, bank Account) *Redis {
	return &Redis{pool: pool, game: gameID, bank: bank}
}

func (r *Redis) balKey() string {
	return fmt.Sprintf("%s.bal", r.game)
}

func (r *Redis) propKey(index int) string {
	return fmt.Sprintf("%s.prop.%d", r.game, index)
}

func (r *Redis) InitAccounts(accounts []Account, starting int) error {
	conn := r.pool.Get()
	defer conn.Close()
	for _, account := range accounts {
		if err := cache.HSET(r.balKey(), string(account), starting, &conn); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (r *Redis) InitProperties(indices []int, bank Account) error {
	conn := r.pool.Get()
	defer conn.Close()
	r.bank = bank
	val, err := cache.HGET(r.balKey(), string(bank), &conn)
	if err != nil || val == "" {
		// The bank mints the supply.
		if err := cache.HSET(r.balKey(), string(bank), 1000000, &conn); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	for _, index := range indices {
		if err := cache.HSET(r.propKey(index), "owner", string(bank), &conn); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		cache.HSET(r.propKey(index), "houses", 0, &conn)
		cache.HSET(r.propKey(index), "hotel", 0, &conn)
		cache.HSET(r.propKey(index), "mortgaged", 0, &conn)
	}
	return nil
}

func (r *Redis) hgetInt(key, field string, conn *redis.Conn) (int, error) {
	val, err := cache.HGET(key, field, conn)
	if err == redis.ErrNil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: bad value %q", ErrUnavailable, val)
	}
	return n, nil
}

func (r *Redis) BalanceOf(account Account) (int, error) {
	conn := r.pool.Get()
	defer conn.Close()
	return r.hgetInt(r.balKey(), string(account), &conn)
}

func (r *Redis) OwnerOf(index int) (Account, error) {
	conn := r.pool.Get()
	defer conn.Close()
	val, err := cache.HGET(r.propKey(index), "owner", &conn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Account(val), nil
}

func (r *Redis) OwnedBy(account Account) ([]int, error) {
	conn := r.pool.Get()
	defer conn.Close()
	var indices []int
	for index := 0; index < 40; index++ {
		val, err := cache.HGET(r.propKey(index), "owner", &conn)
		if err == redis.ErrNil {
			continue // not an ownable space
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if Account(val) == account {
			indices = append(indices, index)
		}
	}
	return indices, nil
}

func (r *Redis) HouseCount(index int) (int, error) {
	conn := r.pool.Get()
	defer conn.Close()
	return r.hgetInt(r.propKey(index), "houses", &conn)
}

func (r *Redis) HasHotel(index int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	n, err := r.hgetInt(r.propKey(index), "hotel", &conn)
	return n == 1, err
}

func (r *Redis) IsMortgaged(index int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	n, err := r.hgetInt(r.propKey(index), "mortgaged", &conn)
	return n == 1, err
}

// transfer moves coin inside one MULTI block. The balance check happens
// first; turns are strictly sequential per game so the check cannot be
// raced by another mutating call for the same game.
func (r *Redis) transfer(from, to Account, amount int, conn *redis.Conn) (bool, error) {
	if amount < 0 {
		return false, nil
	}
	balance, err := r.hgetInt(r.balKey(), string(from), conn)
	if err != nil {
		return false, err
	}
	if balance < amount {
		return false, nil
	}
	(*conn).Send("MULTI")
	(*conn).Send("HINCRBY", r.balKey(), string(from), -amount)
	(*conn).Send("HINCRBY", r.balKey(), string(to), amount)
	if _, err := (*conn).Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

func (r *Redis) Transfer(from, to Account, amount int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	return r.transfer(from, to, amount, &conn)
}

func (r *Redis) ChangeOwnership(seller, buyer Account, index, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, err := cache.HGET(r.propKey(index), "owner", &conn)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if Account(owner) != seller {
		return false, nil
	}
	balance, err := r.hgetInt(r.balKey(), string(buyer), &conn)
	if err != nil {
		return false, err
	}
	if balance < price {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(buyer), -price)
	conn.Send("HINCRBY", r.balKey(), string(seller), price)
	conn.Send("HSET", r.propKey(index), "owner", string(buyer))
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

// propCheck loads the mutable fields of one property.
func (r *Redis) propCheck(index int, conn *redis.Conn) (owner Account, houses int, hotel, mortgaged bool, err error) {
	val, err := cache.HGET(r.propKey(index), "owner", conn)
	if err != nil {
		return "", 0, false, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	owner = Account(val)
	houses, err = r.hgetInt(r.propKey(index), "houses", conn)
	if err != nil {
		return
	}
	h, err := r.hgetInt(r.propKey(index), "hotel", conn)
	if err != nil {
		return
	}
	hotel = h == 1
	m, err := r.hgetInt(r.propKey(index), "mortgaged", conn)
	if err != nil {
		return
	}
	mortgaged = m == 1
	return
}

func (r *Redis) BuyHouses(account Account, index, amount, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, houses, hotel, mortgaged, err := r.propCheck(index, &conn)
	if err != nil {
		return false, err
	}
	if owner != account || hotel || mortgaged || amount <= 0 || houses+amount > 4 {
		return false, nil
	}
	balance, err := r.hgetInt(r.balKey(), string(account), &conn)
	if err != nil {
		return false, err
	}
	if balance < price {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(account), -price)
	conn.Send("HINCRBY", r.balKey(), string(r.bank), price)
	conn.Send("HINCRBY", r.propKey(index), "houses", amount)
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

// BuyHotel leaves the house count at 4; the hotel flag is authoritative.
func (r *Redis) BuyHotel(account Account, index, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, houses, hotel, mortgaged, err := r.propCheck(index, &conn)
	if err != nil {
		return false, err
	}
	if owner != account || hotel || mortgaged || houses != 4 {
		return false, nil
	}
	balance, err := r.hgetInt(r.balKey(), string(account), &conn)
	if err != nil {
		return false, err
	}
	if balance < price {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(account), -price)
	conn.Send("HINCRBY", r.balKey(), string(r.bank), price)
	conn.Send("HSET", r.propKey(index), "hotel", 1)
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

func (r *Redis) SellHouses(account Account, index, amount, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, houses, hotel, _, err := r.propCheck(index, &conn)
	if err != nil {
		return false, err
	}
	if owner != account || hotel || amount <= 0 || houses < amount {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(r.bank), -price)
	conn.Send("HINCRBY", r.balKey(), string(account), price)
	conn.Send("HINCRBY", r.propKey(index), "houses", -amount)
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

func (r *Redis) SellHotel(account Account, index, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, _, hotel, _, err := r.propCheck(index, &conn)
	if err != nil {
		return false, err
	}
	if owner != account || !hotel {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(r.bank), -price)
	conn.Send("HINCRBY", r.balKey(), string(account), price)
	conn.Send("HSET", r.propKey(index), "hotel", 0)
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

func (r *Redis) Mortgage(account Account, index, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, houses, hotel, mortgaged, err := r.propCheck(index, &conn)
	if err != nil {
		return false, err
	}
	if owner != account || mortgaged || houses > 0 || hotel {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(r.bank), -price)
	conn.Send("HINCRBY", r.balKey(), string(account), price)
	conn.Send("HSET", r.propKey(index), "mortgaged", 1)
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

func (r *Redis) UnMortgage(account Account, index, price int) (bool, error) {
	conn := r.pool.Get()
	defer conn.Close()
	owner, _, _, mortgaged, err := r.propCheck(index, &conn)
	if err != nil {
		return false, err
	}
	if owner != account || !mortgaged {
		return false, nil
	}
	balance, err := r.hgetInt(r.balKey(), string(account), &conn)
	if err != nil {
		return false, err
	}
	if balance < price {
		return false, nil
	}
	conn.Send("MULTI")
	conn.Send("HINCRBY", r.balKey(), string(account), -price)
	conn.Send("HINCRBY", r.balKey(), string(r.bank), price)
	conn.Send("HSET", r.propKey(index), "mortgaged", 0)
	if _, err := conn.Do("EXEC"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}
