package cache

import (
	"context"
	"fmt"
	"time"

	"sportsbook/domain/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// balanceTTL bounds how stale a cached balance can get even if an
// invalidation is lost
const balanceTTL = 30 * time.Second

// ConnectRedis opens and pings a redis client
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// BalanceCache is a redis read cache over the ledger-derived balance. It is
// never the system of record; every value in it can be re-derived from the
// transactions table.
type BalanceCache struct {
	rdb *redis.Client
}

// NewBalanceCache creates a new balance cache
func NewBalanceCache(rdb *redis.Client) *BalanceCache {
	return &BalanceCache{rdb: rdb}
}

func balanceKey(uid int64) string {
	return fmt.Sprintf("balance:%d", uid)
}

// Get returns the cached balance and whether the key was present
func (c *BalanceCache) Get(ctx context.Context, uid int64) (decimal.Decimal, bool, error) {
	val, err := c.rdb.Get(ctx, balanceKey(uid)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read cached balance for user %d: %w", uid, err)
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt cached balance for user %d: %w", uid, err)
	}

	return balance, true, nil
}

// Set stores the balance with a short TTL
func (c *BalanceCache) Set(ctx context.Context, uid int64, balance decimal.Decimal) error {
	if err := c.rdb.Set(ctx, balanceKey(uid), balance.String(), balanceTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache balance for user %d: %w", uid, err)
	}
	return nil
}

// Invalidate drops the cached balance after a money-moving operation
func (c *BalanceCache) Invalidate(ctx context.Context, uid int64) error {
	if err := c.rdb.Del(ctx, balanceKey(uid)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate balance for user %d: %w", uid, err)
	}
	return nil
}

var _ interfaces.BalanceCache = (*BalanceCache)(nil)
