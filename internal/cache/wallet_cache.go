// internal/cache/wallet_cache.go
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"susu-ledger/internal/domain"
)

// WalletCache is a best-effort read cache for wallet snapshots. Cache
// failures are logged and treated as misses; the database stays the source
// of truth. Mutating operations invalidate the key after commit, so a stale
// entry can live at most one TTL.
type WalletCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewWalletCache creates a WalletCache.
func NewWalletCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *WalletCache {
	return &WalletCache{rdb: rdb, ttl: ttl, logger: logger}
}

func walletKey(customerID string) string {
	return "wallet:" + customerID
}

// Get returns the cached wallet for a customer, or ok=false on miss.
func (c *WalletCache) Get(ctx context.Context, customerID string) (*domain.Wallet, bool) {
	data, err := c.rdb.Get(ctx, walletKey(customerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("wallet cache get failed", "customer_id", customerID, "error", err)
		}
		return nil, false
	}
	var wallet domain.Wallet
	if err := json.Unmarshal(data, &wallet); err != nil {
		c.logger.Warn("wallet cache entry corrupt", "customer_id", customerID, "error", err)
		return nil, false
	}
	return &wallet, true
}

// Set stores a wallet snapshot.
func (c *WalletCache) Set(ctx context.Context, wallet *domain.Wallet) {
	data, err := json.Marshal(wallet)
	if err != nil {
		c.logger.Warn("wallet cache marshal failed", "customer_id", wallet.CustomerID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, walletKey(wallet.CustomerID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("wallet cache set failed", "customer_id", wallet.CustomerID, "error", err)
	}
}

// Invalidate drops the cached snapshot for a customer.
func (c *WalletCache) Invalidate(ctx context.Context, customerID string) {
	if err := c.rdb.Del(ctx, walletKey(customerID)).Err(); err != nil {
		c.logger.Warn("wallet cache invalidate failed", "customer_id", customerID, "error", err)
	}
}
