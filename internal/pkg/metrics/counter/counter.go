package counter

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const shopCountersKey = "shop:counters"

const (
	OrdersCreated    = "orders_created"
	OrdersPaid       = "orders_paid"
	WebhooksRejected = "webhooks_rejected"
	WebhooksIgnored  = "webhooks_ignored"
)

// Counters increments shop counters in a single Redis hash. A nil *Counters
// or a nil client turns every call into a no-op.
type Counters struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Counters {
	return &Counters{rdb: rdb}
}

// Inc bumps a counter by one. Errors are returned but callers usually drop them.
func (c *Counters) Inc(ctx context.Context, field string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.rdb.HIncrBy(ctx, shopCountersKey, field, 1).Err()
}

// Snapshot returns all counters. Missing fields are absent from the map.
func (c *Counters) Snapshot(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	if c == nil || c.rdb == nil {
		return out, nil
	}
	data, err := c.rdb.HGetAll(ctx, shopCountersKey).Result()
	if err != nil {
		return nil, err
	}
	for k, v := range data {
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}
