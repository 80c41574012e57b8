package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/go-table-order/internal/domain"
)

const (
	cartKeyPrefix = "cart:"
	// DefaultRedisTTL bounds how long an abandoned cart lingers in Redis.
	DefaultRedisTTL = 24 * time.Hour
)

// KEYS[1] = cart hash, KEYS[2] = entry list
// ARGV[1] = table label, ARGV[2] = encoded entry, ARGV[3] = ttl in ms
var addItemScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], 'table', ARGV[1])
redis.call('RPUSH', KEYS[2], ARGV[2])
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
	redis.call('PEXPIRE', KEYS[2], ttl)
end
return {redis.call('HGET', KEYS[1], 'table'), redis.call('LRANGE', KEYS[2], 0, -1)}
`)

var confirmAndClearScript = redis.NewScript(`
local items = redis.call('LRANGE', KEYS[2], 0, -1)
if #items == 0 then
	return false
end
redis.call('DEL', KEYS[2])
return {redis.call('HGET', KEYS[1], 'table'), items}
`)

// RedisStore keeps carts in Redis so that several service replicas share
// them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a store backed by client. A non-positive ttl falls
// back to DefaultRedisTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func keys(userID int64) []string {
	base := cartKeyPrefix + strconv.FormatInt(userID, 10)
	return []string{base, base + ":items"}
}

// AddItem implements Store.
func (s *RedisStore) AddItem(ctx context.Context, userID int64, table string, e domain.CartEntry) (domain.Cart, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return domain.Cart{}, err
	}
	res, err := addItemScript.Run(ctx, s.client, keys(userID), normalizeTable(table), string(raw), s.ttl.Milliseconds()).Slice()
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart add: %w", err)
	}
	return decodeCart(userID, res)
}

// PeekTotal implements Store.
func (s *RedisStore) PeekTotal(ctx context.Context, userID int64) (int64, error) {
	raw, err := s.client.LRange(ctx, keys(userID)[1], 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("cart peek: %w", err)
	}
	var total int64
	for _, r := range raw {
		var e domain.CartEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return 0, fmt.Errorf("cart peek: decode entry: %w", err)
		}
		total += e.Price
	}
	return total, nil
}

// ConfirmAndClear implements Store.
func (s *RedisStore) ConfirmAndClear(ctx context.Context, userID int64) (domain.Cart, error) {
	res, err := confirmAndClearScript.Run(ctx, s.client, keys(userID)).Slice()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, ErrEmptyCart
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart confirm: %w", err)
	}
	return decodeCart(userID, res)
}

// decodeCart converts the {table, [entries...]} reply of both scripts.
func decodeCart(userID int64, res []interface{}) (domain.Cart, error) {
	c := domain.Cart{UserID: userID, Table: domain.UnknownTable}
	if len(res) != 2 {
		return c, fmt.Errorf("cart: unexpected script reply of %d elements", len(res))
	}
	if t, ok := res[0].(string); ok && t != "" {
		c.Table = t
	}
	raw, _ := res[1].([]interface{})
	c.Items = make([]domain.CartEntry, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}
		var e domain.CartEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return c, fmt.Errorf("cart: decode entry: %w", err)
		}
		c.Items = append(c.Items, e)
	}
	return c, nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
