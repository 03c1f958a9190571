package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "richlist:queue:"
	registryKey = "richlist:queues"
)

// pushScript appends each item, keeping one copy at the tail. KEYS[2] is the membership set,
// so the list is only scanned for items that are already queued.
var pushScript = redis.NewScript(`
for _, item in ipairs(ARGV) do
	if redis.call('SADD', KEYS[2], item) == 0 then
		redis.call('LREM', KEYS[1], 0, item)
	end
	redis.call('RPUSH', KEYS[1], item)
end
return #ARGV
`)

// receiveScript pops up to ARGV[1] items from the end selected by ARGV[2] and drops them from
// the membership set.
var receiveScript = redis.NewScript(`
local items
if ARGV[2] == 'fifo' then
	items = redis.call('LPOP', KEYS[1], ARGV[1])
else
	items = redis.call('RPOP', KEYS[1], ARGV[1])
end
if not items then
	return {}
end
redis.call('SREM', KEYS[2], unpack(items))
return items
`)

// RedisBackend keeps every queue in a Redis list, so queued work survives restarts.
type RedisBackend struct {
	client redis.UniversalClient
}

func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

// CreateQueueIfNotExist registers name with its mode in the queue registry hash.
func (b *RedisBackend) CreateQueueIfNotExist(ctx context.Context, name string, mode Mode) (Queue, error) {
	mode, err := normalizeMode(mode)
	if err != nil {
		return nil, err
	}
	if err := b.client.HSetNX(ctx, registryKey, name, string(mode)).Err(); err != nil {
		return nil, fmt.Errorf("register queue %s: %w", name, err)
	}
	stored, err := b.client.HGet(ctx, registryKey, name).Result()
	if err != nil {
		return nil, fmt.Errorf("read queue %s mode: %w", name, err)
	}
	if Mode(stored) != mode {
		return nil, fmt.Errorf("%w: %s is %s", ErrModeMismatch, name, stored)
	}
	return &redisQueue{client: b.client, key: listKey(name), members: membersKey(name), mode: mode}, nil
}

// The hash tag keeps the list and its membership set in one cluster slot.
func listKey(name string) string {
	return keyPrefix + "{" + name + "}"
}

func membersKey(name string) string {
	return listKey(name) + ":members"
}

type redisQueue struct {
	client  redis.UniversalClient
	key     string
	members string
	mode    Mode
}

func (q *redisQueue) Push(ctx context.Context, items ...string) error {
	if len(items) == 0 {
		return nil
	}
	args := make([]any, len(items))
	for i, item := range items {
		args[i] = item
	}
	if err := pushScript.Run(ctx, q.client, []string{q.key, q.members}, args...).Err(); err != nil {
		return fmt.Errorf("push to %s: %w", q.key, err)
	}
	return nil
}

func (q *redisQueue) Receive(ctx context.Context, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}
	items, err := receiveScript.Run(ctx, q.client, []string{q.key, q.members}, max, string(q.mode)).StringSlice()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("receive from %s: %w", q.key, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (q *redisQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("length of %s: %w", q.key, err)
	}
	return n, nil
}
