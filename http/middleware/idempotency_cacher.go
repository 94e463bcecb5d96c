package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	_ IdempotencyCacher = (*IdemResMap)(nil)
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher can store responses paired to idempotency keys.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap stores idempotency key, IdemRes value pairs in a map.
//
// Server restarts reset this map,
// and replicas of the web client do not share it.
type IdemResMap struct {
	mu  sync.Mutex
	now func() time.Time
	ttl time.Duration
	val map[string]idemResMapVal
}

type idemResMapVal struct {
	IdemRes

	at time.Time
}

// NewIdemResMap constructs an IdemResMap
// for use in an Idempotent middleware as a cache.
func NewIdemResMap() *IdemResMap {
	return &IdemResMap{now: time.Now, ttl: IdempotencyTTL, val: make(map[string]idemResMapVal)}
}

// Get retrieves the result of the request matching the idempotency key
// much like a regular map.
// Results older than IdempotencyTTL are not found.
func (i *IdemResMap) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" {
		return IdemRes{}, false
	}

	select {
	case <-ctx.Done():
		return IdemRes{}, false
	default:
		i.mu.Lock()
		defer i.mu.Unlock()

		v, ok := i.val[key]
		if !ok || i.now().Sub(v.at) > i.ttl {
			return IdemRes{}, false
		}

		return v.IdemRes, true
	}
}

// Set overwrites the value paired to key in the map.
//
// For each call to Set, keys older than IdempotencyTTL are evicted.
// Overwriting keeps the time key was first set.
func (i *IdemResMap) Set(ctx context.Context, key string, idemRes IdemRes) {
	select {
	case <-ctx.Done():
		return
	default:
		i.mu.Lock()
		defer i.mu.Unlock()

		now := i.now()
		for k, v := range i.val {
			if now.Sub(v.at) > i.ttl {
				delete(i.val, k)
			}
		}

		at := now
		if v, ok := i.val[key]; ok {
			at = v.at
		}

		i.val[key] = idemResMapVal{IdemRes: idemRes, at: at}
	}
}

// An IdemResRedis connects to a Redis backend
// for the purposes of caching idempotent responses.
type IdemResRedis struct {
	client *redis.Client
}

// NewRedisCache constructs an IdemResRedis with the options passed in.
func NewRedisCache(opts *redis.Options) IdemResRedis {
	return IdemResRedis{client: redis.NewClient(opts)}
}

// NewRedisCacheFromURL constructs an IdemResRedis connecting to the redis:// URL uri.
func NewRedisCacheFromURL(uri string) (IdemResRedis, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return IdemResRedis{}, err
	}

	return NewRedisCache(opts), nil
}

// Get retrieves the IdemRes paired to key from the connected Redis backend.
func (i IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	select {
	case <-ctx.Done():
		return IdemRes{}, false
	default:
		b, err := i.client.Get(ctx, idemRedisKey(key)).Bytes()
		if err != nil {
			return IdemRes{}, false
		}

		ir := new(IdemRes)
		if err := ir.GobDecode(b); err != nil {
			return IdemRes{}, false
		}

		return *ir, true
	}
}

// Set saves the IdemRes by pairing it to the key in the Redis backend.
// The first Set for a key starts its IdempotencyTTL; later ones keep it.
func (i IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	select {
	case <-ctx.Done():
		return
	default:
		b, err := idemRes.GobEncode()
		if err != nil {
			return
		}

		k := idemRedisKey(key)
		if ok, err := i.client.SetNX(ctx, k, b, IdempotencyTTL).Result(); err != nil || ok {
			return
		}

		i.client.SetArgs(ctx, k, b, redis.SetArgs{KeepTTL: true})
	}
}

// Close closes the connection to Redis.
func (i IdemResRedis) Close() error { return i.client.Close() }

func idemRedisKey(key string) string { return "stocksage:idem:" + key }
