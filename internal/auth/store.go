package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

// SessionStore keeps the data service session of each browser, keyed by session id.
// Get returns nil without error when no session is stored.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, id string, session *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore constructs an in-memory store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 2*ttl)}
}

var _ SessionStore = (*MemoryStore)(nil)

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	value, found := m.cache.Get(id)
	if !found {
		return nil, nil
	}
	session, ok := value.(*Session)
	if !ok {
		return nil, eris.Errorf("unexpected session value for %s", id)
	}
	copied := *session
	return &copied, nil
}

func (m *MemoryStore) Put(_ context.Context, id string, session *Session) error {
	if session == nil {
		return eris.New("session is nil")
	}
	copied := *session
	m.cache.Set(id, &copied, cache.DefaultExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

// RedisStore keeps sessions in Redis so several server instances can share them.
type RedisStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

const defaultRedisPrefix = "folio:session:"

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, eris.New("redis address is required")
	}
	if opts.TTL <= 0 {
		return nil, eris.New("redis session ttl must be greater than zero")
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrap(err, "pinging redis")
	}

	return &RedisStore{client: client, prefix: prefix, ttl: opts.TTL}, nil
}

var _ SessionStore = (*RedisStore)(nil)

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "reading session from redis")
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, eris.Wrap(err, "decoding session from redis")
	}
	return &session, nil
}

func (r *RedisStore) Put(ctx context.Context, id string, session *Session) error {
	if session == nil {
		return eris.New("session is nil")
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return eris.Wrap(err, "encoding session")
	}
	if err := r.client.Set(ctx, r.prefix+id, raw, r.ttl).Err(); err != nil {
		return eris.Wrap(err, "writing session to redis")
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.prefix+id).Err(); err != nil {
		return eris.Wrap(err, "deleting session from redis")
	}
	return nil
}

// Close releases the Redis connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
