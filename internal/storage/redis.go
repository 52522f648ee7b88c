package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

const defaultKeyPrefix = "chatvicsal:session:"

// RedisStore keeps sessions in Redis so the bot can run behind more than
// one process. Sessions are stored as JSON under a key prefix, with an
// optional TTL (zero means no expiration, matching the in-memory store).
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to the given Redis address.
func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, ttl)
}

// NewRedisStoreFromClient wraps an existing client (used in tests).
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) key(senderID string) string {
	return r.prefix + senderID
}

func (r *RedisStore) Get(ctx context.Context, senderID string) (*models.Session, error) {
	val, err := r.client.Get(ctx, r.key(senderID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *RedisStore) Put(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(session.SenderID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, senderID string) error {
	return r.client.Del(ctx, r.key(senderID)).Err()
}

// Ping verifies the connection (used at startup and by the status endpoint)
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
