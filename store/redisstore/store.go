// Package redisstore provides a Redis-backed session.Store, for desktop or
// server-hosted clients that want the persisted session to survive beyond a
// single machine.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-session"
	"github.com/redis/go-redis/v9"
)

var _ session.Store = &Store{}

// Store persists session values under prefix-namespaced keys. A zero TTL
// means values never expire; otherwise every write refreshes the deadline.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// WithTTL sets the expiry applied on every write.
func (s *Store) WithTTL(ttl time.Duration) *Store {
	s.ttl = ttl
	return s
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
