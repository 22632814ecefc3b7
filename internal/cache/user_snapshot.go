// Package cache provides the Redis-backed read-through cache for user
// access snapshots. Every request authorizes against a snapshot, so the
// snapshot lookup is the hottest read path in the service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
)

var (
	snapshotHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpdesk_snapshot_cache_hits_total",
		Help: "Total number of user snapshot cache hits",
	})
	snapshotMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpdesk_snapshot_cache_misses_total",
		Help: "Total number of user snapshot cache misses",
	})
	snapshotErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpdesk_snapshot_cache_errors_total",
		Help: "Total number of user snapshot cache errors",
	})
)

// UserSnapshotCache is a read-through cache in front of a UserStore. Cache
// failures degrade to the underlying store: a broken Redis never blocks
// authorization, it only slows it down.
//
// Snapshots are cached with a short TTL rather than invalidated on every
// role or team change, so a revoked permission can survive up to one TTL.
type UserSnapshotCache struct {
	store  repository.UserStore
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewUserSnapshotCache wraps store with a Redis read-through cache.
func NewUserSnapshotCache(store repository.UserStore, client *redis.Client, ttl time.Duration) *UserSnapshotCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &UserSnapshotCache{
		store:  store,
		client: client,
		ttl:    ttl,
		prefix: "helpdesk:snapshot:",
	}
}

// GetSnapshot returns the user's access snapshot, from Redis when fresh,
// from the underlying store otherwise. Not-found results are not cached so
// a newly created user becomes visible immediately.
func (c *UserSnapshotCache) GetSnapshot(ctx context.Context, userID string) (*models.User, error) {
	key := c.prefix + userID

	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var user models.User
		if err := json.Unmarshal(payload, &user); err == nil {
			snapshotHits.Inc()
			return &user, nil
		}
		snapshotErrors.Inc()
	} else if err != redis.Nil {
		snapshotErrors.Inc()
	}
	snapshotMisses.Inc()

	user, err := c.store.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			snapshotErrors.Inc()
		}
	}
	return user, nil
}

// Invalidate drops the cached snapshot for a user. Callers invoke it after
// role changes, team moves, or deactivation so the change takes effect
// before the TTL expires.
func (c *UserSnapshotCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.prefix+userID).Err(); err != nil {
		snapshotErrors.Inc()
		return fmt.Errorf("failed to invalidate snapshot for user %s: %w", userID, err)
	}
	return nil
}
