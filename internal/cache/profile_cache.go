package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	profileKeyPrefix    = "profile:full:"
	generationKeyPrefix = "profile:gen:"

	// generationTTL bounds how long an idle profile's counter lingers.
	generationTTL = 24 * time.Hour
)

// NoGeneration tells Set not to write, because the generation could not be read.
const NoGeneration int64 = -1

// ProfileCache keeps assembled profiles in redis. A nil client turns every
// call into a miss, and redis errors are logged and treated as misses.
//
// Every Invalidate bumps a per-profile generation. A reader passes the
// generation it saw on its miss to Set, and the write is dropped when a writer
// invalidated in between, so a slow reader cannot restore a stale aggregate.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func profileKey(id uint) string {
	return fmt.Sprintf("%s%d", profileKeyPrefix, id)
}

func generationKey(id uint) string {
	return fmt.Sprintf("%s%d", generationKeyPrefix, id)
}

// Get returns the cached profile. On a miss it also returns the generation
// the caller must hand to Set.
func (c *ProfileCache) Get(ctx context.Context, id uint) (*models.Profile, int64, bool) {
	if c == nil || c.client == nil {
		return nil, NoGeneration, false
	}

	values, err := c.client.MGet(ctx, profileKey(id), generationKey(id)).Result()
	if err != nil {
		logger.Log.Warn("Profile cache read failed", zap.Uint("profile_id", id), zap.Error(err))
		return nil, NoGeneration, false
	}

	generation, err := parseGeneration(values[1])
	if err != nil {
		logger.Log.Warn("Profile cache generation unreadable", zap.Uint("profile_id", id), zap.Error(err))
		return nil, NoGeneration, false
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		logger.Log.Warn("Dropping unreadable cached profile", zap.Uint("profile_id", id), zap.Error(err))
		c.Invalidate(ctx, id)
		return nil, NoGeneration, false
	}
	return &profile, generation, true
}

// Set stores profile if its generation still equals generation.
func (c *ProfileCache) Set(ctx context.Context, profile *models.Profile, generation int64) {
	if c == nil || c.client == nil || profile == nil || generation == NoGeneration {
		return
	}

	data, err := json.Marshal(profile)
	if err != nil {
		logger.Log.Warn("Profile cache marshal failed", zap.Uint("profile_id", profile.ID), zap.Error(err))
		return
	}

	genKey := generationKey(profile.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		n, err := parseGeneration(current)
		if err != nil {
			return err
		}
		if n != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, profileKey(profile.ID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		logger.Log.Debug("Skipped caching stale profile", zap.Uint("profile_id", profile.ID))
	default:
		logger.Log.Warn("Profile cache write failed", zap.Uint("profile_id", profile.ID), zap.Error(err))
	}
}

// Invalidate drops the cached profile and bumps its generation.
func (c *ProfileCache) Invalidate(ctx context.Context, id uint) {
	if c == nil || c.client == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(id))
		pipe.Expire(ctx, generationKey(id), generationTTL)
		pipe.Del(ctx, profileKey(id))
		return nil
	})
	if err != nil {
		logger.Log.Warn("Profile cache invalidation failed", zap.Uint("profile_id", id), zap.Error(err))
	}
}

var errStaleGeneration = errors.New("profile generation changed")

// parseGeneration reads a counter value; a missing counter is generation 0.
func parseGeneration(v any) (int64, error) {
	switch g := v.(type) {
	case nil:
		return 0, nil
	case string:
		if g == "" {
			return 0, nil
		}
		return strconv.ParseInt(g, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected generation type %T", v)
	}
}
