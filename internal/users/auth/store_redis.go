// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/constants"
	"github.com/risoko/inkwell/internal/platform/sec"
)

// RedisTokenCache implements TokenCache using Redis.
//
// Cached claims are JSON-encoded under "auth:token:<key>" with a short TTL,
// bounding how long a deactivated identity can keep authenticating.
type RedisTokenCache struct {
	client *redis.Client
}

// NewTokenCache creates a new Redis-backed TokenCache.
func NewTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{client: client}
}

/*
Set stores resolved claims under a token key with the given TTL.

Parameters:
  - context: context.Context
  - key: string
  - claims: *sec.AuthClaims
  - ttl: time.Duration

Returns:
  - error: Serialization or execution errors
*/
func (cache *RedisTokenCache) Set(context context.Context, key string, claims *sec.AuthClaims, ttl time.Duration) error {

	payload, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("redis_token_cache_marshal_failed: %w", err)
	}

	cacheKey := constants.RedisPrefixToken + key
	if err := cache.client.Set(context, cacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_cache_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the claims cached under a token key.

Description: Returns apperr.NotFound if the entry is absent or expired.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - *sec.AuthClaims: Cached claims
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisTokenCache) Get(context context.Context, key string) (*sec.AuthClaims, error) {

	cacheKey := constants.RedisPrefixToken + key
	payload, err := cache.client.Get(context, cacheKey).Bytes()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cached token")
		}
		return nil, fmt.Errorf("redis_token_cache_get_failed: %w", err)
	}

	claims := &sec.AuthClaims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, fmt.Errorf("redis_token_cache_unmarshal_failed: %w", err)
	}

	return claims, nil
}

/*
Delete evicts the claims cached under a token key.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Eviction failures
*/
func (cache *RedisTokenCache) Delete(context context.Context, key string) error {

	cacheKey := constants.RedisPrefixToken + key
	if err := cache.client.Del(context, cacheKey).Err(); err != nil {
		return fmt.Errorf("redis_token_cache_delete_failed: %w", err)
	}

	return nil
}
