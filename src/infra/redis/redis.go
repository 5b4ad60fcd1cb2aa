package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
	keyPrefix  string
}

// NewRedisClient abre cluster quando há mais de um endereço e nó único caso contrário.
func NewRedisClient(addrs string, poolSize int, defaultTTL time.Duration, keyPrefix string) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		// Pool settings para alta concorrência
		PoolSize:     poolSize,
		MinIdleConns: 10,

		MaxRedirects: 3,

		// Timeouts otimizados para cache
		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:     client,
		defaultTTL: defaultTTL,
		keyPrefix:  keyPrefix,
	}
}

// Key prefixa a chave com o namespace do serviço.
func (rc *RedisClient) Key(parts ...string) string {
	return rc.keyPrefix + strings.Join(parts, ":")
}

func (rc *RedisClient) SetKey(ctx context.Context, key string, value string) error {
	fields := map[string]interface{}{
		"data":      value,
		"cached_at": time.Now().Unix(),
	}

	pipe := rc.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, rc.defaultTTL)

	_, err := pipe.Exec(ctx)
	return err
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, key, "data")

	// Cache miss
	if errors.Is(result.Err(), redis.Nil) {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

// Em cluster cada chave pode estar em um slot diferente, então o DEL é feito uma a uma.
func (rc *RedisClient) InvalidateKeys(ctx context.Context, keys ...string) error {
	var errs []string

	for _, key := range keys {
		if err := rc.client.Del(ctx, key).Err(); err != nil {
			errs = append(errs, fmt.Sprintf("key %s: %v", key, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalidation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// FlushByPrefix remove todas as chaves do namespace. Usado em testes.
func (rc *RedisClient) FlushByPrefix(ctx context.Context) error {
	iter := rc.client.Scan(ctx, 0, rc.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rc.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
