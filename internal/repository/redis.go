package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"roomcal/internal/config"
	"roomcal/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisReservationStore keeps each room's reservation list as a JSON array
// under reservations:<room>. Per the store contract, read failures are
// coerced to an empty list here, in the adapter, and never reach the engine;
// write failures propagate.
type RedisReservationStore struct {
	client *redis.Client
	logger *zerolog.Logger
}

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisReservationStore(client *redis.Client, logger *zerolog.Logger) *RedisReservationStore {
	return &RedisReservationStore{client: client, logger: logger}
}

func reservationsKey(room string) string {
	return fmt.Sprintf("reservations:%s", room)
}

func (r *RedisReservationStore) Get(ctx context.Context, room string) ([]models.Reservation, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	val, err := r.client.Get(ctx, reservationsKey(room)).Result()
	if err == redis.Nil {
		return []models.Reservation{}, nil
	}
	if err != nil {
		// Coerced to empty: a failed read is indistinguishable from a room
		// that was never used. Logged so operators can tell the difference.
		r.logger.Warn().Err(err).Str("room", room).Msg("reservation read failed, treating as empty")
		return []models.Reservation{}, nil
	}

	var reservations []models.Reservation
	if err := json.Unmarshal([]byte(val), &reservations); err != nil {
		r.logger.Warn().Err(err).Str("room", room).Msg("reservation data corrupt, treating as empty")
		return []models.Reservation{}, nil
	}

	return reservations, nil
}

func (r *RedisReservationStore) Save(ctx context.Context, room string, reservations []models.Reservation) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	data, err := json.Marshal(reservations)
	if err != nil {
		return fmt.Errorf("failed to marshal reservations: %w", err)
	}

	if err := r.client.Set(ctx, reservationsKey(room), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save reservations for %s: %w", room, err)
	}

	return nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
