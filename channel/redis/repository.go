package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of channel.Repository
 * Uses a Redis Hash per channel for metadata storage and a
 * sorted set scored by creation time to keep List in creation order
 */

const (
	hashPrefix = "channel"        // Hash naming: channel:{channel_id}
	indexKey   = "channels:index" // ZSET of channel ids scored by created_at
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// Store persists a channel hash and indexes it by creation time
func (r *Repository) Store(ctx context.Context, ch channel.Channel) error {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, ch.ID)

	err := r.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":               ch.ID,
		"name":             ch.Name,
		"secret":           ch.Secret,
		"telegram_chat_id": ch.TelegramChatID,
		"created_at":       ch.CreatedAt.UnixNano(),
	}).Err()
	if err != nil {
		return fmt.Errorf("storing channel metadata: %w", err)
	}

	err = r.client.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(ch.CreatedAt.UnixNano()),
		Member: ch.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("indexing channel: %w", err)
	}

	return nil
}

// Get retrieves a channel by ID from its Redis hash
func (r *Repository) Get(ctx context.Context, id string) (channel.Channel, error) {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	data, err := r.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return channel.Channel{}, fmt.Errorf("getting channel: %w", err)
	}
	if len(data) == 0 {
		return channel.Channel{}, channel.ErrNotFound
	}

	return parseChannel(data), nil
}

// List returns all channels in creation order via the index
func (r *Repository) List(ctx context.Context) ([]channel.Channel, error) {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading channel index: %w", err)
	}

	channels := make([]channel.Channel, 0, len(ids))
	for _, id := range ids {
		ch, err := r.Get(ctx, id)
		if err != nil {
			// Index can briefly lag a delete; skip dangling ids
			if err == channel.ErrNotFound {
				continue
			}
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// Delete removes a channel hash and its index entry
func (r *Repository) Delete(ctx context.Context, id string) error {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	deleted, err := r.client.Del(ctx, hashKey).Result()
	if err != nil {
		return fmt.Errorf("deleting channel: %w", err)
	}
	if deleted == 0 {
		return channel.ErrNotFound
	}

	if err := r.client.ZRem(ctx, indexKey, id).Err(); err != nil {
		return fmt.Errorf("removing channel from index: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

func parseChannel(data map[string]string) channel.Channel {
	return channel.Channel{
		ID:             data["id"],
		Name:           data["name"],
		Secret:         data["secret"],
		TelegramChatID: data["telegram_chat_id"],
		CreatedAt:      time.Unix(0, parseInt64(data["created_at"])).UTC(),
	}
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
