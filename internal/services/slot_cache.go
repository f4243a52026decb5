package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/mithil0407/playernumberone/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	slotCacheKey = "sessions:scheduled_slots"
	slotCacheTTL = 30 * time.Second
)

// SlotCache keeps the scheduled-slot calendar in Redis so the schedule page
// poll does not hit Postgres on every load. A nil *SlotCache (or a cache
// built without a client) is a valid no-op; cache errors degrade to misses.
type SlotCache struct {
	client *redis.Client
}

func NewSlotCache(client *redis.Client) *SlotCache {
	if client == nil {
		return nil
	}
	return &SlotCache{client: client}
}

func (c *SlotCache) Get(ctx context.Context) ([]models.Slot, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, slotCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("slot cache read: %v", err)
		}
		return nil, false
	}

	var slots []models.Slot
	if err := json.Unmarshal(payload, &slots); err != nil {
		log.Printf("slot cache decode: %v", err)
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, slots []models.Slot) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(slots)
	if err != nil {
		log.Printf("slot cache encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, slotCacheKey, payload, slotCacheTTL).Err(); err != nil {
		log.Printf("slot cache write: %v", err)
	}
}

func (c *SlotCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, slotCacheKey).Err(); err != nil {
		log.Printf("slot cache invalidate: %v", err)
	}
}
