package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel-booking/models"
)

// AvailabilityCache memoises available-rooms answers. Each answer is its own
// key with its own TTL, namespaced by a per-room-type generation counter; a
// booking write bumps the generation, which orphans every cached range of
// that type. A nil *AvailabilityCache is valid and caches nothing.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if client == nil {
		return nil
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func GenerationKey(roomTypeID uint) string {
	return fmt.Sprintf("available_rooms:%d:gen", roomTypeID)
}

func EntryKey(roomTypeID uint, gen int64, checkIn, checkOut time.Time, excludeBookingID *uint) string {
	return fmt.Sprintf("available_rooms:%d:%d:%s", roomTypeID, gen, Field(checkIn, checkOut, excludeBookingID))
}

func Field(checkIn, checkOut time.Time, excludeBookingID *uint) string {
	exclude := "-"
	if excludeBookingID != nil {
		exclude = fmt.Sprintf("%d", *excludeBookingID)
	}
	return fmt.Sprintf("%s:%s:%s", checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"), exclude)
}

// Generation returns the current generation of the room type. Read it before
// querying the database and hand the same value to Get and Set, so an answer
// computed before a concurrent write is stored where nobody looks any more.
func (c *AvailabilityCache) Generation(ctx context.Context, roomTypeID uint) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, GenerationKey(roomTypeID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Get returns the cached rooms and true on a hit.
func (c *AvailabilityCache) Get(ctx context.Context, gen int64, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, EntryKey(roomTypeID, gen, checkIn, checkOut, excludeBookingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return rooms, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, gen int64, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint, rooms []models.Room) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, EntryKey(roomTypeID, gen, checkIn, checkOut, excludeBookingID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate moves the room type to a new generation. Entries of older
// generations are never read again and expire on their own TTL.
func (c *AvailabilityCache) Invalidate(ctx context.Context, roomTypeID uint) error {
	if c == nil {
		return nil
	}
	if err := c.client.Incr(ctx, GenerationKey(roomTypeID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
